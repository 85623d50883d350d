package domain

import (
	"regexp"

	domainerrors "github.com/aoideee/bookreviews/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidObjectID is returned for identifiers that are not 24 hex digits.
var ErrInvalidObjectID = domainerrors.Validation("Invalid ObjectId format")

var objectIDRX = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func validateObjectID(v string) error {
	if !objectIDRX.MatchString(v) {
		return ErrInvalidObjectID
	}
	return nil
}

// BookID identifies a book. Only the format is checked; whether a book with
// this id exists is for the caller to find out.
type BookID struct {
	value string
}

// NewBookID returns a freshly generated id.
func NewBookID() BookID {
	return BookID{value: primitive.NewObjectID().Hex()}
}

// BookIDFromString validates raw as a 24 hex digit identifier.
func BookIDFromString(raw string) (BookID, error) {
	if err := validateObjectID(raw); err != nil {
		return BookID{}, err
	}
	return BookID{value: raw}, nil
}

// IsValidBookID reports whether raw is a well-formed book id.
func IsValidBookID(raw string) bool {
	return validateObjectID(raw) == nil
}

func (id BookID) Value() string { return id.value }
func (id BookID) String() string { return id.value }
func (id BookID) Equals(other BookID) bool { return id.value == other.value }

// ReviewID identifies a review and follows the same format as BookID.
type ReviewID struct {
	value string
}

// NewReviewID returns a freshly generated id.
func NewReviewID() ReviewID {
	return ReviewID{value: primitive.NewObjectID().Hex()}
}

// ReviewIDFromString validates raw as a 24 hex digit identifier.
func ReviewIDFromString(raw string) (ReviewID, error) {
	if err := validateObjectID(raw); err != nil {
		return ReviewID{}, err
	}
	return ReviewID{value: raw}, nil
}

// IsValidReviewID reports whether raw is a well-formed review id.
func IsValidReviewID(raw string) bool {
	return validateObjectID(raw) == nil
}

func (id ReviewID) Value() string { return id.value }
func (id ReviewID) String() string { return id.value }
func (id ReviewID) Equals(other ReviewID) bool { return id.value == other.value }
