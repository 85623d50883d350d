package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"

	domainerrors "github.com/aoideee/bookreviews/internal/errors"
)

// Limits for review fields.
const (
	MinRating             = 1
	MaxRating             = 5
	MaxCommentLength      = 500
	MaxReviewerNameLength = 100
)

// Validation errors returned by the review value objects.
var (
	ErrInvalidRating       = domainerrors.Validation("Rating must be an integer between 1 and 5")
	ErrCommentTooLong      = domainerrors.Validation("Comment cannot exceed 500 characters")
	ErrReviewerNameEmpty   = domainerrors.Validation("Reviewer name cannot be empty")
	ErrReviewerNameTooLong = domainerrors.Validation("Reviewer name cannot exceed 100 characters")
)

// Rating is a whole-star score from 1 to 5.
type Rating struct {
	value int
}

// NewRating validates r.
func NewRating(r int) (Rating, error) {
	if err := validateRating(r); err != nil {
		return Rating{}, err
	}
	return Rating{value: r}, nil
}

// RatingFromNumber accepts a wire number; NaN and fractions are rejected
// with the same error as out-of-range values.
func RatingFromNumber(n float64) (Rating, error) {
	r, ok := asInteger(n)
	if !ok {
		return Rating{}, ErrInvalidRating
	}
	return NewRating(r)
}

// IsValidRating reports whether r would produce a Rating.
func IsValidRating(r int) bool {
	return validateRating(r) == nil
}

func validateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

func (r Rating) Value() int { return r.value }
func (r Rating) String() string { return strconv.Itoa(r.value) }
func (r Rating) Equals(other Rating) bool { return r.value == other.value }

// Comment is optional review text of at most 500 characters.
type Comment struct {
	value string
}

// NewComment validates and trims raw.
func NewComment(raw string) (Comment, error) {
	v := strings.TrimSpace(raw)
	if err := validateComment(v); err != nil {
		return Comment{}, err
	}
	return Comment{value: v}, nil
}

// IsValidComment reports whether raw would produce a Comment.
func IsValidComment(raw string) bool {
	return validateComment(strings.TrimSpace(raw)) == nil
}

func validateComment(v string) error {
	if utf8.RuneCountInString(v) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

func (c Comment) Value() string { return c.value }
func (c Comment) String() string { return c.value }
func (c Comment) Equals(other Comment) bool { return c.value == other.value }
func (c Comment) IsEmpty() bool { return c.value == "" }

// ReviewerName is the trimmed display name of whoever wrote a review.
type ReviewerName struct {
	value string
}

// NewReviewerName validates and trims raw.
func NewReviewerName(raw string) (ReviewerName, error) {
	v := strings.TrimSpace(raw)
	if err := validateReviewerName(v); err != nil {
		return ReviewerName{}, err
	}
	return ReviewerName{value: v}, nil
}

// IsValidReviewerName reports whether raw would produce a ReviewerName.
func IsValidReviewerName(raw string) bool {
	return validateReviewerName(strings.TrimSpace(raw)) == nil
}

func validateReviewerName(v string) error {
	if v == "" {
		return ErrReviewerNameEmpty
	}
	if utf8.RuneCountInString(v) > MaxReviewerNameLength {
		return ErrReviewerNameTooLong
	}
	return nil
}

func (n ReviewerName) Value() string { return n.value }
func (n ReviewerName) String() string { return n.value }
func (n ReviewerName) Equals(other ReviewerName) bool { return n.value == other.value }
