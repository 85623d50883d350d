package dto

import (
	"unicode/utf8"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/validator"
)

// CreateReviewDTO is the body of POST /v1/reviews.
type CreateReviewDTO struct {
	BookID       string  `json:"bookId" yaml:"bookId,omitempty"`
	Rating       float64 `json:"rating" yaml:"rating"`
	Comment      string  `json:"comment,omitempty" yaml:"comment,omitempty"`
	ReviewerName string  `json:"reviewerName" yaml:"reviewerName"`
}

func (d CreateReviewDTO) CreateBookID() (domain.BookID, error) {
	return domain.BookIDFromString(d.BookID)
}

func (d CreateReviewDTO) CreateRating() (domain.Rating, error) {
	return domain.RatingFromNumber(d.Rating)
}

func (d CreateReviewDTO) CreateComment() (domain.Comment, error) {
	return domain.NewComment(d.Comment)
}

func (d CreateReviewDTO) CreateReviewerName() (domain.ReviewerName, error) {
	return domain.NewReviewerName(d.ReviewerName)
}

// ValidateCreateReview runs the shape checks for a new review.
func ValidateCreateReview(v *validator.Validator, d CreateReviewDTO) {
	v.Check(d.BookID != "", "bookId", "must be provided")
	_, err := domain.BookIDFromString(d.BookID)
	v.CheckError(err, "bookId")
	v.Check(d.Rating != 0, "rating", "must be provided")
	v.Check(d.Rating >= domain.MinRating && d.Rating <= domain.MaxRating, "rating", "must be between 1 and 5")
	v.Check(utf8.RuneCountInString(d.Comment) <= domain.MaxCommentLength, "comment", "must not be more than 500 characters long")
	v.Check(d.ReviewerName != "", "reviewerName", "must be provided")
	v.Check(utf8.RuneCountInString(d.ReviewerName) <= domain.MaxReviewerNameLength, "reviewerName", "must not be more than 100 characters long")
}

// UpdateReviewDTO is the body of PATCH /v1/reviews/:id. A bookId sent by the
// client is accepted but never applied.
type UpdateReviewDTO struct {
	BookID       *string  `json:"bookId,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Comment      *string  `json:"comment,omitempty"`
	ReviewerName *string  `json:"reviewerName,omitempty"`
}

// ValidateUpdateReview runs the shape checks for the fields that are present.
func ValidateUpdateReview(v *validator.Validator, d UpdateReviewDTO) {
	if d.Rating != nil {
		v.Check(*d.Rating >= domain.MinRating && *d.Rating <= domain.MaxRating, "rating", "must be between 1 and 5")
	}
	if d.Comment != nil {
		v.Check(utf8.RuneCountInString(*d.Comment) <= domain.MaxCommentLength, "comment", "must not be more than 500 characters long")
	}
	if d.ReviewerName != nil {
		v.Check(*d.ReviewerName != "", "reviewerName", "must not be empty")
		v.Check(utf8.RuneCountInString(*d.ReviewerName) <= domain.MaxReviewerNameLength, "reviewerName", "must not be more than 100 characters long")
	}
}
