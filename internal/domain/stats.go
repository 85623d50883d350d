package domain

import (
	"math"
	"strconv"

	domainerrors "github.com/aoideee/bookreviews/internal/errors"
)

// Validation errors returned by the aggregate value objects.
var (
	ErrAverageNotNumber   = domainerrors.Validation("Average rating must be a number")
	ErrAverageOutOfRange  = domainerrors.Validation("Average rating must be between 0 and 5")
	ErrInvalidReviewCount = domainerrors.Validation("Review count must be a non-negative integer")
)

// AverageRating is the mean of a book's ratings, 0 when it has none,
// rounded to one decimal place.
type AverageRating struct {
	value float64
}

// NewAverageRating validates v and rounds it to one decimal place.
func NewAverageRating(v float64) (AverageRating, error) {
	if err := validateAverage(v); err != nil {
		return AverageRating{}, err
	}
	return AverageRating{value: roundTenth(v)}, nil
}

// ZeroAverageRating is the average of a book without reviews.
func ZeroAverageRating() AverageRating {
	return AverageRating{}
}

// AverageOf computes the rounded mean of ratings.
func AverageOf(ratings []Rating) AverageRating {
	if len(ratings) == 0 {
		return ZeroAverageRating()
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value()
	}
	return AverageRating{value: roundTenth(float64(sum) / float64(len(ratings)))}
}

// IsValidAverageRating reports whether v would produce an AverageRating.
func IsValidAverageRating(v float64) bool {
	return validateAverage(v) == nil
}

func validateAverage(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrAverageNotNumber
	}
	if v < 0 || v > MaxRating {
		return ErrAverageOutOfRange
	}
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func (a AverageRating) Value() float64 { return a.value }
func (a AverageRating) String() string { return strconv.FormatFloat(a.value, 'f', 1, 64) }
func (a AverageRating) Equals(other AverageRating) bool { return a.value == other.value }

// ReviewCount is the number of reviews a book has.
type ReviewCount struct {
	value int
}

// NewReviewCount validates n.
func NewReviewCount(n int) (ReviewCount, error) {
	if err := validateReviewCount(n); err != nil {
		return ReviewCount{}, err
	}
	return ReviewCount{value: n}, nil
}

// ReviewCountFromNumber accepts a wire number and rejects NaN and fractions.
func ReviewCountFromNumber(n float64) (ReviewCount, error) {
	c, ok := asInteger(n)
	if !ok {
		return ReviewCount{}, ErrInvalidReviewCount
	}
	return NewReviewCount(c)
}

// ZeroReviewCount is the count of a book without reviews.
func ZeroReviewCount() ReviewCount {
	return ReviewCount{}
}

// IsValidReviewCount reports whether n would produce a ReviewCount.
func IsValidReviewCount(n int) bool {
	return validateReviewCount(n) == nil
}

func validateReviewCount(n int) error {
	if n < 0 {
		return ErrInvalidReviewCount
	}
	return nil
}

// Increment returns a count one higher.
func (c ReviewCount) Increment() ReviewCount {
	return ReviewCount{value: c.value + 1}
}

// Decrement returns a count one lower, never going below zero.
func (c ReviewCount) Decrement() ReviewCount {
	if c.value == 0 {
		return c
	}
	return ReviewCount{value: c.value - 1}
}

func (c ReviewCount) Value() int { return c.value }
func (c ReviewCount) String() string { return strconv.Itoa(c.value) }
func (c ReviewCount) Equals(other ReviewCount) bool { return c.value == other.value }
