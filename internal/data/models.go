// Package data defines the persistence contracts for books and reviews and
// the pagination types shared by every storage backend.
package data

import (
	"context"
	"errors"
	"math"

	"github.com/aoideee/bookreviews/internal/domain"
)

// Errors returned by every backend.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateISBN  = errors.New("duplicate isbn")
)

// Models groups the repositories the application works with. Each backend
// provides a constructor returning a populated Models.
type Models struct {
	Books   BookRepository
	Reviews ReviewRepository
}

// BookRepository stores books. Every read returns avgRating and reviewCount
// aggregated from the book's reviews at query time.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.BookPrimitive) error
	Get(ctx context.Context, id string) (*domain.BookPrimitive, error)
	GetAll(ctx context.Context, filters BookFilters) ([]*domain.BookPrimitive, Metadata, error)
	Update(ctx context.Context, book *domain.BookPrimitive) error
	Delete(ctx context.Context, id string) error
	TopRated(ctx context.Context, limit int) ([]*domain.BookPrimitive, error)
}

// ReviewRepository stores reviews.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.ReviewPrimitive) error
	Get(ctx context.Context, id string) (*domain.ReviewPrimitive, error)
	GetAll(ctx context.Context, filters ReviewFilters) ([]*domain.ReviewPrimitive, Metadata, error)
	Update(ctx context.Context, review *domain.ReviewPrimitive) error
	Delete(ctx context.Context, id string) error
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}

// Filters holds pagination and sorting parameters.
type Filters struct {
	Page      int    // Current page number (1-indexed)
	PageSize  int    // Number of records per page
	SortBy    string // Wire name of the sort key, already checked against a safe list
	SortOrder string // "asc" or "desc"
}

// Limit returns the number of records to fetch.
func (f Filters) Limit() int { return f.PageSize }

// Offset returns the number of records to skip.
func (f Filters) Offset() int { return (f.Page - 1) * f.PageSize }

// Descending reports whether results are sorted high to low.
func (f Filters) Descending() bool { return f.SortOrder == "desc" }

// BookFilters narrows a book listing.
type BookFilters struct {
	Filters
	Search    string   // case-insensitive substring of title or author
	Author    string   // case-insensitive substring of author
	MinRating *float64 // minimum average rating
}

// ReviewFilters narrows a review listing.
type ReviewFilters struct {
	Filters
	BookID    string // reviews of one book only
	MinRating *int   // minimum rating
}

// Metadata contains pagination information returned alongside list responses.
type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records,omitempty"`
}

// CalculateMetadata computes page metadata from total record count and filter values.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(pageSize))),
		TotalRecords: totalRecords,
	}
}

// RoundAverage rounds a raw aggregate the way AverageRating does. Values
// outside the rating range can only come from corrupted rows and are
// reported as errors.
func RoundAverage(raw float64) (float64, error) {
	avg, err := domain.NewAverageRating(raw)
	if err != nil {
		return 0, err
	}
	return avg.Value(), nil
}
