// Package service implements the book and review use cases on top of the
// repositories. Requests arrive as shape-checked DTOs, pass through the
// mappers into value objects and leave as primitives.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	apperrors "github.com/aoideee/bookreviews/internal/errors"
)

type bookRepository interface {
	Insert(ctx context.Context, book *domain.BookPrimitive) error
	Get(ctx context.Context, id string) (*domain.BookPrimitive, error)
	GetAll(ctx context.Context, filters data.BookFilters) ([]*domain.BookPrimitive, data.Metadata, error)
	Update(ctx context.Context, book *domain.BookPrimitive) error
	Delete(ctx context.Context, id string) error
	TopRated(ctx context.Context, limit int) ([]*domain.BookPrimitive, error)
}

type reviewRepository interface {
	Insert(ctx context.Context, review *domain.ReviewPrimitive) error
	Get(ctx context.Context, id string) (*domain.ReviewPrimitive, error)
	GetAll(ctx context.Context, filters data.ReviewFilters) ([]*domain.ReviewPrimitive, data.Metadata, error)
	Update(ctx context.Context, review *domain.ReviewPrimitive) error
	Delete(ctx context.Context, id string) error
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}

// ErrDuplicateISBN is returned when a create or update reuses another book's ISBN.
var ErrDuplicateISBN = apperrors.Conflict("A book with this ISBN already exists")

func bookNotFound(id string) error {
	return apperrors.NotFoundf("Book with ID %s not found", id)
}

func reviewNotFound(id string) error {
	return apperrors.NotFoundf("Review with ID %s not found", id)
}

// storageError translates repository errors. notFound builds the error
// returned for ErrRecordNotFound.
func storageError(err error, notFound func() error) error {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		return notFound()
	case errors.Is(err, data.ErrDuplicateISBN):
		return ErrDuplicateISBN
	default:
		return apperrors.Wrap(err, apperrors.CodeInternal, "storage failure")
	}
}

// corrupt marks a stored record that no longer passes value object
// validation. It is a server fault, not a client one.
func corrupt(err error) error {
	return apperrors.Wrap(err, apperrors.CodeInternal, "stored record is invalid")
}

func filters(page, limit int, sortBy, sortOrder string) data.Filters {
	return data.Filters{Page: page, PageSize: limit, SortBy: sortBy, SortOrder: sortOrder}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
