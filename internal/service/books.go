package service

import (
	"context"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/dto"
	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/aoideee/bookreviews/internal/mapper"
	"go.uber.org/zap"
)

// BookService manages the book catalogue.
type BookService struct {
	books   bookRepository
	reviews reviewRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewBookService creates a book service.
func NewBookService(books bookRepository, reviews reviewRepository, logger *zap.Logger) *BookService {
	return &BookService{
		books:   books,
		reviews: reviews,
		logger:  logger.With(zap.String(logging.FieldComponent, "service"), zap.String(logging.FieldType, "book")),
		now:     utcNow,
	}
}

// Create validates d through the value objects and stores a new book.
func (s *BookService) Create(ctx context.Context, d dto.CreateBookDTO) (*domain.BookPrimitive, error) {
	nb, err := mapper.BookFromCreateDTO(d)
	if err != nil {
		return nil, err
	}

	book := mapper.BookToPrimitive(nb.WithIdentity(domain.NewBookID(), s.now()))
	if err := s.books.Insert(ctx, &book); err != nil {
		return nil, storageError(err, func() error { return bookNotFound(book.ID) })
	}

	s.logger.Info("Book created", zap.String("id", book.ID), zap.String("title", book.Title))
	return &book, nil
}

// Get returns one book with its review aggregates.
func (s *BookService) Get(ctx context.Context, id domain.BookID) (*domain.BookPrimitive, error) {
	book, err := s.books.Get(ctx, id.Value())
	if err != nil {
		return nil, storageError(err, func() error { return bookNotFound(id.Value()) })
	}
	return book, nil
}

// List returns one page of books.
func (s *BookService) List(ctx context.Context, q dto.GetBooksQueryDTO) ([]*domain.BookPrimitive, data.Metadata, error) {
	books, meta, err := s.books.GetAll(ctx, data.BookFilters{
		Filters:   filters(q.Page, q.Limit, q.SortBy, q.SortOrder),
		Search:    q.Search,
		Author:    q.Author,
		MinRating: q.MinRating,
	})
	if err != nil {
		return nil, data.Metadata{}, storageError(err, func() error { return bookNotFound("") })
	}
	return books, meta, nil
}

// Update applies the fields present on d to an existing book. An update
// with no fields returns the book unchanged.
func (s *BookService) Update(ctx context.Context, id domain.BookID, d dto.UpdateBookDTO) (*domain.BookPrimitive, error) {
	patch, err := mapper.BookFromUpdateDTO(d)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	book, err := mapper.BookFromPrimitive(*current)
	if err != nil {
		return nil, corrupt(err)
	}
	book = book.Apply(patch)
	book.UpdatedAt = s.now()

	updated := mapper.BookToPrimitive(book)
	if err := s.books.Update(ctx, &updated); err != nil {
		return nil, storageError(err, func() error { return bookNotFound(id.Value()) })
	}

	s.logger.Info("Book updated", zap.String("id", updated.ID), zap.Strings("fields", patch.Fields()))
	return &updated, nil
}

// Delete removes a book and every review written for it.
func (s *BookService) Delete(ctx context.Context, id domain.BookID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.reviews.DeleteByBook(ctx, id.Value())
	if err != nil {
		return storageError(err, func() error { return bookNotFound(id.Value()) })
	}
	if err := s.books.Delete(ctx, id.Value()); err != nil {
		return storageError(err, func() error { return bookNotFound(id.Value()) })
	}

	s.logger.Info("Book deleted", zap.String("id", id.Value()), zap.Int64("reviews_deleted", n))
	return nil
}

// TopRated returns the best reviewed books.
func (s *BookService) TopRated(ctx context.Context, q dto.TopRatedQueryDTO) ([]*domain.BookPrimitive, error) {
	books, err := s.books.TopRated(ctx, q.Limit)
	if err != nil {
		return nil, storageError(err, func() error { return bookNotFound("") })
	}
	return books, nil
}
