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

// ReviewService manages reviews.
type ReviewService struct {
	books   bookRepository
	reviews reviewRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewReviewService creates a review service.
func NewReviewService(books bookRepository, reviews reviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		books:   books,
		reviews: reviews,
		logger:  logger.With(zap.String(logging.FieldComponent, "service"), zap.String(logging.FieldType, "review")),
		now:     utcNow,
	}
}

// Create stores a review. The value objects are checked first; the book's
// existence is checked only for input that is otherwise valid.
func (s *ReviewService) Create(ctx context.Context, d dto.CreateReviewDTO) (*domain.ReviewPrimitive, error) {
	nr, err := mapper.ReviewFromCreateDTO(d)
	if err != nil {
		return nil, err
	}

	bookID := nr.BookID.Value()
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return nil, storageError(err, func() error { return bookNotFound(bookID) })
	}

	review := mapper.ReviewToPrimitive(nr.WithIdentity(domain.NewReviewID(), s.now()))
	if err := s.reviews.Insert(ctx, &review); err != nil {
		return nil, storageError(err, func() error { return bookNotFound(bookID) })
	}

	s.logger.Info("Review created", zap.String("id", review.ID), zap.String("book_id", bookID), zap.Int("rating", review.Rating))
	return &review, nil
}

// Get returns one review.
func (s *ReviewService) Get(ctx context.Context, id domain.ReviewID) (*domain.ReviewPrimitive, error) {
	review, err := s.reviews.Get(ctx, id.Value())
	if err != nil {
		return nil, storageError(err, func() error { return reviewNotFound(id.Value()) })
	}
	return review, nil
}

// List returns one page of reviews, optionally narrowed to a book.
func (s *ReviewService) List(ctx context.Context, q dto.GetReviewsQueryDTO) ([]*domain.ReviewPrimitive, data.Metadata, error) {
	reviews, meta, err := s.reviews.GetAll(ctx, data.ReviewFilters{
		Filters:   filters(q.Page, q.Limit, q.SortBy, q.SortOrder),
		BookID:    q.BookID,
		MinRating: q.MinRating,
	})
	if err != nil {
		return nil, data.Metadata{}, storageError(err, func() error { return reviewNotFound("") })
	}
	return reviews, meta, nil
}

// ListForBook returns one page of a book's reviews. The book must exist.
func (s *ReviewService) ListForBook(ctx context.Context, bookID domain.BookID, q dto.GetReviewsQueryDTO) ([]*domain.ReviewPrimitive, data.Metadata, error) {
	if _, err := s.books.Get(ctx, bookID.Value()); err != nil {
		return nil, data.Metadata{}, storageError(err, func() error { return bookNotFound(bookID.Value()) })
	}
	q.BookID = bookID.Value()
	return s.List(ctx, q)
}

// Update applies the fields present on d. A bookId on d is ignored.
func (s *ReviewService) Update(ctx context.Context, id domain.ReviewID, d dto.UpdateReviewDTO) (*domain.ReviewPrimitive, error) {
	patch, err := mapper.ReviewFromUpdateDTO(d)
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

	review, err := mapper.ReviewFromPrimitive(*current)
	if err != nil {
		return nil, corrupt(err)
	}
	review = review.Apply(patch)
	review.UpdatedAt = s.now()

	updated := mapper.ReviewToPrimitive(review)
	if err := s.reviews.Update(ctx, &updated); err != nil {
		return nil, storageError(err, func() error { return reviewNotFound(id.Value()) })
	}

	s.logger.Info("Review updated", zap.String("id", updated.ID), zap.Strings("fields", patch.Fields()))
	return &updated, nil
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, id domain.ReviewID) error {
	if err := s.reviews.Delete(ctx, id.Value()); err != nil {
		return storageError(err, func() error { return reviewNotFound(id.Value()) })
	}
	s.logger.Info("Review deleted", zap.String("id", id.Value()))
	return nil
}
