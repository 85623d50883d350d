// Package memory implements the book and review repositories with in-process
// maps. It backs the development server and the HTTP tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
)

// Store holds books and reviews behind one lock so that deleting a book and
// aggregating its reviews see a consistent view.
type Store struct {
	mu      sync.RWMutex
	books   map[string]domain.BookPrimitive
	reviews map[string]domain.ReviewPrimitive
}

// New creates an empty store.
func New() *Store {
	return &Store{
		books:   make(map[string]domain.BookPrimitive),
		reviews: make(map[string]domain.ReviewPrimitive),
	}
}

// NewModels returns repositories sharing a fresh store.
func NewModels() data.Models {
	s := New()
	return data.Models{
		Books:   &BookRepository{store: s},
		Reviews: &ReviewRepository{store: s},
	}
}

// stats computes the aggregates of one book. Callers hold at least a read lock.
func (s *Store) stats(bookID string) (float64, int, error) {
	var ratings []domain.Rating
	for _, r := range s.reviews {
		if r.BookID != bookID {
			continue
		}
		rating, err := domain.NewRating(r.Rating)
		if err != nil {
			return 0, 0, err
		}
		ratings = append(ratings, rating)
	}
	return domain.AverageOf(ratings).Value(), len(ratings), nil
}

// withStats returns a copy of b carrying its current aggregates.
func (s *Store) withStats(b domain.BookPrimitive) (*domain.BookPrimitive, error) {
	avg, n, err := s.stats(b.ID)
	if err != nil {
		return nil, err
	}
	out := cloneBook(b)
	out.AvgRating = avg
	out.ReviewCount = n
	return &out, nil
}

func (s *Store) isbnTaken(isbn *string, exceptID string) bool {
	if isbn == nil {
		return false
	}
	for id, b := range s.books {
		if id != exceptID && b.ISBN != nil && *b.ISBN == *isbn {
			return true
		}
	}
	return false
}

// BookRepository is the in-memory book store.
type BookRepository struct {
	store *Store
}

// Insert adds a new book. Aggregates on book are ignored.
func (r *BookRepository) Insert(_ context.Context, book *domain.BookPrimitive) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.isbnTaken(book.ISBN, "") {
		return data.ErrDuplicateISBN
	}
	stored := cloneBook(*book)
	stored.AvgRating, stored.ReviewCount = 0, 0
	r.store.books[book.ID] = stored
	return nil
}

// Get retrieves a book by id.
func (r *BookRepository) Get(_ context.Context, id string) (*domain.BookPrimitive, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.books[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return r.store.withStats(b)
}

// GetAll returns one page of books matching filters.
func (r *BookRepository) GetAll(_ context.Context, filters data.BookFilters) ([]*domain.BookPrimitive, data.Metadata, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(filters.Search)
	author := strings.ToLower(filters.Author)

	var matched []*domain.BookPrimitive
	for _, b := range r.store.books {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.Author), search) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		book, err := r.store.withStats(b)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if filters.MinRating != nil && book.AvgRating < *filters.MinRating {
			continue
		}
		matched = append(matched, book)
	}

	slices.SortFunc(matched, func(a, b *domain.BookPrimitive) int {
		c := compareBooks(a, b, filters.SortBy)
		if filters.Descending() {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c
	})

	page, meta := paginate(matched, filters.Filters)
	return page, meta, nil
}

// Update replaces the stored fields of an existing book.
func (r *BookRepository) Update(_ context.Context, book *domain.BookPrimitive) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.books[book.ID]; !ok {
		return data.ErrRecordNotFound
	}
	if r.store.isbnTaken(book.ISBN, book.ID) {
		return data.ErrDuplicateISBN
	}
	stored := cloneBook(*book)
	stored.AvgRating, stored.ReviewCount = 0, 0
	r.store.books[book.ID] = stored
	return nil
}

// Delete removes a book together with its reviews.
func (r *BookRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.books[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(r.store.books, id)
	for rid, rv := range r.store.reviews {
		if rv.BookID == id {
			delete(r.store.reviews, rid)
		}
	}
	return nil
}

// TopRated returns up to limit reviewed books, best average first.
func (r *BookRepository) TopRated(_ context.Context, limit int) ([]*domain.BookPrimitive, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rated []*domain.BookPrimitive
	for _, b := range r.store.books {
		book, err := r.store.withStats(b)
		if err != nil {
			return nil, err
		}
		if book.ReviewCount > 0 {
			rated = append(rated, book)
		}
	}
	slices.SortFunc(rated, compareTopRated)
	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}

// ReviewRepository is the in-memory review store.
type ReviewRepository struct {
	store *Store
}

// Insert adds a new review. The caller has checked that the book exists.
func (r *ReviewRepository) Insert(_ context.Context, review *domain.ReviewPrimitive) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reviews[review.ID] = cloneReview(*review)
	return nil
}

// Get retrieves a review by id.
func (r *ReviewRepository) Get(_ context.Context, id string) (*domain.ReviewPrimitive, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	out := cloneReview(rv)
	return &out, nil
}

// GetAll returns one page of reviews matching filters.
func (r *ReviewRepository) GetAll(_ context.Context, filters data.ReviewFilters) ([]*domain.ReviewPrimitive, data.Metadata, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*domain.ReviewPrimitive
	for _, rv := range r.store.reviews {
		if filters.BookID != "" && rv.BookID != filters.BookID {
			continue
		}
		if filters.MinRating != nil && rv.Rating < *filters.MinRating {
			continue
		}
		out := cloneReview(rv)
		matched = append(matched, &out)
	}

	slices.SortFunc(matched, func(a, b *domain.ReviewPrimitive) int {
		c := compareReviews(a, b, filters.SortBy)
		if filters.Descending() {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c
	})

	page, meta := paginate(matched, filters.Filters)
	return page, meta, nil
}

// Update replaces the stored fields of an existing review.
func (r *ReviewRepository) Update(_ context.Context, review *domain.ReviewPrimitive) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reviews[review.ID]; !ok {
		return data.ErrRecordNotFound
	}
	r.store.reviews[review.ID] = cloneReview(*review)
	return nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reviews[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

// DeleteByBook removes every review of a book and reports how many went.
func (r *ReviewRepository) DeleteByBook(_ context.Context, bookID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, rv := range r.store.reviews {
		if rv.BookID == bookID {
			delete(r.store.reviews, id)
			n++
		}
	}
	return n, nil
}

func compareBooks(a, b *domain.BookPrimitive, key string) int {
	switch key {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "publishedYear":
		return cmp.Compare(a.PublishedYear, b.PublishedYear)
	case "avgRating":
		return cmp.Compare(a.AvgRating, b.AvgRating)
	case "reviewCount":
		return cmp.Compare(a.ReviewCount, b.ReviewCount)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareTopRated(a, b *domain.BookPrimitive) int {
	if c := cmp.Compare(b.AvgRating, a.AvgRating); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareReviews(a, b *domain.ReviewPrimitive, key string) int {
	switch key {
	case "rating":
		return cmp.Compare(a.Rating, b.Rating)
	case "reviewerName":
		return strings.Compare(a.ReviewerName, b.ReviewerName)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func paginate[T any](items []T, f data.Filters) ([]T, data.Metadata) {
	meta := data.CalculateMetadata(len(items), f.Page, f.PageSize)
	start := min(f.Offset(), len(items))
	end := min(start+f.Limit(), len(items))
	if start == end {
		return []T{}, meta
	}
	return items[start:end], meta
}

func cloneBook(b domain.BookPrimitive) domain.BookPrimitive {
	b.ISBN = cloneString(b.ISBN)
	b.Description = cloneString(b.Description)
	return b
}

func cloneReview(r domain.ReviewPrimitive) domain.ReviewPrimitive {
	r.Comment = cloneString(r.Comment)
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
