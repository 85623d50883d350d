package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func book(id, title, author string, offset int) *domain.BookPrimitive {
	at := t0.Add(time.Duration(offset) * time.Hour)
	return &domain.BookPrimitive{
		ID:            id,
		Title:         title,
		Author:        author,
		PublishedYear: 2000 + offset,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func review(id, bookID string, rating int) *domain.ReviewPrimitive {
	return &domain.ReviewPrimitive{
		ID:           id,
		BookID:       bookID,
		Rating:       rating,
		ReviewerName: "reader " + id[len(id)-1:],
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
}

func seed(t *testing.T) data.Models {
	t.Helper()
	ctx := context.Background()
	m := NewModels()
	require.NoError(t, m.Books.Insert(ctx, book("b1", "Clean Code", "Robert Martin", 1)))
	require.NoError(t, m.Books.Insert(ctx, book("b2", "Refactoring", "Martin Fowler", 2)))
	require.NoError(t, m.Books.Insert(ctx, book("b3", "Dune", "Frank Herbert", 3)))
	require.NoError(t, m.Reviews.Insert(ctx, review("r1", "b1", 5)))
	require.NoError(t, m.Reviews.Insert(ctx, review("r2", "b1", 4)))
	require.NoError(t, m.Reviews.Insert(ctx, review("r3", "b1", 4)))
	require.NoError(t, m.Reviews.Insert(ctx, review("r4", "b2", 5)))
	return m
}

func defaultFilters() data.Filters {
	return data.Filters{Page: 1, PageSize: 10, SortBy: "createdAt", SortOrder: "asc"}
}

func TestBookRepository_GetAggregates(t *testing.T) {
	m := seed(t)
	b, err := m.Books.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, b.AvgRating)
	assert.Equal(t, 3, b.ReviewCount)

	b, err = m.Books.Get(context.Background(), "b3")
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.AvgRating)
	assert.Equal(t, 0, b.ReviewCount)

	_, err = m.Books.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestBookRepository_AverageRoundsHalfUp(t *testing.T) {
	ctx := context.Background()
	m := NewModels()
	require.NoError(t, m.Books.Insert(ctx, book("b1", "Dune", "Frank Herbert", 1)))
	for i, rating := range []int{4, 4, 4, 5} {
		require.NoError(t, m.Reviews.Insert(ctx, review("r"+string(rune('1'+i)), "b1", rating)))
	}

	b, err := m.Books.Get(ctx, "b1")

	require.NoError(t, err)
	assert.Equal(t, 4.3, b.AvgRating)
	assert.Equal(t, 4, b.ReviewCount)
}

func TestBookRepository_CorruptRatingIsAnError(t *testing.T) {
	ctx := context.Background()
	m := NewModels()
	require.NoError(t, m.Books.Insert(ctx, book("b1", "Dune", "Frank Herbert", 1)))
	require.NoError(t, m.Reviews.Insert(ctx, review("r1", "b1", 9)))

	_, err := m.Books.Get(ctx, "b1")

	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestBookRepository_GetAll(t *testing.T) {
	m := seed(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters data.BookFilters
		want    []string
		total   int
	}{
		{name: "all by createdAt", filters: data.BookFilters{Filters: defaultFilters()}, want: []string{"b1", "b2", "b3"}, total: 3},
		{name: "search is case insensitive over title and author", filters: data.BookFilters{Filters: defaultFilters(), Search: "MARTIN"}, want: []string{"b1", "b2"}, total: 2},
		{name: "author", filters: data.BookFilters{Filters: defaultFilters(), Author: "herbert"}, want: []string{"b3"}, total: 1},
		{name: "min rating", filters: data.BookFilters{Filters: defaultFilters(), MinRating: ptr(4.5)}, want: []string{"b2"}, total: 1},
		{name: "sorted by avgRating desc", filters: data.BookFilters{Filters: data.Filters{Page: 1, PageSize: 10, SortBy: "avgRating", SortOrder: "desc"}}, want: []string{"b2", "b1", "b3"}, total: 3},
		{name: "second page", filters: data.BookFilters{Filters: data.Filters{Page: 2, PageSize: 2, SortBy: "title", SortOrder: "asc"}}, want: []string{"b2"}, total: 3},
		{name: "past the end", filters: data.BookFilters{Filters: data.Filters{Page: 5, PageSize: 2, SortBy: "title", SortOrder: "asc"}}, want: []string{}, total: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, meta, err := m.Books.GetAll(ctx, tt.filters)
			require.NoError(t, err)
			ids := []string{}
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, tt.total, meta.TotalRecords)
		})
	}
}

func TestBookRepository_DuplicateISBN(t *testing.T) {
	m := NewModels()
	ctx := context.Background()
	a := book("b1", "A", "X", 0)
	a.ISBN = ptr("9780132350884")
	require.NoError(t, m.Books.Insert(ctx, a))

	b := book("b2", "B", "Y", 0)
	b.ISBN = ptr("9780132350884")
	assert.ErrorIs(t, m.Books.Insert(ctx, b), data.ErrDuplicateISBN)

	a.Title = "A2"
	assert.NoError(t, m.Books.Update(ctx, a), "a book keeps its own isbn")
}

func TestBookRepository_UpdateAndDelete(t *testing.T) {
	m := seed(t)
	ctx := context.Background()

	b, err := m.Books.Get(ctx, "b2")
	require.NoError(t, err)
	b.Title = "Refactoring 2nd Ed."
	require.NoError(t, m.Books.Update(ctx, b))

	got, err := m.Books.Get(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, "Refactoring 2nd Ed.", got.Title)

	assert.ErrorIs(t, m.Books.Update(ctx, book("nope", "x", "y", 0)), data.ErrRecordNotFound)

	require.NoError(t, m.Books.Delete(ctx, "b1"))
	_, err = m.Reviews.Get(ctx, "r1")
	assert.ErrorIs(t, err, data.ErrRecordNotFound, "reviews go with their book")
	_, err = m.Reviews.Get(ctx, "r4")
	assert.NoError(t, err)

	assert.ErrorIs(t, m.Books.Delete(ctx, "b1"), data.ErrRecordNotFound)
}

func TestBookRepository_TopRated(t *testing.T) {
	m := seed(t)
	top, err := m.Books.TopRated(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2, "unreviewed books are not ranked")
	assert.Equal(t, "b2", top[0].ID)
	assert.Equal(t, "b1", top[1].ID)

	top, err = m.Books.TopRated(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestReviewRepository(t *testing.T) {
	m := seed(t)
	ctx := context.Background()

	reviews, meta, err := m.Reviews.GetAll(ctx, data.ReviewFilters{
		Filters: data.Filters{Page: 1, PageSize: 10, SortBy: "rating", SortOrder: "desc"},
		BookID:  "b1",
	})
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 3, meta.TotalRecords)

	reviews, _, err = m.Reviews.GetAll(ctx, data.ReviewFilters{Filters: defaultFilters(), MinRating: ptr(5)})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	r, err := m.Reviews.Get(ctx, "r2")
	require.NoError(t, err)
	r.Rating = 1
	r.Comment = ptr("changed my mind")
	require.NoError(t, m.Reviews.Update(ctx, r))

	b, err := m.Books.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 3.3, b.AvgRating, "aggregates follow review edits")

	require.NoError(t, m.Reviews.Delete(ctx, "r2"))
	assert.ErrorIs(t, m.Reviews.Delete(ctx, "r2"), data.ErrRecordNotFound)

	n, err := m.Reviews.DeleteByBook(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_ReturnsCopies(t *testing.T) {
	m := seed(t)
	ctx := context.Background()
	r, err := m.Reviews.Get(ctx, "r1")
	require.NoError(t, err)
	r.Rating = 1

	again, err := m.Reviews.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Rating)
}
