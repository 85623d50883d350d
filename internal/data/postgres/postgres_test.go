package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	createdAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updatedAt = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
)

var bookCols = []string{
	"id", "title", "author", "isbn", "published_year", "description",
	"avg_rating", "review_count", "created_at", "updated_at",
}

func newModels(t *testing.T) (data.Models, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewModels(db, zap.NewNop()), mock
}

func ptr[T any](v T) *T { return &v }

func TestBookModel_Get(t *testing.T) {
	m, mock := newModels(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM books b")).
		WithArgs("507f1f77bcf86cd799439011").
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(
			"507f1f77bcf86cd799439011", "Clean Code", "Robert C. Martin", "9780132350884", 2008, nil,
			4.25, 4, createdAt, updatedAt,
		))

	got, err := m.Books.Get(context.Background(), "507f1f77bcf86cd799439011")
	require.NoError(t, err)

	want := &domain.BookPrimitive{
		ID:            "507f1f77bcf86cd799439011",
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		ISBN:          ptr("9780132350884"),
		PublishedYear: 2008,
		AvgRating:     4.3,
		ReviewCount:   4,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	assert.Equal(t, "", cmp.Diff(want, got))
}

func TestBookModel_GetNotFound(t *testing.T) {
	m, mock := newModels(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM books b")).
		WithArgs("507f1f77bcf86cd799439011").
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := m.Books.Get(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestBookModel_GetRejectsCorruptAggregate(t *testing.T) {
	m, mock := newModels(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM books b")).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(
			"507f1f77bcf86cd799439011", "T", "A", nil, 2000, nil, 7.0, 1, createdAt, updatedAt,
		))

	_, err := m.Books.Get(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorContains(t, err, "Average rating must be between 0 and 5")
}

func TestBookModel_GetAll(t *testing.T) {
	m, mock := newModels(t)

	cols := append([]string{"count"}, bookCols...)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY avg_rating DESC, b.id ASC")).
		WithArgs("martin", "", 4.0, 2, 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "507f1f77bcf86cd799439012", "Refactoring", "Martin Fowler", nil, 1999, "Improving code", 4.0, 1, createdAt, createdAt))

	books, meta, err := m.Books.GetAll(context.Background(), data.BookFilters{
		Filters:   data.Filters{Page: 2, PageSize: 2, SortBy: "avgRating", SortOrder: "desc"},
		Search:    "martin",
		MinRating: ptr(4.0),
	})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Refactoring", books[0].Title)
	assert.Nil(t, books[0].ISBN)
	assert.Equal(t, ptr("Improving code"), books[0].Description)
	assert.Equal(t, data.Metadata{CurrentPage: 2, PageSize: 2, FirstPage: 1, LastPage: 2, TotalRecords: 3}, meta)
}

func TestBookModel_GetAllUnknownSortFallsBack(t *testing.T) {
	m, mock := newModels(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY b.created_at ASC, b.id ASC")).
		WillReturnRows(sqlmock.NewRows(append([]string{"count"}, bookCols...)))

	books, meta, err := m.Books.GetAll(context.Background(), data.BookFilters{
		Filters: data.Filters{Page: 1, PageSize: 10, SortBy: "id; DROP TABLE books", SortOrder: "asc"},
	})
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books)
	assert.Equal(t, data.Metadata{}, meta)
}

func TestBookModel_Insert(t *testing.T) {
	book := &domain.BookPrimitive{
		ID:            "507f1f77bcf86cd799439011",
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		ISBN:          ptr("9780132350884"),
		PublishedYear: 2008,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	t.Run("ok", func(t *testing.T) {
		m, mock := newModels(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
			WithArgs(book.ID, book.Title, book.Author, "9780132350884", 2008, nil, createdAt, createdAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, m.Books.Insert(context.Background(), book))
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		m, mock := newModels(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
			WillReturnError(&pq.Error{Code: uniqueViolation})
		assert.ErrorIs(t, m.Books.Insert(context.Background(), book), data.ErrDuplicateISBN)
	})
}

func TestBookModel_UpdateAndDelete(t *testing.T) {
	m, mock := newModels(t)
	book := &domain.BookPrimitive{ID: "507f1f77bcf86cd799439011", Title: "T", Author: "A", PublishedYear: 2000, UpdatedAt: updatedAt}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).
		WithArgs("T", "A", nil, 2000, nil, updatedAt, book.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = $1")).
		WithArgs(book.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = $1")).
		WithArgs(book.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	assert.NoError(t, m.Books.Update(ctx, book))
	assert.ErrorIs(t, m.Books.Update(ctx, book), data.ErrRecordNotFound)
	assert.NoError(t, m.Books.Delete(ctx, book.ID))
	assert.ErrorIs(t, m.Books.Delete(ctx, book.ID), data.ErrRecordNotFound)
}

func TestBookModel_TopRated(t *testing.T) {
	m, mock := newModels(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY avg_rating DESC, review_count DESC")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(bookCols).
			AddRow("507f1f77bcf86cd799439012", "Refactoring", "Martin Fowler", nil, 1999, nil, 5.0, 2, createdAt, createdAt).
			AddRow("507f1f77bcf86cd799439011", "Clean Code", "Robert C. Martin", nil, 2008, nil, 4.3, 3, createdAt, createdAt))

	books, err := m.Books.TopRated(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 5.0, books[0].AvgRating)
	assert.Equal(t, 3, books[1].ReviewCount)
}

var reviewCols = []string{"id", "book_id", "rating", "comment", "reviewer_name", "created_at", "updated_at"}

func TestReviewModel_GetAll(t *testing.T) {
	m, mock := newModels(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY rating DESC, id ASC")).
		WithArgs("507f1f77bcf86cd799439011", 4, 10, 0).
		WillReturnRows(sqlmock.NewRows(append([]string{"count"}, reviewCols...)).
			AddRow(2, "65f0c0ffee0000000000abc1", "507f1f77bcf86cd799439011", 5, "Great", "Ann", createdAt, createdAt).
			AddRow(2, "65f0c0ffee0000000000abc2", "507f1f77bcf86cd799439011", 4, nil, "Bo", createdAt, createdAt))

	reviews, meta, err := m.Reviews.GetAll(context.Background(), data.ReviewFilters{
		Filters:   data.Filters{Page: 1, PageSize: 10, SortBy: "rating", SortOrder: "desc"},
		BookID:    "507f1f77bcf86cd799439011",
		MinRating: ptr(4),
	})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, ptr("Great"), reviews[0].Comment)
	assert.Nil(t, reviews[1].Comment)
	assert.Equal(t, 2, meta.TotalRecords)
}

func TestReviewModel_CRUD(t *testing.T) {
	m, mock := newModels(t)
	ctx := context.Background()
	review := &domain.ReviewPrimitive{
		ID:           "65f0c0ffee0000000000abc1",
		BookID:       "507f1f77bcf86cd799439011",
		Rating:       5,
		ReviewerName: "Ann",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(review.ID, review.BookID, 5, nil, "Ann", createdAt, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id = $1")).
		WithArgs(review.ID).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(review.ID, review.BookID, 5, nil, "Ann", createdAt, createdAt))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews")).
		WithArgs(5, nil, "Ann", createdAt, review.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = $1")).
		WithArgs(review.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE book_id = $1")).
		WithArgs(review.BookID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, m.Reviews.Insert(ctx, review))

	got, err := m.Reviews.Get(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "", cmp.Diff(review, got))

	require.NoError(t, m.Reviews.Update(ctx, review))
	assert.ErrorIs(t, m.Reviews.Delete(ctx, review.ID), data.ErrRecordNotFound)

	n, err := m.Reviews.DeleteByBook(ctx, review.BookID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMigrations_Embedded(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}
