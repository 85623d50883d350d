package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"go.uber.org/zap"
)

// bookSelect reads a book with its aggregates. The stats subquery rounds the
// average to one decimal, matching AverageRating.
const bookSelect = `
	b.id, b.title, b.author, b.isbn, b.published_year, b.description,
	COALESCE(s.avg_rating, 0) AS avg_rating,
	COALESCE(s.review_count, 0) AS review_count,
	b.created_at, b.updated_at`

const bookStats = `
	SELECT book_id, ROUND(AVG(rating), 1)::float8 AS avg_rating, COUNT(*) AS review_count
	FROM reviews
	GROUP BY book_id`

var bookSortColumns = map[string]string{
	"title":         "b.title",
	"author":        "b.author",
	"publishedYear": "b.published_year",
	"avgRating":     "avg_rating",
	"reviewCount":   "review_count",
	"createdAt":     "b.created_at",
	"updatedAt":     "b.updated_at",
}

// BookModel wraps a database connection pool for the books table.
type BookModel struct {
	DB     *sql.DB
	logger *zap.Logger
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner, extra ...any) (*domain.BookPrimitive, error) {
	var b domain.BookPrimitive
	dest := append(extra,
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear, &b.Description,
		&b.AvgRating, &b.ReviewCount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	avg, err := data.RoundAverage(b.AvgRating)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", b.ID, err)
	}
	b.AvgRating = avg
	return &b, nil
}

// Insert adds a new book row.
func (m *BookModel) Insert(ctx context.Context, book *domain.BookPrimitive) error {
	query := `
		INSERT INTO books (id, title, author, isbn, published_year, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	args := []any{book.ID, book.Title, book.Author, book.ISBN, book.PublishedYear, book.Description, book.CreatedAt, book.UpdatedAt}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := m.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return data.ErrDuplicateISBN
		}
		m.logger.Warn("Failed to insert book", zap.String("id", book.ID), zap.Error(err))
		return err
	}
	return nil
}

// Get retrieves a single book by id.
func (m *BookModel) Get(ctx context.Context, id string) (*domain.BookPrimitive, error) {
	query := `SELECT ` + bookSelect + `
		FROM books b
		LEFT JOIN (` + bookStats + `) s ON s.book_id = b.id
		WHERE b.id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrRecordNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetAll returns one page of books matching filters. COUNT(*) OVER() returns
// the total match count in the same round trip.
func (m *BookModel) GetAll(ctx context.Context, filters data.BookFilters) ([]*domain.BookPrimitive, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM books b
		LEFT JOIN (%s) s ON s.book_id = b.id
		WHERE ($1 = '' OR b.title ILIKE '%%' || $1 || '%%' OR b.author ILIKE '%%' || $1 || '%%')
		AND ($2 = '' OR b.author ILIKE '%%' || $2 || '%%')
		AND ($3::float8 IS NULL OR COALESCE(s.avg_rating, 0) >= $3)
		ORDER BY %s %s, b.id ASC
		LIMIT $4 OFFSET $5`,
		bookSelect, bookStats,
		orderBy(bookSortColumns, filters.SortBy, "b.created_at"), direction(filters.Filters))

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query,
		filters.Search, filters.Author, filters.MinRating, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	books := []*domain.BookPrimitive{}
	for rows.Next() {
		book, err := scanBook(rows, &totalRecords)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}

	return books, data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize), nil
}

// Update writes every editable column of book.
func (m *BookModel) Update(ctx context.Context, book *domain.BookPrimitive) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, published_year = $4, description = $5, updated_at = $6
		WHERE id = $7`
	args := []any{book.Title, book.Author, book.ISBN, book.PublishedYear, book.Description, book.UpdatedAt, book.ID}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return data.ErrDuplicateISBN
		}
		return err
	}
	return requireAffected(result)
}

// Delete removes a book. Its reviews go with it through ON DELETE CASCADE.
func (m *BookModel) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// TopRated returns up to limit reviewed books ordered by average rating.
func (m *BookModel) TopRated(ctx context.Context, limit int) ([]*domain.BookPrimitive, error) {
	query := `SELECT ` + bookSelect + `
		FROM books b
		JOIN (` + bookStats + `) s ON s.book_id = b.id
		ORDER BY avg_rating DESC, review_count DESC, b.id ASC
		LIMIT $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*domain.BookPrimitive{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}
