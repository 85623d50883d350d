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

const reviewColumns = `id, book_id, rating, comment, reviewer_name, created_at, updated_at`

var reviewSortColumns = map[string]string{
	"rating":       "rating",
	"reviewerName": "reviewer_name",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// ReviewModel wraps a database connection pool for the reviews table.
type ReviewModel struct {
	DB     *sql.DB
	logger *zap.Logger
}

func scanReview(row scanner, extra ...any) (*domain.ReviewPrimitive, error) {
	var r domain.ReviewPrimitive
	dest := append(extra,
		&r.ID, &r.BookID, &r.Rating, &r.Comment, &r.ReviewerName, &r.CreatedAt, &r.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &r, nil
}

// Insert adds a new review row.
func (m *ReviewModel) Insert(ctx context.Context, review *domain.ReviewPrimitive) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	args := []any{review.ID, review.BookID, review.Rating, review.Comment, review.ReviewerName, review.CreatedAt, review.UpdatedAt}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := m.DB.ExecContext(ctx, query, args...); err != nil {
		m.logger.Warn("Failed to insert review", zap.String("id", review.ID), zap.Error(err))
		return err
	}
	return nil
}

// Get retrieves a single review by id.
func (m *ReviewModel) Get(ctx context.Context, id string) (*domain.ReviewPrimitive, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	review, err := scanReview(m.DB.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrRecordNotFound
		}
		return nil, err
	}
	return review, nil
}

// GetAll returns one page of reviews matching filters.
func (m *ReviewModel) GetAll(ctx context.Context, filters data.ReviewFilters) ([]*domain.ReviewPrimitive, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM reviews
		WHERE ($1 = '' OR book_id = $1)
		AND ($2::int IS NULL OR rating >= $2)
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`,
		reviewColumns, orderBy(reviewSortColumns, filters.SortBy, "created_at"), direction(filters.Filters))

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, filters.BookID, filters.MinRating, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	reviews := []*domain.ReviewPrimitive{}
	for rows.Next() {
		review, err := scanReview(rows, &totalRecords)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}

	return reviews, data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize), nil
}

// Update writes every editable column of review. book_id never changes.
func (m *ReviewModel) Update(ctx context.Context, review *domain.ReviewPrimitive) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, reviewer_name = $3, updated_at = $4
		WHERE id = $5`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, review.Rating, review.Comment, review.ReviewerName, review.UpdatedAt, review.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a review.
func (m *ReviewModel) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteByBook removes every review of a book.
func (m *ReviewModel) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = $1`, bookID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
