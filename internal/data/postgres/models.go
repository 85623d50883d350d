// Package postgres implements the book and review repositories on
// PostgreSQL through database/sql and lib/pq.
package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// queryTimeout bounds every statement.
const queryTimeout = 3 * time.Second

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// NewModels returns repositories backed by db.
func NewModels(db *sql.DB, logger *zap.Logger) data.Models {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "postgres"),
	)
	return data.Models{
		Books:   &BookModel{DB: db, logger: logger},
		Reviews: &ReviewModel{DB: db, logger: logger},
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// orderBy returns the ORDER BY column for a wire sort key, falling back to
// def for keys outside the map.
func orderBy(columns map[string]string, key, def string) string {
	if col, ok := columns[key]; ok {
		return col
	}
	return def
}

func direction(f data.Filters) string {
	if f.Descending() {
		return "DESC"
	}
	return "ASC"
}
