package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/validator"
)

// Paging defaults shared by the list endpoints.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
	DefaultTopRated  = 5
	MaxTopRated      = 50
)

// Sort keys accepted by the list endpoints.
var (
	BookSortFields   = []string{"title", "author", "publishedYear", "avgRating", "reviewCount", "createdAt", "updatedAt"}
	ReviewSortFields = []string{"rating", "reviewerName", "createdAt", "updatedAt"}
)

// GetBooksQueryDTO holds the query string of GET /v1/books.
type GetBooksQueryDTO struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string   // matched against title and author
	Author    string   // matched against author only
	MinRating *float64 // lower bound on the average rating
}

// ParseGetBooksQuery reads the book list parameters from qs, applying
// defaults for anything absent. Unparsable numbers are reported on v.
func ParseGetBooksQuery(qs url.Values, v *validator.Validator) GetBooksQueryDTO {
	q := GetBooksQueryDTO{
		Page:      readInt(qs, "page", DefaultPage, v),
		Limit:     readInt(qs, "limit", DefaultLimit, v),
		SortBy:    readString(qs, "sortBy", DefaultSortBy),
		SortOrder: strings.ToLower(readString(qs, "sortOrder", DefaultSortOrder)),
		Search:    strings.TrimSpace(qs.Get("search")),
		Author:    strings.TrimSpace(qs.Get("author")),
	}
	if qs.Has("minRating") {
		f, err := strconv.ParseFloat(qs.Get("minRating"), 64)
		if err != nil {
			v.AddError("minRating", "must be a number")
		} else {
			q.MinRating = &f
		}
	}
	return q
}

// ValidateGetBooksQuery checks paging, sorting and the rating bound.
func ValidateGetBooksQuery(v *validator.Validator, q GetBooksQueryDTO) {
	validatePaging(v, q.Page, q.Limit, q.SortBy, q.SortOrder, BookSortFields)
	if q.MinRating != nil {
		v.Check(*q.MinRating >= 0 && *q.MinRating <= 5, "minRating", "must be between 0 and 5")
	}
}

// GetReviewsQueryDTO holds the query string of GET /v1/reviews and
// GET /v1/books/:id/reviews.
type GetReviewsQueryDTO struct {
	BookID    string
	MinRating *int
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ParseGetReviewsQuery reads the review list parameters from qs.
func ParseGetReviewsQuery(qs url.Values, v *validator.Validator) GetReviewsQueryDTO {
	q := GetReviewsQueryDTO{
		BookID:    strings.TrimSpace(qs.Get("bookId")),
		Page:      readInt(qs, "page", DefaultPage, v),
		Limit:     readInt(qs, "limit", DefaultLimit, v),
		SortBy:    readString(qs, "sortBy", DefaultSortBy),
		SortOrder: strings.ToLower(readString(qs, "sortOrder", DefaultSortOrder)),
	}
	if qs.Has("minRating") {
		n := readInt(qs, "minRating", 0, v)
		q.MinRating = &n
	}
	return q
}

// ValidateGetReviewsQuery checks paging, sorting, the book id and the
// rating bound.
func ValidateGetReviewsQuery(v *validator.Validator, q GetReviewsQueryDTO) {
	validatePaging(v, q.Page, q.Limit, q.SortBy, q.SortOrder, ReviewSortFields)
	if q.BookID != "" {
		_, err := domain.BookIDFromString(q.BookID)
		v.CheckError(err, "bookId")
	}
	if q.MinRating != nil {
		v.Check(*q.MinRating >= 1 && *q.MinRating <= 5, "minRating", "must be between 1 and 5")
	}
}

// TopRatedQueryDTO holds the query string of GET /v1/top-rated-books.
type TopRatedQueryDTO struct {
	Limit int
}

// ParseTopRatedQuery reads the limit from qs.
func ParseTopRatedQuery(qs url.Values, v *validator.Validator) TopRatedQueryDTO {
	return TopRatedQueryDTO{Limit: readInt(qs, "limit", DefaultTopRated, v)}
}

// ValidateTopRatedQuery checks the limit.
func ValidateTopRatedQuery(v *validator.Validator, q TopRatedQueryDTO) {
	v.Check(q.Limit > 0, "limit", "must be greater than zero")
	v.Check(q.Limit <= MaxTopRated, "limit", "must be a maximum of 50")
}

func validatePaging(v *validator.Validator, page, limit int, sortBy, sortOrder string, safe []string) {
	v.Check(page > 0, "page", "must be greater than zero")
	v.Check(page <= 10_000_000, "page", "must be a maximum of 10 million")
	v.Check(limit > 0, "limit", "must be greater than zero")
	v.Check(limit <= MaxLimit, "limit", "must be a maximum of 100")
	v.Check(validator.In(sortBy, safe...), "sortBy", "invalid sort value")
	v.Check(validator.In(sortOrder, "asc", "desc"), "sortOrder", "must be asc or desc")
}

// readString returns the value of key, or defaultValue when it is absent or empty.
func readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt returns the integer value of key, or defaultValue when it is
// absent. A value that does not parse is reported on v.
func readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}
