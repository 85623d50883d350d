package dto

import (
	"net/url"
	"strings"
	"testing"

	"github.com/aoideee/bookreviews/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookDTO_Factories(t *testing.T) {
	d := CreateBookDTO{
		Title:         " Clean Code ",
		Author:        "Robert C. Martin",
		ISBN:          "978-0-13-235088-4",
		PublishedYear: 2008,
	}

	title, err := d.CreateTitle()
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", title.Value())

	isbn, err := d.CreateISBN()
	require.NoError(t, err)
	assert.Equal(t, "9780132350884", isbn.Value())

	year, err := d.CreatePublishedYear()
	require.NoError(t, err)
	assert.Equal(t, 2008, year.Value())

	d.PublishedYear = 2008.5
	_, err = d.CreatePublishedYear()
	assert.EqualError(t, err, "Published year must be an integer")
}

func TestCreateReviewDTO_FactoriesPropagateErrors(t *testing.T) {
	d := CreateReviewDTO{BookID: "nope", Rating: 6, ReviewerName: ""}

	_, err := d.CreateBookID()
	assert.EqualError(t, err, "Invalid ObjectId format")
	_, err = d.CreateRating()
	assert.EqualError(t, err, "Rating must be an integer between 1 and 5")
	_, err = d.CreateReviewerName()
	assert.EqualError(t, err, "Reviewer name cannot be empty")

	c, err := d.CreateComment()
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestValidateCreateBook(t *testing.T) {
	v := validator.New()
	ValidateCreateBook(v, CreateBookDTO{Title: strings.Repeat("t", 201)})

	assert.Equal(t, map[string]string{
		"title":         "must not be more than 200 characters long",
		"author":        "must be provided",
		"publishedYear": "must be provided",
	}, v.Errors)
}

func TestValidateUpdateBook_OnlyPresentFields(t *testing.T) {
	v := validator.New()
	ValidateUpdateBook(v, UpdateBookDTO{})
	assert.True(t, v.Valid())

	empty := ""
	v = validator.New()
	ValidateUpdateBook(v, UpdateBookDTO{Title: &empty, Description: &empty})
	assert.Equal(t, map[string]string{"title": "must not be empty"}, v.Errors)
}

func TestValidateCreateReview(t *testing.T) {
	v := validator.New()
	ValidateCreateReview(v, CreateReviewDTO{BookID: "507f1f77bcf86cd799439011", Rating: 3, ReviewerName: "John"})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateCreateReview(v, CreateReviewDTO{BookID: "123", Rating: 9})
	assert.Equal(t, "Invalid ObjectId format", v.Errors["bookId"])
	assert.Equal(t, "must be between 1 and 5", v.Errors["rating"])
	assert.Equal(t, "must be provided", v.Errors["reviewerName"])
}

func TestParseGetBooksQuery_Defaults(t *testing.T) {
	v := validator.New()
	q := ParseGetBooksQuery(url.Values{}, v)

	assert.Equal(t, GetBooksQueryDTO{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "desc"}, q)
	ValidateGetBooksQuery(v, q)
	assert.True(t, v.Valid())
}

func TestParseGetBooksQuery_Values(t *testing.T) {
	v := validator.New()
	qs := url.Values{
		"page":      {"2"},
		"limit":     {"20"},
		"sortBy":    {"avgRating"},
		"sortOrder": {"ASC"},
		"search":    {" clean "},
		"minRating": {"3.5"},
	}
	q := ParseGetBooksQuery(qs, v)
	ValidateGetBooksQuery(v, q)

	require.True(t, v.Valid(), v.Errors)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, "asc", q.SortOrder)
	assert.Equal(t, "clean", q.Search)
	require.NotNil(t, q.MinRating)
	assert.Equal(t, 3.5, *q.MinRating)
}

func TestParseGetBooksQuery_Invalid(t *testing.T) {
	v := validator.New()
	qs := url.Values{"page": {"x"}, "limit": {"500"}, "sortBy": {"isbn"}, "minRating": {"abc"}}
	q := ParseGetBooksQuery(qs, v)
	ValidateGetBooksQuery(v, q)

	assert.Equal(t, "must be an integer value", v.Errors["page"])
	assert.Equal(t, "must be a maximum of 100", v.Errors["limit"])
	assert.Equal(t, "invalid sort value", v.Errors["sortBy"])
	assert.Equal(t, "must be a number", v.Errors["minRating"])
}

func TestParseGetReviewsQuery(t *testing.T) {
	v := validator.New()
	q := ParseGetReviewsQuery(url.Values{"bookId": {"bad"}, "minRating": {"7"}, "sortBy": {"rating"}}, v)
	ValidateGetReviewsQuery(v, q)

	assert.Equal(t, "Invalid ObjectId format", v.Errors["bookId"])
	assert.Equal(t, "must be between 1 and 5", v.Errors["minRating"])
	assert.NotContains(t, v.Errors, "sortBy")
}

func TestTopRatedQuery(t *testing.T) {
	v := validator.New()
	q := ParseTopRatedQuery(url.Values{}, v)
	assert.Equal(t, 5, q.Limit)

	ValidateTopRatedQuery(v, TopRatedQueryDTO{Limit: 51})
	assert.Equal(t, "must be a maximum of 50", v.Errors["limit"])
}
