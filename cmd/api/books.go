// cmd/api/books.go
// HTTP handlers for the book resource.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/bookreviews/internal/dto"
	"github.com/aoideee/bookreviews/internal/validator"
)

// createBookHandler handles POST /v1/books.
// Shape checks run first; the service then builds the value objects and
// reports the first one that rejects its input.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateBookDTO

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	dto.ValidateCreateBook(v, input)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	book, err := app.books.Create(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%s", book.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readBookIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.books.Get(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
//
// Query parameters: page, limit, sortBy, sortOrder, search, author, minRating.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := dto.ParseGetBooksQuery(r.URL.Query(), v)
	dto.ValidateGetBooksQuery(v, query)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	books, metadata, err := app.books.List(r.Context(), query)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PATCH /v1/books/:id. Only the fields present
// in the body are changed.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readBookIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input dto.UpdateBookDTO
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	dto.ValidateUpdateBook(v, input)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	book, err := app.books.Update(r.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id. The book's reviews go with it.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readBookIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.books.Delete(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// topRatedBooksHandler handles GET /v1/top-rated-books?limit=N.
func (app *applicationDependencies) topRatedBooksHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := dto.ParseTopRatedQuery(r.URL.Query(), v)
	dto.ValidateTopRatedQuery(v, query)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	books, err := app.books.TopRated(r.Context(), query)
	if err != nil {
		app.serviceErrorResponse(w, r, "book", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBookReviewsHandler handles GET /v1/books/:id/reviews.
func (app *applicationDependencies) listBookReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readBookIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	query := dto.ParseGetReviewsQuery(r.URL.Query(), v)
	dto.ValidateGetReviewsQuery(v, query)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	reviews, metadata, err := app.reviews.ListForBook(r.Context(), id, query)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"reviews": reviews, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
