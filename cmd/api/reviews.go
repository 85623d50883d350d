// cmd/api/reviews.go
// HTTP handlers for the review resource.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/bookreviews/internal/dto"
	"github.com/aoideee/bookreviews/internal/validator"
)

// createReviewHandler handles POST /v1/reviews. The referenced book must exist.
func (app *applicationDependencies) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateReviewDTO

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	dto.ValidateCreateReview(v, input)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	review, err := app.reviews.Create(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/reviews/%s", review.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"review": review}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) showReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readReviewIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.Get(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listReviewsHandler handles GET /v1/reviews.
//
// Query parameters: page, limit, sortBy, sortOrder, bookId, minRating.
func (app *applicationDependencies) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := dto.ParseGetReviewsQuery(r.URL.Query(), v)
	dto.ValidateGetReviewsQuery(v, query)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	reviews, metadata, err := app.reviews.List(r.Context(), query)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"reviews": reviews, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateReviewHandler handles PATCH /v1/reviews/:id. A review never moves
// to another book, so a bookId in the body is ignored.
func (app *applicationDependencies) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readReviewIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input dto.UpdateReviewDTO
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	dto.ValidateUpdateReview(v, input)
	if err := v.Err(); err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	review, err := app.reviews.Update(r.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readReviewIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.reviews.Delete(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, "review", err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "review successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
