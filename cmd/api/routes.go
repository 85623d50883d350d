// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/aoideee/bookreviews/internal/metrics"
	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and wraps the router in middleware.
//
// Middleware chain (outermost first):
//
//	requestID → recoverPanic → instrument → enableCORS → rateLimit → router
//
// requestID is outermost so panics recovered below it are logged with the id.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", app.deleteBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id/reviews", app.listBookReviewsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/top-rated-books", app.topRatedBooksHandler)

	router.HandlerFunc(http.MethodPost, "/v1/reviews", app.createReviewHandler)
	router.HandlerFunc(http.MethodGet, "/v1/reviews", app.listReviewsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/reviews/:id", app.showReviewHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/reviews/:id", app.updateReviewHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/reviews/:id", app.deleteReviewHandler)

	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	return app.middleware(router)
}

// middleware wraps next in the full middleware chain.
func (app *applicationDependencies) middleware(next http.Handler) http.Handler {
	return app.requestID(app.recoverPanic(app.instrument(app.enableCORS(app.rateLimit(next)))))
}
