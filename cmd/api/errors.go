// cmd/api/errors.go
// Error-response helpers. Every error leaves the API as {"error": ...}.
package main

import (
	"errors"
	"net/http"

	apperrors "github.com/aoideee/bookreviews/internal/errors"
	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/aoideee/bookreviews/internal/metrics"
	"go.uber.org/zap"
)

// logError logs an internal error with the request method, URL and id.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		zap.String("request_method", r.Method),
		zap.String("request_url", r.URL.String()),
		zap.String(logging.FieldRequestID, requestIDFromContext(r.Context())),
	)
}

// errorResponse sends a JSON error envelope with the given status code and message.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs err and sends a generic 500 message. Internal
// details never reach the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 with err's message.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 422 with the field errors collected by a
// Validator and counts the rejection.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, resource string, errs map[string]string) {
	metrics.RecordValidationFailure(resource)
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errs)
}

func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// serviceErrorResponse translates an error returned by a service. Coded
// errors carry their own status; anything else is a 500.
func (app *applicationDependencies) serviceErrorResponse(w http.ResponseWriter, r *http.Request, resource string, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	switch appErr.Code {
	case apperrors.CodeValidation:
		if details, ok := appErr.Details.(map[string]string); ok {
			app.failedValidationResponse(w, r, resource, details)
			return
		}
		metrics.RecordValidationFailure(resource)
		app.errorResponse(w, r, http.StatusUnprocessableEntity, appErr.Message)
	case apperrors.CodeNotFound, apperrors.CodeConflict:
		app.errorResponse(w, r, appErr.HTTPStatus(), appErr.Message)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
