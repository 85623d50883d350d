// cmd/api/helpers.go
// General-purpose helpers for reading requests and writing responses.
// Error-response helpers live in errors.go.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/julienschmidt/httprouter"
)

// maxBodyBytes caps every request body at 1 MB.
const maxBodyBytes = 1_048_576

// envelope is the top-level JSON wrapper used for all API responses,
// e.g. {"book": {...}} or {"books": [...], "metadata": {...}}.
type envelope map[string]any

// readBookIDParam reads the ":id" URL parameter as a BookID. The error is
// the value object's own message.
func (app *applicationDependencies) readBookIDParam(r *http.Request) (domain.BookID, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return domain.BookIDFromString(params.ByName("id"))
}

// readReviewIDParam reads the ":id" URL parameter as a ReviewID.
func (app *applicationDependencies) readReviewIDParam(r *http.Request) (domain.ReviewID, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return domain.ReviewIDFromString(params.ByName("id"))
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type and writes the status code and body.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readJSON decodes a single JSON value from the request body into dst and
// turns decoder failures into messages fit for the client.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
