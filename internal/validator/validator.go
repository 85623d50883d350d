// Package validator accumulates field-level validation errors for request
// DTOs and returns them as a map keyed by wire field name.
package validator

import domainerrors "github.com/aoideee/bookreviews/internal/errors"

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// The first failure for a field is the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(dto.Title != "", "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// CheckError records err's message under key when err is not nil. It is
// used to surface value-object errors next to the shape checks.
func (v *Validator) CheckError(err error, key string) {
	if err != nil {
		v.AddError(key, err.Error())
	}
}

// Err returns nil when valid, otherwise a validation error whose details
// are the collected field errors.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return domainerrors.ValidationWithDetails("validation failed", v.Errors)
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
