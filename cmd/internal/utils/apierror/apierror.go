package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what every service operation returns on failure.
// Implementations marshal directly to the JSON body of the HTTP response.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	status  int
	Name    string `json:"error"`
	Message string `json:"message"`
}

func (e *simpleError) Code() int {
	return e.status
}

func (e *simpleError) Error() string {
	return e.Message
}

var (
	// MalformedBodyError covers request bodies that cannot be bound at all.
	MalformedBodyError = NewNamed(http.StatusBadRequest, "malformed_body", "Request body could not be parsed")

	// NotFoundError covers lookups of ids the store has never seen (or no longer holds).
	NotFoundError = NewNamed(http.StatusNotFound, "not_found", "No such record")

	// StorageUnavailableError covers any failure of the underlying store.
	// The operation is not retried; the caller decides what to do next.
	StorageUnavailableError = NewNamed(http.StatusServiceUnavailable, "storage_unavailable", "The record store is unavailable")
)

func NewSimple(status int, message string) ErrorResponse {
	return &simpleError{status: status, Name: "error", Message: message}
}

func NewNamed(status int, name, message string) ErrorResponse {
	return &simpleError{status: status, Name: name, Message: message}
}

func NewMissingParamError(param string) ErrorResponse {
	return &simpleError{
		status:  http.StatusBadRequest,
		Name:    "missing_param",
		Message: fmt.Sprintf("Required parameter '%s' is missing", param),
	}
}

func NewInvalidParamTypeError(param, expected string) ErrorResponse {
	return &simpleError{
		status:  http.StatusBadRequest,
		Name:    "invalid_param",
		Message: fmt.Sprintf("Parameter '%s' must be of type %s", param, expected),
	}
}

// NewMalformedInput reports an uploaded backup that does not match the
// expected CSV layout. The store is left untouched.
func NewMalformedInput(reason string) ErrorResponse {
	return &simpleError{
		status:  http.StatusBadRequest,
		Name:    "malformed_input",
		Message: reason,
	}
}

// NewValidation reports a single bad input field, for checks that happen
// outside the validator (e.g. date parsing).
func NewValidation(field, reason string) ErrorResponse {
	return &validationError{
		status: http.StatusBadRequest,
		Name:   "validation_failed",
		Fields: []fieldError{{Field: field, Reason: reason}},
	}
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type validationError struct {
	status int
	Name   string       `json:"error"`
	Fields []fieldError `json:"fields"`
}

func (e *validationError) Code() int {
	return e.status
}

func (e *validationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// FromValidationError translates a validator.Struct failure into a 400
// response listing every offending field and the tag it tripped on.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewSimple(http.StatusBadRequest, "Invalid request")
	}

	fields := make([]fieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = fieldError{Field: fe.Field(), Reason: fe.Tag()}
	}
	return &validationError{status: http.StatusBadRequest, Name: "validation_failed", Fields: fields}
}
