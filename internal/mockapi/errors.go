package mockapi

import (
	"errors"
	"net/http"
)

// Error is a handled failure that maps to a status and a detail string.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

var (
	ErrInvalidCredentials = &Error{Status: http.StatusBadRequest, Detail: "Invalid credentials"}
	ErrUnauthorized       = &Error{Status: http.StatusUnauthorized, Detail: "Unauthorized"}
	ErrNotFound           = &Error{Status: http.StatusNotFound, Detail: "Not Found"}
)

// errorResponse converts any error into a response. Unknown errors become a 500 carrying their message.
func errorResponse(err error) Response {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return jsonResponse(apiErr.Status, ErrorBody{Detail: apiErr.Detail})
	}
	return jsonResponse(http.StatusInternalServerError, ErrorBody{Detail: err.Error()})
}
