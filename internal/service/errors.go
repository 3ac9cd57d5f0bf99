package service

import (
	"errors"
	"net/http"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/knowledge"
)

// HTTPError represents an error with an associated HTTP status code.
// TODO(future): it is probably not optimal to tie service errors to HTTP layer. We should refactor this later. :)
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}

func httpError(statusCode int, err error) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Wrapped:    err,
	}
}

// classify attaches the status code matching a domain error.
func classify(err error) error {
	switch {
	case errors.Is(err, core.ErrInvalidProfile):
		return httpError(http.StatusBadRequest, err)
	case errors.Is(err, core.ErrDataError):
		return httpError(http.StatusUnprocessableEntity, err)
	case errors.Is(err, knowledge.ErrNotLoaded):
		return httpError(http.StatusServiceUnavailable, err)
	default:
		return httpError(http.StatusInternalServerError, err)
	}
}
