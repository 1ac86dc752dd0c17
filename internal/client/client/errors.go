package client

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Unwrap returns the sentinel for the response status, if any.
func (e *APIError) Unwrap() error { return kindForStatus(e.Status) }

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return common.ErrorValidation
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return common.ErrorNotFound
	case status == http.StatusConflict:
		return common.ErrorConflict
	case status >= http.StatusInternalServerError:
		return ErrUnavailable
	}
	return nil
}
