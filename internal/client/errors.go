package client

import (
	"errors"
	"fmt"
)

// ErrorCode mirrors the server's error discriminator.
type ErrorCode string

const (
	CodeInvalidPath   ErrorCode = "INVALID_PATH"
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	CodeNotFound      ErrorCode = "NOT_FOUND"
)

// ErrInvalidResponse wraps bodies that fail schema validation.
var ErrInvalidResponse = errors.New("invalid response body")

// APIError is a failure the server classified with a known code.
type APIError struct {
	Code    ErrorCode
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
