package domain

import (
	"errors"
	"fmt"
)

// Errors returned by the config service and its stores.
var (
	ErrPathNotFound    = errors.New("beads directory not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrProjectNotFound = errors.New("project not found")
)

// Code is the machine-readable error discriminator sent to API clients.
type Code string

const (
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeInvalidPath    Code = "INVALID_PATH"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeNotFound       Code = "NOT_FOUND"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// Error is a use-case failure that the HTTP layer knows how to render.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NewInvalidPathError(cause error) *Error {
	return &Error{
		Code:    CodeInvalidPath,
		Message: "Path does not exist or is not a valid beads directory",
		Err:     cause,
	}
}

func NewProjectAlreadyExistsError(cause error) *Error {
	return &Error{
		Code:    CodeAlreadyExists,
		Message: "Project with this path already exists",
		Err:     cause,
	}
}

func NewProjectNotFoundError(projectID string, cause error) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Project with ID '%s' not found", projectID),
		Err:     cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
