package domain

import "errors"

// NotFoundError is the single error kind the router produces. It carries
// the originally requested path for diagnostics.
type NotFoundError struct {
	Path string // Requested path, as the client sent it
	Err  error  // Underlying read error, if any
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return "not found: " + e.Path + ": " + e.Err.Error()
	}
	return "not found: " + e.Path
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFound creates a NotFoundError for a path with no underlying cause.
func NewNotFound(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

// IsNotFound checks whether an error is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
