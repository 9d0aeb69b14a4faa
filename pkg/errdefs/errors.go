package errdefs

import "errors"

var (
	// ErrNotFound signals that the requested object doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter signals that the user input is invalid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnavailable signals that the requested action/subsystem is not available.
	ErrUnavailable = errors.New("unavailable")

	// ErrSystem signals that some internal error occurred.
	ErrSystem = errors.New("system error")

	// ErrUnsupported indicates that the action was not supported.
	ErrUnsupported = errors.New("unsupported")
)
