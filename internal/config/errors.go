package config

import "errors"

// Fatal validation errors. Every one of these aborts the run immediately;
// there is no retry loop on bad input.
var (
	// ErrInvalidInput marks a malformed or unsupported user response,
	// such as a non-positive thread count.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPath marks a repository path that does not exist or is not
	// a CVA6 checkout.
	ErrInvalidPath = errors.New("invalid path")
)
