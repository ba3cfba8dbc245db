// Package types
package types

import (
	"errors"
)

// Failure kinds shared by every component. Mutating operations wrap one of
// these with %w so callers can branch with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
var ErrNotFound = errors.New("not found")
var ErrPreconditionFailed = errors.New("precondition failed")
var ErrInternalFault = errors.New("internal fault")
