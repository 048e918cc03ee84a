package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness conflict, e.g. a duplicate trip id (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrInsufficientCapacity is returned when an allocation exceeds the remaining capacity.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

// ErrDivisionUndefined is returned when a ratio is requested for a zero total.
var ErrDivisionUndefined = errors.New("division undefined")
