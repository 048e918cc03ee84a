package kafka

import (
	"errors"

	"getmystuff-courier/internal/apperr"
)

// PermanentError marks a failure that no retry or redelivery can fix.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "kafka: permanent failure"
	}
	return "kafka: permanent failure: " + e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so retrying publishers and consumers give up on it.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether err is marked permanent or is a validation failure.
func IsPermanent(err error) bool {
	var perm PermanentError
	return errors.As(err, &perm) || errors.Is(err, apperr.ErrInvalid)
}
