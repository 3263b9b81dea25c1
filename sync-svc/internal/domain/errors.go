package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrBatchRejected = errors.New("cost batch rejected")
)

// TransientError marks a store failure worth retrying (network, timeout, lost connection).
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient store error: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}
