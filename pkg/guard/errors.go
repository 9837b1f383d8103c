package guard

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input; nothing was persisted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing alert/application/fence/device.
	ErrNotFound = errors.New("not found")

	// ErrStateConflict marks a transition the current state forbids.
	ErrStateConflict = errors.New("state conflict")

	// ErrRecoverable marks a workflow failure worth a delayed retry.
	ErrRecoverable = errors.New("recoverable failure")
)

// FenceDataError reports corrupt geometry on one fence. Evaluation
// skips the fence and keeps going.
type FenceDataError struct {
	FenceID uint
	Err     error
}

func (e *FenceDataError) Error() string {
	return fmt.Sprintf("fence %d has corrupt geometry: %v", e.FenceID, e.Err)
}

func (e *FenceDataError) Unwrap() error {
	return e.Err
}
