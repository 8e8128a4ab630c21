package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVehicleUnavailable     = errors.New("vehicle not available for these dates")
	ErrInvalidStateTransition = errors.New("operation not allowed in current state")
	ErrInvalidExtension       = errors.New("new end date must be after current end date")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation error")
	ErrForbidden              = errors.New("forbidden")
	ErrDuplicateTicket        = errors.New("ticket id already issued")
)

type TransitionError struct {
	From   ReservationStatus
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s reservation", ErrInvalidStateTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStateTransition }

// PersistenceError wraps a store failure that has no domain meaning.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
