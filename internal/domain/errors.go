package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError rejects malformed input before any state change or
// remote call. Never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// BusinessError rejects an operation that violates a business rule
// (insufficient stock, wrong lot state, ineligible customer, closed loan).
// The store is unchanged when one is returned from a single-store call.
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

// Businessf builds a BusinessError with a formatted message.
func Businessf(format string, args ...any) error {
	return &BusinessError{Msg: fmt.Sprintf(format, args...)}
}

// CollaboratorError wraps a failure to reach or use a collaborating store
// or service (inventory, pricing, kardex, customer directory).
type CollaboratorError struct {
	Service string
	Op      string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// SagaAbortedError reports that a multi-step operation failed after one or
// more steps had already committed, and that compensation was attempted.
// Callers must be able to tell this apart from a clean rejection where
// nothing changed.
type SagaAbortedError struct {
	SagaID      uuid.UUID
	Step        int // zero-based index of the failing step
	Compensated int // compensating calls that succeeded
	FailedComps int // compensating calls that themselves failed
	Cause       error
}

func (e *SagaAbortedError) Error() string {
	return fmt.Sprintf(
		"operation partially failed, compensation attempted (saga=%s step=%d released=%d failed_releases=%d): %v",
		e.SagaID, e.Step, e.Compensated, e.FailedComps, e.Cause)
}

func (e *SagaAbortedError) Unwrap() error { return e.Cause }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsBusiness reports whether err is (or wraps) a BusinessError.
func IsBusiness(err error) bool {
	var target *BusinessError
	return errors.As(err, &target)
}

// IsCollaborator reports whether err is (or wraps) a CollaboratorError.
func IsCollaborator(err error) bool {
	var target *CollaboratorError
	return errors.As(err, &target)
}

// IsSagaAborted reports whether err is (or wraps) a SagaAbortedError.
func IsSagaAborted(err error) bool {
	var target *SagaAbortedError
	return errors.As(err, &target)
}
