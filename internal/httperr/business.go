package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInvalidArgument    Kind = "invalid_argument"
	KindTransactionFailure Kind = "transaction_failure"
	KindForbidden          Kind = "forbidden"
)

// Stable error codes returned to clients.
const (
	CodeDuplicateProfile        = "duplicate_profile"
	CodeScheduleConflict        = "schedule_conflict"
	CodeAlreadyRated            = "already_rated"
	CodeAppointmentNotCompleted = "appointment_not_completed"
	CodeInvalidState            = "invalid_state"
	CodeOutsideAvailability     = "outside_availability"
	CodeForbidden               = "forbidden"
	CodeInvalidArgument         = "invalid_argument"
	CodeTransactionFailure      = "transaction_failure"
)

type BusinessError struct {
	Kind   Kind
	Code   string
	Entity string
	ID     any
	Field  string
	Reason string
	Cause  error
}

func (e BusinessError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s: %s %v", e.Code, e.Entity, e.ID)
	case KindInvalidArgument:
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Reason)
	case KindTransactionFailure:
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Cause)
		}
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

// ErrBusiness builds a conflict-kind error identified only by its code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(entity string, id any) error {
	return BusinessError{
		Kind:   KindNotFound,
		Code:   entity + "_not_found",
		Entity: entity,
		ID:     id,
	}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrForbidden() error {
	return BusinessError{Kind: KindForbidden, Code: CodeForbidden}
}

func ErrInvalidArgument(field, reason string) error {
	return BusinessError{
		Kind:   KindInvalidArgument,
		Code:   CodeInvalidArgument,
		Field:  field,
		Reason: reason,
	}
}

// ErrTransaction wraps a storage failure. Business errors pass through untouched.
func ErrTransaction(cause error) error {
	if cause == nil {
		return nil
	}
	var be BusinessError
	if errors.As(cause, &be) {
		return cause
	}
	return BusinessError{
		Kind:  KindTransactionFailure,
		Code:  CodeTransactionFailure,
		Cause: cause,
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
