package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidSchedule is returned when a schedule code cannot be decoded.
var ErrInvalidSchedule = errors.New("invalid schedule")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// DuplicateKeyError reports an attempt to create or rename a row onto an existing unique key.
type DuplicateKeyError struct {
	Table string
	Field string
	Value string
}

func (err DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s %q already exists", err.Table, err.Field, err.Value)
}

// NotFoundError reports an update or delete targeting an absent key.
type NotFoundError struct {
	Table string
	Key   string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q not found", err.Table, err.Key)
}

// ScheduleConflictError reports an existing booking sharing the same code and party.
type ScheduleConflictError struct {
	Schedule string
	ClassID  string // conflicting class
	Party    string // "tutor" | "student"
}

func (err ScheduleConflictError) Error() string {
	return fmt.Sprintf("%s is already booked at %s (class %s)", err.Party, err.Schedule, err.ClassID)
}

// IOFault wraps an unreadable or unwritable storage error.
type IOFault struct {
	Op  string
	Err error
}

func NewIOFault(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOFault{Op: op, Err: err}
}

func (err IOFault) Error() string { return err.Op + ": " + err.Err.Error() }

func (err IOFault) Unwrap() error { return err.Err }

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDuplicateKey(err error) bool {
	var e *DuplicateKeyError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ScheduleConflictError
	return errors.As(err, &e)
}

func IsIOFault(err error) bool {
	var e *IOFault
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
