package models

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-dairy/validation"
)

// ErrorKind classifies failures surfaced to callers.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindInvalidCredential ErrorKind = "invalid_credential"
	KindInvalidToken      ErrorKind = "invalid_token"
	KindExpiredToken      ErrorKind = "expired_token"
	KindValidation        ErrorKind = "validation_error"
	KindPersistence       ErrorKind = "persistence_error"
)

// Error is the single error type returned by the domain packages.
// errors.Is matches on Kind, so callers compare against the sentinels below.
type Error struct {
	Kind       ErrorKind
	Entity     string
	ID         string
	Message    string
	Violations validation.Violations
	Err        error
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrInvalidToken      = &Error{Kind: KindInvalidToken}
	ErrExpiredToken      = &Error{Kind: KindExpiredToken}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NotFound reports a missing record of the given entity ("staff", "product", ...).
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// Invalid wraps field violations.
func Invalid(v validation.Violations) *Error {
	return &Error{Kind: KindValidation, Violations: v, Message: "validation failed"}
}

// InvalidField is Invalid with a single violation.
func InvalidField(field, code string) *Error {
	return Invalid(validation.Violations{field: code})
}

// Persistence wraps a storage failure for key.
func Persistence(key string, err error) *Error {
	return &Error{Kind: KindPersistence, ID: key, Message: "persist " + key, Err: err}
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
