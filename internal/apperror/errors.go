// Package apperror defines the error kinds surfaced to the transport layer.
//
// Every failure leaving the service layer is an *Error carrying a Kind, a
// human readable message and, for validation failures, the offending fields.
// NotFound deliberately covers both "absent" and "not yours".
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation_error"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal_error"
)

// FieldError names one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return e.cause }

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal hides cause from the caller; the message is always generic.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}

// KindOf returns the kind of err, treating anything that is not an *Error as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }

// As extracts the *Error from err. Errors of foreign types are wrapped as Internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
