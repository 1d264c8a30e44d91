package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ValidationErrorKind ErrorKind = "VALIDATION"
	ForbiddenErrorKind  ErrorKind = "FORBIDDEN"
	NotFoundErrorKind   ErrorKind = "NOT_FOUND"
	ConflictErrorKind   ErrorKind = "CONFLICT"
	// PartialFailureErrorKind la autorizacion quedo resuelta pero no se pudo actualizar el origen
	PartialFailureErrorKind ErrorKind = "PARTIAL_FAILURE"
)

// Error error de negocio, el mensaje se muestra al usuario
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return newError(ValidationErrorKind, format, args...)
}

func NewForbiddenError(format string, args ...any) error {
	return newError(ForbiddenErrorKind, format, args...)
}

func NewNotFoundError(format string, args ...any) error {
	return newError(NotFoundErrorKind, format, args...)
}

func NewConflictError(format string, args ...any) error {
	return newError(ConflictErrorKind, format, args...)
}

func NewPartialFailureError(format string, args ...any) error {
	return newError(PartialFailureErrorKind, format, args...)
}

func newError(kind ErrorKind, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

// ErrorKindOf "" para errores que no son de negocio
func ErrorKindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsErrorKind(err error, kind ErrorKind) bool {
	return err != nil && ErrorKindOf(err) == kind
}
