// Package result holds the outcome shape returned by form submissions:
// success with data, field-level validation failure, or a form-level failure.
package result

import (
	"errors"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

type Kind int

const (
	KindOk Kind = iota
	KindValidationFailed
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindValidationFailed:
		return "validation_failed"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failure codes attached to KindFailed results.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "UNAVAILABLE"
	CodeInternal    = "INTERNAL"
)

type Result[T any] struct {
	Kind        Kind
	Message     string
	Data        T
	FieldErrors map[string][]string
	FormError   string
	Code        string
}

func Ok[T any](message string, data T) Result[T] {
	return Result[T]{Kind: KindOk, Message: message, Data: data}
}

func ValidationFailed[T any](message string, fieldErrors map[string][]string) Result[T] {
	return Result[T]{Kind: KindValidationFailed, Message: message, FieldErrors: fieldErrors}
}

// Failed is a form-level failure; formError is usually the underlying error text.
func Failed[T any](message, formError string) Result[T] {
	return Result[T]{Kind: KindFailed, Message: message, FormError: formError, Code: CodeInternal}
}

// NotFound is a non-success outcome that is not treated as a fault.
func NotFound[T any](message string) Result[T] {
	return Result[T]{Kind: KindFailed, Message: message, Code: CodeNotFound}
}

// Unavailable reports a missing capability, such as an unconfigured model.
func Unavailable[T any](message string) Result[T] {
	return Result[T]{Kind: KindFailed, Message: message, FormError: message, Code: CodeUnavailable}
}

func (r Result[T]) Success() bool {
	return r.Kind == KindOk
}

func (r Result[T]) IsNotFound() bool {
	return r.Kind == KindFailed && r.Code == CodeNotFound
}

// FieldErrors turns a validation error into the field map of a ValidationFailed result.
func FieldErrors(err error) map[string][]string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errs.ToMap()
	}
	return map[string][]string{"form": {err.Error()}}
}
