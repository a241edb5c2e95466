package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. A [*ValidationError] matches exactly one of them with
// [errors.Is].
var (
	// ErrTypeMismatch is reported when the runtime type of a value cannot
	// satisfy the declared node.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPrecisionLoss is reported when a numeric value cannot be converted
	// to a big integer without losing information.
	ErrPrecisionLoss = errors.New("precision loss")

	// ErrMissingField is reported when a required object field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrElementMismatch is reported when an array element fails validation.
	// The failing index is available in [ValidationError.Index].
	ErrElementMismatch = errors.New("element mismatch")

	// ErrInvalidSchema is returned for malformed schema definitions or
	// zero-value nodes.
	ErrInvalidSchema = errors.New("invalid schema")
)

// ValidationError describes where and why validation failed.
type ValidationError struct {
	// Kind is one of ErrTypeMismatch, ErrPrecisionLoss, ErrMissingField,
	// ErrElementMismatch or ErrInvalidSchema.
	Kind error

	// Path locates the failing value, e.g. "properties.$os" or "shard[1]".
	// Empty for the root value.
	Path string

	// Index is the offending element index for ErrElementMismatch, -1 otherwise.
	Index int

	// Detail is a human-readable explanation.
	Detail string

	// Err is the element failure wrapped by an ErrElementMismatch.
	Err error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Kind == ErrElementMismatch {
		fmt.Fprintf(&b, " at index %d", e.Index)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the failure kind and, for element mismatches, the element's
// own failure.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindName returns the failure kind as a snake_case label such as
// "missing_field", suitable for metrics and API responses.
func (e *ValidationError) KindName() string {
	if e.Kind == nil {
		return "unknown"
	}
	return strings.ReplaceAll(e.Kind.Error(), " ", "_")
}

// Cause returns the innermost validation error, following element
// mismatches down to the value that actually failed.
func (e *ValidationError) Cause() *ValidationError {
	current := e
	for {
		var inner *ValidationError
		if current.Err == nil || !errors.As(current.Err, &inner) {
			return current
		}
		current = inner
	}
}

func newError(kind error, detail string, args ...any) *ValidationError {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &ValidationError{Kind: kind, Index: -1, Detail: detail}
}

func mismatch(v any, want string) *ValidationError {
	return newError(ErrTypeMismatch, "expected %s, got %T", want, v)
}

// at sets the path of a freshly created error and returns it as error.
func at(err *ValidationError, path string) error {
	err.Path = path
	return err
}
