package dataset

import (
	"fmt"
	"strings"
)

// LoadError reports a dataset file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports required fields absent from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Missing, ", "))
}

type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// TypeMismatchError reports a non-numeric column used where numbers are required.
type TypeMismatchError struct {
	Field string
	Kind  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q is a %s column, expected number", e.Field, e.Kind)
}
