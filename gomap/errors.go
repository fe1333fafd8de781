package gomap

import (
	"fmt"
)

// MarshalError is returned when a Go value cannot be mapped to ir form.
type MarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError is returned when a document cannot be mapped onto a Go
// value.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// ConstructionError is returned when no instance of the destination type
// can be created, for example an interface with no bound concrete type or
// a kind that cannot be instantiated by reflection.
type ConstructionError struct {
	TypeName string
	Message  string
	Err      error
}

func (e *ConstructionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot construct %s: %s", e.TypeName, e.Message)
	}
	return fmt.Sprintf("cannot construct %s", e.TypeName)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TypeMismatchError is returned when the shape of a document value
// conflicts with the destination type at the same position.
type TypeMismatchError struct {
	FieldPath string
	Expected  string
	Actual    string
	Message   string
}

func (e *TypeMismatchError) Error() string {
	s := fmt.Sprintf("type mismatch at %s: expected %s, got %s", e.FieldPath, e.Expected, e.Actual)
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// UnresolvedReferenceError is returned when a back-reference names an
// identity tag that no object in the document declares.
type UnresolvedReferenceError struct {
	FieldPath string
	Tag       string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference at %s: no object with id %q", e.FieldPath, e.Tag)
}

// UnsupportedCycleError is returned when a cycle passes through a value
// that cannot carry an identity tag, such as a slice or a set.
type UnsupportedCycleError struct {
	FieldPath string
	TypeName  string
}

func (e *UnsupportedCycleError) Error() string {
	return fmt.Sprintf("unsupported cycle at %s: %s cannot be referenced by id", e.FieldPath, e.TypeName)
}

// FieldAccessError is returned when a named field does not exist on the
// requested type.
type FieldAccessError struct {
	TypeName string
	Field    string
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("no field %q on %s", e.Field, e.TypeName)
}
