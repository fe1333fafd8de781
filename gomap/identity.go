package gomap

import (
	"reflect"
)

// refKey identifies a live Go value for the duration of one mapping
// operation. Two values collapse to the same key only when they share
// both the referenced address and the dynamic type, so a pointer to a
// struct and a pointer to its first field stay distinct.
type refKey struct {
	ptr uintptr
	typ reflect.Type
}

// identityOf returns the refKey for values with reference semantics.
// Pointers, maps, and slices have an identity; everything else is a
// value and ok is false.
func identityOf(v reflect.Value) (refKey, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return refKey{}, false
		}
		return refKey{ptr: v.Pointer(), typ: v.Type()}, true
	}
	return refKey{}, false
}

// childPath extends a field path with one step, keeping paths readable
// in error messages: "a.b", "items[3]", "m[red]".
func childPath(parent, step string) string {
	if parent == "" {
		return step
	}
	if step == "" {
		return parent
	}
	if step[0] == '[' {
		return parent + step
	}
	return parent + "." + step
}
