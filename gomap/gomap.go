package gomap

import (
	"fmt"
	"reflect"

	"github.com/tangle-format/go-tangle/encode"
	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/parse"
)

// Marshal maps v to document text.
func Marshal(v any, opts ...MapOption) ([]byte, error) {
	cfg := newMapConfig(opts)
	node, err := newEncState(cfg).run(reflect.ValueOf(v), "")
	if err != nil {
		return nil, err
	}
	return encode.Bytes(node, cfg.encodeOptions()...)
}

// ToIR maps v to its ir tree without rendering text. References in the
// result carry their targets, so FromIR can restore sharing directly.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	cfg := newMapConfig(opts)
	return newEncState(cfg).run(reflect.ValueOf(v), "")
}

// Unmarshal parses document text and populates the value dst points
// to. dst must be a non-nil pointer. On error the destination is not
// usable; nothing about which parts were already populated is
// guaranteed.
func Unmarshal(data []byte, dst any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	node, err := parse.Parse(data, cfg.parseOpts...)
	if err != nil {
		return err
	}
	return newDecState(cfg).run(node, reflect.ValueOf(dst))
}

// FromIR populates the value dst points to from an ir tree.
func FromIR(node *ir.Node, dst any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	return newDecState(cfg).run(node, reflect.ValueOf(dst))
}

// MarshalField maps a single field of a record value to document text.
// The field is named by its wire name. Cycles and sharing are tracked
// within the field's subtree only.
func MarshalField(v any, field string, opts ...MapOption) ([]byte, error) {
	cfg := newMapConfig(opts)
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil, &MarshalError{Message: "nil record value"}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, &MarshalError{
			Message: fmt.Sprintf("%s is not a record type", val.Type()),
		}
	}
	desc, err := cfg.types.describe(val.Type())
	if err != nil {
		return nil, &MarshalError{Message: "invalid record type", Err: err}
	}
	slot, ok := desc.slotNamed(field)
	if !ok {
		return nil, &FieldAccessError{TypeName: val.Type().String(), Field: field}
	}
	fv := fieldByIndexRead(val, slot.index)
	node := ir.Null()
	if fv.IsValid() {
		node, err = newEncState(cfg).run(fv, field)
		if err != nil {
			return nil, err
		}
	}
	return encode.Bytes(node, cfg.encodeOptions()...)
}

// UnmarshalField parses document text holding a single field's value
// and populates that field of the record dst points to. The field is
// named by its wire name.
func UnmarshalField(data []byte, dst any, field string, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	node, err := parse.Parse(data, cfg.parseOpts...)
	if err != nil {
		return err
	}
	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	elem := val.Elem()
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			elem.Set(reflect.New(elem.Type().Elem()))
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return &UnmarshalError{
			Message: fmt.Sprintf("%s is not a record type", elem.Type()),
		}
	}
	desc, err := cfg.types.describe(elem.Type())
	if err != nil {
		return &UnmarshalError{Message: "invalid record type", Err: err}
	}
	slot, ok := desc.slotNamed(field)
	if !ok {
		return &FieldAccessError{TypeName: elem.Type().String(), Field: field}
	}
	fv := fieldByIndexAlloc(elem, slot.index)
	return newDecState(cfg).runInto(node, fv, field)
}
