package gomap

import (
	"encoding"
	"fmt"
	"reflect"
)

var (
	reflectTypeType     = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	emptyStructType     = reflect.TypeOf(struct{}{})
)

// isSetType reports whether t is used as a set, a map with empty struct
// elements. Sets map to arrays on the wire; every other map maps to an
// object.
func isSetType(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() == emptyStructType
}

// descriptor caches the field layout of a struct type: wire names,
// index paths through embedded structs, and the designated identity
// field if the type has one.
type descriptor struct {
	typ     reflect.Type
	fields  []fieldSlot
	byName  map[string]int
	idField int
}

type fieldSlot struct {
	name  string
	index []int
	typ   reflect.Type
	isID  bool
}

// describe returns the cached descriptor for a struct type, building
// it on first use.
func (ts *Types) describe(t reflect.Type) (*descriptor, error) {
	if d, ok := ts.descs.Load(t); ok {
		return d.(*descriptor), nil
	}
	d := &descriptor{
		typ:     t,
		byName:  make(map[string]int),
		idField: -1,
	}
	if err := d.addFields(t, nil, make(map[reflect.Type]bool)); err != nil {
		return nil, err
	}
	actual, _ := ts.descs.LoadOrStore(t, d)
	return actual.(*descriptor), nil
}

func (d *descriptor) addFields(t reflect.Type, prefix []int, visiting map[reflect.Type]bool) error {
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := parseFieldTag(f.Tag.Get(TagKey))
		if tag.Skip {
			continue
		}
		if !f.IsExported() {
			continue
		}
		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if f.Anonymous && tag.Name == "" && !tag.ID {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := d.addFields(ft, index, visiting); err != nil {
					return err
				}
				continue
			}
		}

		name := tag.Name
		if name == "" {
			name = f.Name
		}
		slot := fieldSlot{
			name:  name,
			index: index,
			typ:   f.Type,
			isID:  tag.ID,
		}
		if prev, ok := d.byName[name]; ok {
			// shallower fields shadow promoted ones, Go style
			if len(d.fields[prev].index) <= len(index) {
				if len(d.fields[prev].index) == len(index) && len(index) == 1 {
					return fmt.Errorf("%s: duplicate field name %q", d.typ, name)
				}
				continue
			}
			if tag.ID && d.idField >= 0 && d.idField != prev {
				return fmt.Errorf("%s: multiple identity fields (%s and %s)",
					d.typ, d.fields[d.idField].name, name)
			}
			if d.fields[prev].isID && !tag.ID {
				d.idField = -1
			}
			if tag.ID {
				d.idField = prev
			}
			d.fields[prev] = slot
			continue
		}
		if tag.ID {
			if d.idField >= 0 {
				return fmt.Errorf("%s: multiple identity fields (%s and %s)",
					d.typ, d.fields[d.idField].name, name)
			}
			d.idField = len(d.fields)
		}
		d.byName[name] = len(d.fields)
		d.fields = append(d.fields, slot)
	}
	return nil
}

func (d *descriptor) slotNamed(name string) (*fieldSlot, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.fields[i], true
}

// ctorEntry caches how to build fresh values of one type. size is nil
// when the type takes no size hint; the nil is cached so the lookup is
// not repeated.
type ctorEntry struct {
	def  func() (reflect.Value, error)
	size func(n int) reflect.Value
}

func (ts *Types) ctorFor(t reflect.Type) *ctorEntry {
	if e, ok := ts.ctors.Load(t); ok {
		return e.(*ctorEntry)
	}
	e := ts.buildCtor(t)
	actual, _ := ts.ctors.LoadOrStore(t, e)
	return actual.(*ctorEntry)
}

func (ts *Types) buildCtor(t reflect.Type) *ctorEntry {
	e := &ctorEntry{}
	switch t.Kind() {
	case reflect.Map:
		e.def = func() (reflect.Value, error) {
			return reflect.MakeMap(t), nil
		}
		e.size = func(n int) reflect.Value {
			return reflect.MakeMapWithSize(t, n)
		}
	case reflect.Slice:
		e.def = func() (reflect.Value, error) {
			return reflect.MakeSlice(t, 0, 0), nil
		}
		e.size = func(n int) reflect.Value {
			return reflect.MakeSlice(t, n, n)
		}
	case reflect.Pointer:
		elem := t.Elem()
		e.def = func() (reflect.Value, error) {
			return reflect.New(elem), nil
		}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		err := &ConstructionError{
			TypeName: t.String(),
			Message:  fmt.Sprintf("kind %s cannot be constructed from a document", t.Kind()),
		}
		e.def = func() (reflect.Value, error) {
			return reflect.Value{}, err
		}
	case reflect.Interface:
		if concrete, ok := ts.bindingFor(t); ok {
			inner := ts.ctorFor(concrete)
			e.def = inner.def
			e.size = inner.size
			break
		}
		err := &ConstructionError{
			TypeName: t.String(),
			Message:  "interface has no bound concrete type",
		}
		e.def = func() (reflect.Value, error) {
			return reflect.Value{}, err
		}
	default:
		e.def = func() (reflect.Value, error) {
			return reflect.New(t).Elem(), nil
		}
	}
	return e
}

// fieldByIndexAlloc walks an embedded field path, allocating nil
// embedded pointers so the leaf is settable.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v
}

// fieldByIndexRead walks an embedded field path without allocating.
// The zero Value is returned when a nil embedded pointer is crossed.
func fieldByIndexRead(v reflect.Value, index []int) reflect.Value {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v
}
