package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/tangle-format/go-tangle/ir"
)

// decState tracks one ir-to-Go mapping operation. Ids register in
// idMap the moment their object's shell is created, one level before
// the object's own fields are filled, so references at the same level
// resolve in either declaration order. Set inserts wait in deferred
// until the whole graph is populated.
type decState struct {
	cfg      *unmapConfig
	idMap    map[string]reflect.Value
	deferred []func() error
	depth    int
}

func newDecState(cfg *unmapConfig) *decState {
	return &decState{
		cfg:   cfg,
		idMap: make(map[string]reflect.Value),
	}
}

// pending is one composite child whose shell exists but whose contents
// wait for the second pass over its level. commit, when set, runs after
// the fill; map entries use it to insert fully built values.
type pending struct {
	dst    reflect.Value
	node   *ir.Node
	path   string
	commit func()
}

// fixup is one back-reference waiting for the end of its level's first
// pass, by which point every sibling id is registered.
type fixup struct {
	dst  reflect.Value
	tag  string
	path string
}

func (d *decState) run(node *ir.Node, dst reflect.Value) error {
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	return d.runInto(node, dst.Elem(), "")
}

// runInto populates one destination slot and then flushes the deferred
// set inserts. The slot is its own top level for id registration.
func (d *decState) runInto(node *ir.Node, dst reflect.Value, path string) error {
	var pend []pending
	var fixes []fixup
	if err := d.assignValue(dst, node, path, &pend, &fixes); err != nil {
		return err
	}
	if err := d.finishLevel(pend, fixes); err != nil {
		return err
	}
	return d.flush()
}

func (d *decState) flush() error {
	for _, f := range d.deferred {
		if err := f(); err != nil {
			return err
		}
	}
	d.deferred = nil
	return nil
}

// assignValue is the first-pass classifier for one destination slot.
// Scalars convert immediately. A string or reference node destined for
// a composite type queues a fixup. Objects and arrays get a shell now
// and their contents queued for the second pass.
func (d *decState) assignValue(dst reflect.Value, node *ir.Node, path string, pend *[]pending, fixes *[]fixup) error {
	if node.Type == ir.NullType {
		return nil
	}
	t := dst.Type()
	if t.Kind() == reflect.Interface {
		return d.assignInterface(dst, node, path, pend, fixes)
	}
	if isScalarDest(d.cfg.types, t) {
		return d.scalar(dst, node, path)
	}
	switch node.Type {
	case ir.StringType, ir.RefType:
		*fixes = append(*fixes, fixup{dst: dst, tag: node.String, path: path})
		return nil
	case ir.ObjectType, ir.ArrayType:
		return d.shell(dst, node, path, pend)
	}
	return &TypeMismatchError{
		FieldPath: path,
		Expected:  t.String(),
		Actual:    node.Type.String(),
	}
}

// shell allocates the instance for a composite child and registers its
// id, leaving the contents for the second pass.
func (d *decState) shell(dst reflect.Value, node *ir.Node, path string, pend *[]pending) error {
	t := dst.Type()
	switch t.Kind() {
	case reflect.Pointer:
		ctor := d.cfg.types.ctorFor(t)
		p, err := ctor.def()
		if err != nil {
			return err
		}
		dst.Set(p)
		if node.ID != "" {
			d.idMap[node.ID] = p
		}
		*pend = append(*pend, pending{dst: p.Elem(), node: node, path: path})
		return nil
	case reflect.Map:
		if isSetType(t) {
			if node.Type != ir.ArrayType {
				return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
			}
			m := reflect.MakeMapWithSize(t, len(node.Values))
			dst.Set(m)
			*pend = append(*pend, pending{dst: m, node: node, path: path})
			return nil
		}
		if node.Type != ir.ObjectType {
			return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
		}
		m := reflect.MakeMapWithSize(t, len(node.Fields))
		dst.Set(m)
		if node.ID != "" {
			d.idMap[node.ID] = m
		}
		*pend = append(*pend, pending{dst: m, node: node, path: path})
		return nil
	case reflect.Slice:
		if node.Type != ir.ArrayType {
			return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
		}
		n := len(node.Values)
		sl := reflect.MakeSlice(t, n, n)
		dst.Set(sl)
		*pend = append(*pend, pending{dst: sl, node: node, path: path})
		return nil
	case reflect.Array:
		if node.Type != ir.ArrayType {
			return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
		}
		if len(node.Values) != t.Len() {
			return &TypeMismatchError{
				FieldPath: path,
				Expected:  t.String(),
				Actual:    fmt.Sprintf("array of %d elements", len(node.Values)),
			}
		}
		*pend = append(*pend, pending{dst: dst, node: node, path: path})
		return nil
	case reflect.Struct:
		if node.Type != ir.ObjectType {
			return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
		}
		if node.ID != "" && dst.CanAddr() {
			d.idMap[node.ID] = dst.Addr()
		}
		*pend = append(*pend, pending{dst: dst, node: node, path: path})
		return nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return &ConstructionError{
			TypeName: t.String(),
			Message:  fmt.Sprintf("kind %s cannot be constructed from a document", t.Kind()),
		}
	}
	return &TypeMismatchError{
		FieldPath: path,
		Expected:  t.String(),
		Actual:    node.Type.String(),
	}
}

// assignInterface concretizes a node landing on an interface
// destination. The empty interface takes the node's natural Go shape;
// other interfaces need a registered binding.
func (d *decState) assignInterface(dst reflect.Value, node *ir.Node, path string, pend *[]pending, fixes *[]fixup) error {
	t := dst.Type()
	if t.NumMethod() == 0 {
		switch node.Type {
		case ir.BoolType:
			dst.Set(reflect.ValueOf(node.Bool))
			return nil
		case ir.NumberType:
			if v, ok := node.AsInt64(); ok {
				dst.Set(reflect.ValueOf(v))
				return nil
			}
			if v, ok := node.AsUint64(); ok {
				dst.Set(reflect.ValueOf(v))
				return nil
			}
			if v, ok := node.AsFloat64(); ok {
				dst.Set(reflect.ValueOf(v))
				return nil
			}
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("invalid number %q", node.Number)}
		case ir.StringType:
			dst.Set(reflect.ValueOf(node.String))
			return nil
		case ir.RefType:
			*fixes = append(*fixes, fixup{dst: dst, tag: node.String, path: path})
			return nil
		case ir.ObjectType:
			m := reflect.MakeMapWithSize(mapStringAnyType, len(node.Fields))
			dst.Set(m)
			if node.ID != "" {
				d.idMap[node.ID] = m
			}
			*pend = append(*pend, pending{dst: m, node: node, path: path})
			return nil
		case ir.ArrayType:
			n := len(node.Values)
			sl := reflect.MakeSlice(sliceAnyType, n, n)
			dst.Set(sl)
			*pend = append(*pend, pending{dst: sl, node: node, path: path})
			return nil
		}
		return nil
	}

	if node.Type == ir.StringType || node.Type == ir.RefType {
		*fixes = append(*fixes, fixup{dst: dst, tag: node.String, path: path})
		return nil
	}
	concrete, ok := d.cfg.types.bindingFor(t)
	if !ok {
		return &ConstructionError{
			TypeName: t.String(),
			Message:  "interface has no bound concrete type",
		}
	}
	switch node.Type {
	case ir.BoolType, ir.NumberType:
		temp := reflect.New(concrete).Elem()
		if err := d.scalar(temp, node, path); err != nil {
			return err
		}
		dst.Set(temp)
		return nil
	}
	if concrete.Kind() == reflect.Struct {
		if node.Type != ir.ObjectType {
			return &TypeMismatchError{FieldPath: path, Expected: concrete.String(), Actual: node.Type.String()}
		}
		temp := reflect.New(concrete).Elem()
		if node.ID != "" {
			d.idMap[node.ID] = temp.Addr()
		}
		// the interface takes the value once it is fully built
		*pend = append(*pend, pending{dst: temp, node: node, path: path, commit: func() {
			dst.Set(temp)
		}})
		return nil
	}
	temp := reflect.New(concrete).Elem()
	if err := d.assignValue(temp, node, path, pend, fixes); err != nil {
		return err
	}
	dst.Set(temp)
	return nil
}

// finishLevel is the second pass over one level: resolve the level's
// back-references against the now complete id registrations, then fill
// each shelled child.
func (d *decState) finishLevel(pend []pending, fixes []fixup) error {
	for i := range fixes {
		if err := d.resolveFixup(&fixes[i]); err != nil {
			return err
		}
	}
	for i := range pend {
		p := &pend[i]
		if p.node != nil {
			if err := d.populate(p.dst, p.node, p.path); err != nil {
				return err
			}
		}
		if p.commit != nil {
			p.commit()
		}
	}
	return nil
}

func (d *decState) resolveFixup(f *fixup) error {
	v, ok := d.idMap[f.tag]
	if !ok {
		return &UnresolvedReferenceError{FieldPath: f.path, Tag: f.tag}
	}
	if !v.Type().AssignableTo(f.dst.Type()) {
		return &TypeMismatchError{
			FieldPath: f.path,
			Expected:  f.dst.Type().String(),
			Actual:    v.Type().String(),
			Message:   fmt.Sprintf("back-reference %q", f.tag),
		}
	}
	f.dst.Set(v)
	return nil
}

// populate fills the contents of one shelled value. Each composite kind
// runs its own two-pass level over its children.
func (d *decState) populate(dst reflect.Value, node *ir.Node, path string) error {
	if d.depth >= d.cfg.maxDepth {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("nesting exceeds max depth %d", d.cfg.maxDepth),
		}
	}
	d.depth++
	defer func() { d.depth-- }()

	switch dst.Kind() {
	case reflect.Struct:
		return d.populateStruct(dst, node, path)
	case reflect.Map:
		if isSetType(dst.Type()) {
			return d.populateSet(dst, node, path)
		}
		return d.populateMap(dst, node, path)
	case reflect.Slice, reflect.Array:
		return d.populateSeq(dst, node, path)
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return d.populate(dst.Elem(), node, path)
	case reflect.Interface:
		var pend []pending
		var fixes []fixup
		if err := d.assignInterface(dst, node, path, &pend, &fixes); err != nil {
			return err
		}
		return d.finishLevel(pend, fixes)
	}
	return d.scalar(dst, node, path)
}

func (d *decState) populateStruct(dst reflect.Value, node *ir.Node, path string) error {
	desc, err := d.cfg.types.describe(dst.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: path, Message: "invalid record type", Err: err}
	}
	var pend []pending
	var fixes []fixup
	for i := range node.Fields {
		slot, ok := desc.slotNamed(node.Fields[i].String)
		if !ok {
			// unknown fields are ignored
			continue
		}
		fv := fieldByIndexAlloc(dst, slot.index)
		fpath := childPath(path, slot.name)
		if err := d.assignValue(fv, node.Values[i], fpath, &pend, &fixes); err != nil {
			return err
		}
	}
	return d.finishLevel(pend, fixes)
}

func (d *decState) populateMap(m reflect.Value, node *ir.Node, path string) error {
	kt := m.Type().Key()
	vt := m.Type().Elem()
	var pend []pending
	var fixes []fixup
	for i := range node.Fields {
		text := node.Fields[i].String
		child := node.Values[i]
		kpath := childPath(path, "["+text+"]")
		kv := reflect.New(kt).Elem()
		if err := d.keyFromString(kv, text, kpath); err != nil {
			return err
		}
		if child.Type == ir.NullType {
			m.SetMapIndex(kv, reflect.New(vt).Elem())
			continue
		}
		if vt.Kind() != reflect.Interface && isScalarDest(d.cfg.types, vt) {
			ev := reflect.New(vt).Elem()
			if err := d.scalar(ev, child, kpath); err != nil {
				return err
			}
			m.SetMapIndex(kv, ev)
			continue
		}
		temp := reflect.New(vt).Elem()
		if err := d.assignValue(temp, child, kpath, &pend, &fixes); err != nil {
			return err
		}
		pend = append(pend, pending{commit: func() {
			m.SetMapIndex(kv, temp)
		}})
	}
	return d.finishLevel(pend, fixes)
}

// populateSet builds each element fully and queues its insert for the
// end of the whole operation, so element contents are final before they
// are hashed into the set.
func (d *decState) populateSet(m reflect.Value, node *ir.Node, path string) error {
	kt := m.Type().Key()
	var pend []pending
	var fixes []fixup
	for i, elem := range node.Values {
		epath := childPath(path, "["+strconv.Itoa(i)+"]")
		temp := reflect.New(kt).Elem()
		if elem.Type != ir.NullType {
			if kt.Kind() != reflect.Interface && isScalarDest(d.cfg.types, kt) {
				if err := d.scalar(temp, elem, epath); err != nil {
					return err
				}
			} else if err := d.assignValue(temp, elem, epath, &pend, &fixes); err != nil {
				return err
			}
		}
		d.deferAdd(m, temp)
	}
	return d.finishLevel(pend, fixes)
}

func (d *decState) deferAdd(m reflect.Value, elem reflect.Value) {
	d.deferred = append(d.deferred, func() error {
		m.SetMapIndex(elem, reflect.ValueOf(struct{}{}))
		return nil
	})
}

func (d *decState) populateSeq(dst reflect.Value, node *ir.Node, path string) error {
	var pend []pending
	var fixes []fixup
	for i := range node.Values {
		epath := childPath(path, "["+strconv.Itoa(i)+"]")
		if err := d.assignValue(dst.Index(i), node.Values[i], epath, &pend, &fixes); err != nil {
			return err
		}
	}
	return d.finishLevel(pend, fixes)
}

// isScalarDest reports whether a destination type takes a scalar node
// directly: plain scalar kinds, enums, text unmarshalers, and type
// values.
func isScalarDest(ts *Types, t reflect.Type) bool {
	if t == reflectTypeType {
		return true
	}
	if ts.enumOf(t) != nil {
		return true
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// scalar converts a scalar node into a scalar-class destination.
func (d *decState) scalar(dst reflect.Value, node *ir.Node, path string) error {
	t := dst.Type()
	if t == reflectTypeType {
		if node.Type != ir.StringType {
			return &TypeMismatchError{FieldPath: path, Expected: "type name", Actual: node.Type.String()}
		}
		rt, err := d.cfg.types.Lookup(node.String)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unknown type name %q", node.String), Err: err}
		}
		dst.Set(reflect.ValueOf(rt))
		return nil
	}
	if info := d.cfg.types.enumOf(t); info != nil {
		if node.Type != ir.StringType {
			return &TypeMismatchError{FieldPath: path, Expected: t.String() + " name", Actual: node.Type.String()}
		}
		ord, ok := info.byName[node.String]
		if !ok {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unknown %s name %q", t, node.String)}
		}
		return setIntValue(dst, ord, path)
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return d.textScalar(dst, node, path)
	}

	switch t.Kind() {
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return &TypeMismatchError{FieldPath: path, Expected: "bool", Actual: node.Type.String()}
		}
		dst.SetBool(node.Bool)
		return nil
	case reflect.String:
		if node.Type != ir.StringType {
			return &TypeMismatchError{FieldPath: path, Expected: "string", Actual: node.Type.String()}
		}
		dst.SetString(node.String)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.intScalar(dst, node, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.uintScalar(dst, node, path)
	case reflect.Float32, reflect.Float64:
		return d.floatScalar(dst, node, path)
	}
	return &TypeMismatchError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
}

func (d *decState) textScalar(dst reflect.Value, node *ir.Node, path string) error {
	if node.Type != ir.StringType {
		return &TypeMismatchError{FieldPath: path, Expected: dst.Type().String(), Actual: node.Type.String()}
	}
	var tu encoding.TextUnmarshaler
	if dst.Kind() == reflect.Pointer {
		p := reflect.New(dst.Type().Elem())
		dst.Set(p)
		tu = p.Interface().(encoding.TextUnmarshaler)
	} else {
		tu = dst.Addr().Interface().(encoding.TextUnmarshaler)
	}
	if err := tu.UnmarshalText([]byte(node.String)); err != nil {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("UnmarshalText on %s failed", dst.Type()),
			Err:       err,
		}
	}
	return nil
}

func (d *decState) intScalar(dst reflect.Value, node *ir.Node, path string) error {
	switch node.Type {
	case ir.NumberType:
		iv, ok := node.AsInt64()
		if !ok {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("cannot convert %s to %s", node.NumberText(), dst.Type()),
			}
		}
		return setIntValue(dst, iv, path)
	case ir.StringType:
		// single-character strings populate rune-kinded fields
		if dst.Kind() == reflect.Int32 && utf8.RuneCountInString(node.String) == 1 {
			r, _ := utf8.DecodeRuneInString(node.String)
			dst.SetInt(int64(r))
			return nil
		}
	}
	return &TypeMismatchError{FieldPath: path, Expected: dst.Type().String(), Actual: node.Type.String()}
}

func setIntValue(dst reflect.Value, iv int64, path string) error {
	switch dst.Kind() {
	case reflect.Int8:
		if iv < math.MinInt8 || iv > math.MaxInt8 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows int8", iv),
			}
		}
	case reflect.Int16:
		if iv < math.MinInt16 || iv > math.MaxInt16 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows int16", iv),
			}
		}
	case reflect.Int32:
		if iv < math.MinInt32 || iv > math.MaxInt32 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows int32", iv),
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if iv < 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("negative value %d cannot be converted to %s", iv, dst.Type()),
			}
		}
		return setUintValue(dst, uint64(iv), path)
	}
	dst.SetInt(iv)
	return nil
}

func (d *decState) uintScalar(dst reflect.Value, node *ir.Node, path string) error {
	if node.Type != ir.NumberType {
		return &TypeMismatchError{FieldPath: path, Expected: dst.Type().String(), Actual: node.Type.String()}
	}
	uv, ok := node.AsUint64()
	if !ok {
		if iv, ok := node.AsInt64(); ok && iv < 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("negative value %d cannot be converted to %s", iv, dst.Type()),
			}
		}
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("cannot convert %s to %s", node.NumberText(), dst.Type()),
		}
	}
	return setUintValue(dst, uv, path)
}

func setUintValue(dst reflect.Value, uv uint64, path string) error {
	switch dst.Kind() {
	case reflect.Uint8:
		if uv > math.MaxUint8 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows uint8", uv),
			}
		}
	case reflect.Uint16:
		if uv > math.MaxUint16 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows uint16", uv),
			}
		}
	case reflect.Uint32:
		if uv > math.MaxUint32 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows uint32", uv),
			}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if uv > math.MaxInt64 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows %s", uv, dst.Kind()),
			}
		}
		return setIntValue(dst, int64(uv), path)
	}
	dst.SetUint(uv)
	return nil
}

func (d *decState) floatScalar(dst reflect.Value, node *ir.Node, path string) error {
	if node.Type != ir.NumberType {
		return &TypeMismatchError{FieldPath: path, Expected: dst.Type().String(), Actual: node.Type.String()}
	}
	f, ok := node.AsFloat64()
	if !ok {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("invalid number %q", node.NumberText()),
		}
	}
	if dst.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("value %s overflows float32", node.NumberText()),
		}
	}
	dst.SetFloat(f)
	return nil
}

// keyFromString converts a map key rendered as an object field back to
// the key type. String keys pass through; other scalar kinds parse
// from their text forms, including single-rune strings for rune keys.
func (d *decState) keyFromString(dst reflect.Value, text string, path string) error {
	t := dst.Type()
	if t == reflectTypeType {
		rt, err := d.cfg.types.Lookup(text)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unknown type name %q", text), Err: err}
		}
		dst.Set(reflect.ValueOf(rt))
		return nil
	}
	if info := d.cfg.types.enumOf(t); info != nil {
		ord, ok := info.byName[text]
		if !ok {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unknown %s name %q", t, text)}
		}
		return setIntValue(dst, ord, path)
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return d.textScalar(dst, ir.FromString(text), path)
	}
	switch t.Kind() {
	case reflect.String:
		dst.SetString(text)
		return nil
	case reflect.Bool:
		switch text {
		case "true":
			dst.SetBool(true)
		case "false":
			dst.SetBool(false)
		default:
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("cannot convert key %q to bool", text)}
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		iv, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			if t.Kind() == reflect.Int32 && utf8.RuneCountInString(text) == 1 {
				r, _ := utf8.DecodeRuneInString(text)
				dst.SetInt(int64(r))
				return nil
			}
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("cannot convert key %q to %s", text, t), Err: err}
		}
		return setIntValue(dst, iv, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uv, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("cannot convert key %q to %s", text, t), Err: err}
		}
		return setUintValue(dst, uv, path)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("cannot convert key %q to %s", text, t), Err: err}
		}
		if t.Kind() == reflect.Float32 && math.Abs(f) > math.MaxFloat32 {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("key %q overflows float32", text)}
		}
		dst.SetFloat(f)
		return nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			dst.Set(reflect.ValueOf(text))
			return nil
		}
	}
	return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("map key type %s is not scalar", t)}
}

var (
	mapStringAnyType = reflect.TypeOf(map[string]any(nil))
	sliceAnyType     = reflect.TypeOf([]any(nil))
)
