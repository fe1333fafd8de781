package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/tangle-format/go-tangle/ir"
)

// encState tracks one Go-to-ir mapping operation. seen records the
// first node built for each live value so later references and cycles
// collapse onto it; onPath holds the identities currently being built,
// which is what distinguishes a cycle from plain sharing.
type encState struct {
	cfg    *mapConfig
	seen   map[refKey]*ir.Node
	onPath map[refKey]bool
	ids    map[*ir.Node]string
	nrefs  int
	depth  int
}

func newEncState(cfg *mapConfig) *encState {
	return &encState{
		cfg:    cfg,
		seen:   make(map[refKey]*ir.Node),
		onPath: make(map[refKey]bool),
		ids:    make(map[*ir.Node]string),
	}
}

func (s *encState) run(val reflect.Value, path string) (*ir.Node, error) {
	node, err := s.toNode(val, path)
	if err != nil {
		return nil, err
	}
	if err := s.assignIDs(node); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *encState) toNode(val reflect.Value, path string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	if s.depth >= s.cfg.maxDepth {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("nesting exceeds max depth %d", s.cfg.maxDepth),
		}
	}
	s.depth++
	defer func() { s.depth-- }()

	t := val.Type()
	if t == reflectTypeType {
		if val.IsNil() {
			return ir.Null(), nil
		}
		return ir.FromString(s.cfg.types.NameOf(val.Interface().(reflect.Type))), nil
	}
	if info := s.cfg.types.enumOf(t); info != nil {
		return s.enumNode(info, val, path)
	}
	if t.Implements(textMarshalerType) {
		return s.textNode(val, path)
	}

	switch val.Kind() {
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromUint(val.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := val.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("%v has no document representation", f),
			}
		}
		return ir.FromFloat(f), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		if rt, ok := val.Interface().(reflect.Type); ok {
			return ir.FromString(s.cfg.types.NameOf(rt)), nil
		}
		return s.toNode(val.Elem(), path)
	case reflect.Pointer:
		return s.pointerNode(val, path)
	case reflect.Map:
		return s.mapNode(val, path)
	case reflect.Slice:
		return s.sliceNode(val, path)
	case reflect.Array:
		return s.seqNode(val, path)
	case reflect.Struct:
		obj := ir.FromKeyVals(nil)
		if err := s.fillRecord(obj, val, path); err != nil {
			return nil, err
		}
		return obj, nil
	}
	return nil, &MarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported kind %s", val.Kind()),
	}
}

func (s *encState) textNode(val reflect.Value, path string) (*ir.Node, error) {
	if val.Kind() == reflect.Pointer && val.IsNil() {
		return ir.Null(), nil
	}
	b, err := val.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("MarshalText on %s failed", val.Type()),
			Err:       err,
		}
	}
	return ir.FromString(string(b)), nil
}

func (s *encState) enumNode(info *enumInfo, val reflect.Value, path string) (*ir.Node, error) {
	var ord int64
	switch val.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("enum %s value %d has no registered name", val.Type(), u),
			}
		}
		ord = int64(u)
	default:
		ord = val.Int()
	}
	if ord < 0 || ord >= int64(len(info.names)) {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("enum %s value %d has no registered name", val.Type(), ord),
		}
	}
	return ir.FromString(info.names[ord]), nil
}

// pointerNode handles the one kind that carries object identity on the
// wire. A pointer to a struct is a record: revisiting it on the current
// path produces a reference to the first node built for it. Pointers to
// anything else are invisible indirection, except that a cycle through
// one cannot be expressed.
func (s *encState) pointerNode(val reflect.Value, path string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	key, _ := identityOf(val)
	if val.Type().Elem().Kind() == reflect.Struct {
		if s.onPath[key] {
			return s.refTo(key), nil
		}
		obj := ir.FromKeyVals(nil)
		s.enter(key, obj)
		err := s.fillRecord(obj, val.Elem(), path)
		s.exit(key)
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	if s.onPath[key] {
		return nil, &UnsupportedCycleError{FieldPath: path, TypeName: val.Type().String()}
	}
	s.onPath[key] = true
	node, err := s.toNode(val.Elem(), path)
	delete(s.onPath, key)
	return node, err
}

func (s *encState) mapNode(val reflect.Value, path string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	key, _ := identityOf(val)
	if isSetType(val.Type()) {
		if s.onPath[key] {
			return nil, &UnsupportedCycleError{FieldPath: path, TypeName: val.Type().String()}
		}
		s.onPath[key] = true
		node, err := s.setNode(val, path)
		delete(s.onPath, key)
		return node, err
	}
	if s.onPath[key] {
		return s.refTo(key), nil
	}
	obj := ir.FromKeyVals(nil)
	s.enter(key, obj)
	err := s.fillMap(obj, val, path)
	s.exit(key)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *encState) sliceNode(val reflect.Value, path string) (*ir.Node, error) {
	if val.Len() == 0 {
		return ir.FromSlice(nil), nil
	}
	key, _ := identityOf(val)
	if s.onPath[key] {
		return nil, &UnsupportedCycleError{FieldPath: path, TypeName: val.Type().String()}
	}
	s.onPath[key] = true
	node, err := s.seqNode(val, path)
	delete(s.onPath, key)
	return node, err
}

func (s *encState) seqNode(val reflect.Value, path string) (*ir.Node, error) {
	arr := ir.FromSlice(nil)
	for i := 0; i < val.Len(); i++ {
		child, err := s.toNode(val.Index(i), childPath(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		arr.Append(child)
	}
	return arr, nil
}

// setNode maps a set to an array of its elements sorted into the ir
// total order, so equal sets always produce the same document.
func (s *encState) setNode(val reflect.Value, path string) (*ir.Node, error) {
	elems := make([]*ir.Node, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		child, err := s.toNode(iter.Key(), childPath(path, "[]"))
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
	}
	sort.SliceStable(elems, func(i, j int) bool {
		return setElemLess(elems[i], elems[j])
	})
	return ir.FromSlice(elems), nil
}

// setElemLess orders set elements. References have no id text yet while
// the tree is being built, so tied references order by target content.
func setElemLess(a, b *ir.Node) bool {
	c := ir.Compare(a, b)
	if c == 0 && a.Type == ir.RefType {
		c = ir.Compare(a.Target, b.Target)
	}
	return c < 0
}

func (s *encState) fillRecord(obj *ir.Node, val reflect.Value, path string) error {
	d, err := s.cfg.types.describe(val.Type())
	if err != nil {
		return &MarshalError{FieldPath: path, Message: "invalid record type", Err: err}
	}
	for i := range d.fields {
		slot := &d.fields[i]
		fv := fieldByIndexRead(val, slot.index)
		if !fv.IsValid() {
			continue
		}
		child, err := s.toNode(fv, childPath(path, slot.name))
		if err != nil {
			return err
		}
		if slot.isID {
			if text, ok := scalarText(child); ok {
				s.ids[obj] = text
			}
		}
		if child.Type == ir.NullType {
			continue
		}
		obj.Put(slot.name, child)
	}
	return nil
}

type mapEntry struct {
	key  *ir.Node
	text string
	val  reflect.Value
}

// fillMap emits map entries sorted by key in the ir total order, so
// equal maps always produce the same document. Keys keep their natural
// order, numeric before lexicographic, and render to field strings.
func (s *encState) fillMap(obj *ir.Node, val reflect.Value, path string) error {
	entries := make([]mapEntry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k, err := s.toNode(iter.Key(), childPath(path, "[]"))
		if err != nil {
			return err
		}
		text, ok := scalarText(k)
		if !ok {
			return &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("map key type %s is not scalar", iter.Key().Type()),
			}
		}
		entries = append(entries, mapEntry{key: k, text: text, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return ir.Compare(entries[i].key, entries[j].key) < 0
	})
	for i := range entries {
		child, err := s.toNode(entries[i].val, childPath(path, "["+entries[i].text+"]"))
		if err != nil {
			return err
		}
		obj.Put(entries[i].text, child)
	}
	return nil
}

// scalarText renders a scalar node to the string used for map keys and
// identity tags. An empty string is not usable as an identity.
func scalarText(n *ir.Node) (string, bool) {
	switch n.Type {
	case ir.StringType:
		return n.String, n.String != ""
	case ir.NumberType:
		return n.NumberText(), true
	case ir.BoolType:
		if n.Bool {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

func (s *encState) refTo(key refKey) *ir.Node {
	s.nrefs++
	return ir.Ref(s.seen[key])
}

func (s *encState) enter(key refKey, node *ir.Node) {
	if _, ok := s.seen[key]; !ok {
		s.seen[key] = node
	}
	s.onPath[key] = true
}

func (s *encState) exit(key refKey) {
	delete(s.onPath, key)
}

// assignIDs resolves every reference in document order after the tree
// is fully built. A target gets its identity field's value as its id
// when one was captured and is still free, otherwise the next free
// generated decimal. Only referenced objects receive ids.
func (s *encState) assignIDs(root *ir.Node) error {
	if s.nrefs == 0 {
		return nil
	}
	next := 1
	used := make(map[string]bool)
	return root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || n.Type != ir.RefType {
			return true, nil
		}
		t := n.Target
		if t == nil {
			return false, &MarshalError{Message: "reference without a target"}
		}
		if t.ID == "" {
			if cand, ok := s.ids[t]; ok && !used[cand] {
				t.ID = cand
			} else {
				for {
					g := strconv.Itoa(next)
					next++
					if !used[g] {
						t.ID = g
						break
					}
				}
			}
			used[t.ID] = true
		}
		n.String = t.ID
		return true, nil
	})
}
