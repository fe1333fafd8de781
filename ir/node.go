package ir

import (
	"math"
	"strconv"
)

// Type discriminates the node shapes of the tagged union.
type Type uint8

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	RefType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	return map[Type]string{
		NullType:   "null",
		BoolType:   "bool",
		NumberType: "number",
		StringType: "string",
		RefType:    "ref",
		ArrayType:  "array",
		ObjectType: "object",
	}[t]
}

// Types lists all node types in rank order.
func Types() []Type {
	return []Type{NullType, BoolType, NumberType, StringType, RefType, ArrayType, ObjectType}
}

// IDKey is the reserved object key carrying an identity tag on the wire.
// When present it must be the first key of its object; anywhere else the
// key is ordinary data.
const IDKey = "@id"

// Node is one value in a tangle document. Values are placed in fields
// depending on the node type.
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i],
// so there are always as many fields as values. Keys are string typed.
// ID holds the object's identity tag when one is present; arrays never
// carry an identity tag.
//
// RefType nodes stand for back-references: Target points at the object
// node the reference resolves to, and String holds the identity tag text
// once tags have been assigned.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	ID     string
	Target *Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(n *Node, v string) *Node {
	n.Type = StringType
	n.String = v
	return n
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

// FromUint falls back to the string form for values beyond int64 range.
func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatUint(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// Ref builds a back-reference to target, which must be an object node.
// The identity tag text is filled in later, when tags are assigned.
func Ref(target *Node) *Node {
	return &Node{
		Type:   RefType,
		Target: target,
	}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	return FromKeyValsAt(&Node{}, kvs)
}

func FromKeyValsAt(n *Node, kvs []KeyVal) *Node {
	n.Type = ObjectType
	n.Fields = make([]*Node, len(kvs))
	n.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key.Type == StringType {
			kv.Key.ParentField = kv.Key.String
			kv.Val.ParentField = kv.Key.String
		}
		kv.Key.Parent = n
		kv.Key.ParentIndex = i
		kv.Val.Parent = n
		kv.Val.ParentIndex = i
		n.Fields[i] = kv.Key
		n.Values[i] = kv.Val
	}
	return n
}

func FromSlice(vs []*Node) *Node {
	return FromSliceAt(&Node{}, vs)
}

func FromSliceAt(n *Node, vs []*Node) *Node {
	n.Type = ArrayType
	n.Values = make([]*Node, len(vs))
	for i, v := range vs {
		v.Parent = n
		v.ParentIndex = i
		n.Values[i] = v
	}
	return n
}

// Append adds a value to an array node, maintaining parent links.
func (n *Node) Append(v *Node) {
	v.Parent = n
	v.ParentIndex = len(n.Values)
	n.Values = append(n.Values, v)
}

// Put adds a key/value pair to an object node, maintaining parent links.
func (n *Node) Put(key string, v *Node) {
	i := len(n.Fields)
	k := &Node{
		Type:        StringType,
		String:      key,
		Parent:      n,
		ParentIndex: i,
		ParentField: key,
	}
	v.Parent = n
	v.ParentIndex = i
	v.ParentField = key
	n.Fields = append(n.Fields, k)
	n.Values = append(n.Values, v)
}

// Get returns the value for field in an object node, or nil.
func Get(n *Node, field string) *Node {
	for i := range n.Fields {
		if n.Fields[i].String == field {
			return n.Values[i]
		}
	}
	return nil
}

// ToMap flattens an object node's fields into a map, losing order.
func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Fields))
	for i := range n.Fields {
		res[n.Fields[i].String] = n.Values[i]
	}
	return res
}

// AsInt64 returns the node's integer value, parsing the string form
// lazily when needed.
func (n *Node) AsInt64() (int64, bool) {
	if n.Type != NumberType {
		return 0, false
	}
	if n.Int64 != nil {
		return *n.Int64, true
	}
	if n.Number != "" {
		i, err := strconv.ParseInt(n.Number, 10, 64)
		if err == nil {
			n.Int64 = &i
			return i, true
		}
	}
	return 0, false
}

// AsUint64 is like AsInt64 for values that may exceed int64 range.
func (n *Node) AsUint64() (uint64, bool) {
	if n.Type != NumberType {
		return 0, false
	}
	if n.Int64 != nil {
		if *n.Int64 < 0 {
			return 0, false
		}
		return uint64(*n.Int64), true
	}
	if n.Number != "" {
		u, err := strconv.ParseUint(n.Number, 10, 64)
		if err == nil {
			return u, true
		}
	}
	return 0, false
}

// AsFloat64 returns the node's float value, widening integers and
// parsing the string form lazily when needed.
func (n *Node) AsFloat64() (float64, bool) {
	if n.Type != NumberType {
		return 0, false
	}
	if n.Float64 != nil {
		return *n.Float64, true
	}
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	if n.Number != "" {
		f, err := strconv.ParseFloat(n.Number, 64)
		if err == nil {
			n.Float64 = &f
			return f, true
		}
	}
	return 0, false
}

// NumberText renders the canonical text of a number node.
func (n *Node) NumberText() string {
	switch {
	case n.Int64 != nil:
		return strconv.FormatInt(*n.Int64, 10)
	case n.Float64 != nil:
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	default:
		return n.Number
	}
}

func (n *Node) Clone() *Node {
	return n.CloneTo(&Node{})
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.ParentField = n.ParentField
	dst.Type = n.Type
	dst.ID = n.ID
	dst.Target = n.Target
	dst.Fields = make([]*Node, len(n.Fields))
	dst.Values = make([]*Node, len(n.Values))
	for i, f := range n.Fields {
		dstF := f.CloneTo(&Node{})
		dstF.Parent = dst
		dstF.ParentIndex = i
		dst.Fields[i] = dstF
	}
	for i, v := range n.Values {
		dstV := v.CloneTo(&Node{})
		dstV.Parent = dst
		dstV.ParentIndex = i
		dst.Values[i] = dstV
	}
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Number = n.Number
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	return dst
}

// Visit walks the node tree pre- and post-order. The callback's first
// return controls descent into Values.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
