package gomap

import (
	"fmt"
	"reflect"
	"sync"
)

// Types holds the registrations one mapping configuration works from:
// names for concrete types, enum name tables, interface bindings, and
// parameterized aliases. The zero value is not usable; call NewTypes.
// All methods are safe for concurrent use.
type Types struct {
	names   sync.Map // string -> reflect.Type
	byType  sync.Map // reflect.Type -> string
	enums   sync.Map // reflect.Type -> *enumInfo
	ifaces  sync.Map // reflect.Type -> reflect.Type
	aliases sync.Map // string -> *aliasDef
	descs   sync.Map // reflect.Type -> *descriptor
	ctors   sync.Map // reflect.Type -> *ctorEntry
}

// DefaultTypes is the registry used by the package-level functions.
var DefaultTypes = NewTypes()

func NewTypes() *Types {
	return &Types{}
}

type enumInfo struct {
	names  []string
	byName map[string]int64
}

type aliasDef struct {
	params []string
	target *typeExpr
}

// Register records the concrete type of v under its default name, the
// reflect string form such as "gomap.Box[string]" or "pkg.T". Values
// deserialized into interface positions and type-valued fields can only
// name registered types. Register panics if the name is already bound
// to a different type.
func (ts *Types) Register(v any) {
	t := reflect.TypeOf(v)
	if t == nil {
		panic("gomap: Register of nil value")
	}
	ts.RegisterName(t.String(), v)
}

// RegisterName is like Register but records the type under an explicit
// name.
func (ts *Types) RegisterName(name string, v any) {
	if name == "" {
		panic("gomap: RegisterName with empty name")
	}
	t := reflect.TypeOf(v)
	if t == nil {
		panic("gomap: RegisterName of nil value")
	}
	if prev, ok := ts.names.Load(name); ok {
		if prev.(reflect.Type) != t {
			panic(fmt.Sprintf("gomap: name %q already registered for %s", name, prev.(reflect.Type)))
		}
		return
	}
	ts.names.Store(name, t)
	ts.byType.LoadOrStore(t, name)
}

// RegisterEnum records an integer-kinded named type as an enum. The
// names are positional: names[i] maps to the value i. Enum values map
// to their names on the wire and back. RegisterEnum panics if the
// sample is not an integer kind or names is empty.
func (ts *Types) RegisterEnum(v any, names ...string) {
	t := reflect.TypeOf(v)
	if t == nil {
		panic("gomap: RegisterEnum of nil value")
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		panic(fmt.Sprintf("gomap: RegisterEnum of non-integer type %s", t))
	}
	if len(names) == 0 {
		panic(fmt.Sprintf("gomap: RegisterEnum of %s with no names", t))
	}
	info := &enumInfo{
		names:  names,
		byName: make(map[string]int64, len(names)),
	}
	for i, name := range names {
		info.byName[name] = int64(i)
	}
	ts.enums.Store(t, info)
	ts.RegisterName(t.String(), v)
}

// BindInterface records the concrete type constructed when a document
// object or array lands on the given interface type. The iface argument
// is a nil pointer to the interface, gob style:
//
//	types.BindInterface((*Shape)(nil), Circle{})
//
// BindInterface panics if iface is not a pointer to an interface or the
// concrete type does not implement it.
func (ts *Types) BindInterface(iface any, concrete any) {
	pt := reflect.TypeOf(iface)
	if pt == nil || pt.Kind() != reflect.Pointer || pt.Elem().Kind() != reflect.Interface {
		panic("gomap: BindInterface iface must be a pointer to an interface")
	}
	it := pt.Elem()
	ct := reflect.TypeOf(concrete)
	if ct == nil {
		panic("gomap: BindInterface of nil concrete value")
	}
	if !ct.Implements(it) && !reflect.PointerTo(ct).Implements(it) {
		panic(fmt.Sprintf("gomap: %s does not implement %s", ct, it))
	}
	ts.ifaces.Store(it, ct)
	ts.RegisterName(ct.String(), concrete)
}

// Alias records a named type expression. The name may declare type
// parameters in square brackets, which the target expression can use:
//
//	types.Alias("strings", "[]string")
//	types.Alias("table[V]", "map[string]V")
//
// Lookup resolves alias applications such as "table[int]" by binding
// the declared parameters to the supplied arguments.
func (ts *Types) Alias(name string, target string) error {
	base, params, err := parseAliasName(name)
	if err != nil {
		return err
	}
	expr, err := parseTypeExpr(target)
	if err != nil {
		return fmt.Errorf("alias %q: %w", name, err)
	}
	ts.aliases.Store(base, &aliasDef{params: params, target: markParams(expr, params)})
	return nil
}

// Lookup resolves a type expression against the registry. It handles
// registered names, aliases, builtins, and compositions of them:
// "[]pkg.T", "map[string]*pkg.T", "[4]byte", "table[int]".
func (ts *Types) Lookup(name string) (reflect.Type, error) {
	expr, err := parseTypeExpr(name)
	if err != nil {
		return nil, err
	}
	return ts.toType(expr)
}

// NameOf returns the registered name of t, falling back to the reflect
// string form.
func (ts *Types) NameOf(t reflect.Type) string {
	if name, ok := ts.byType.Load(t); ok {
		return name.(string)
	}
	return t.String()
}

func (ts *Types) typeNamed(name string) (reflect.Type, bool) {
	t, ok := ts.names.Load(name)
	if !ok {
		return nil, false
	}
	return t.(reflect.Type), true
}

func (ts *Types) enumOf(t reflect.Type) *enumInfo {
	info, ok := ts.enums.Load(t)
	if !ok {
		return nil
	}
	return info.(*enumInfo)
}

func (ts *Types) bindingFor(iface reflect.Type) (reflect.Type, bool) {
	t, ok := ts.ifaces.Load(iface)
	if !ok {
		return nil, false
	}
	return t.(reflect.Type), true
}

func (ts *Types) aliasNamed(base string) (*aliasDef, bool) {
	def, ok := ts.aliases.Load(base)
	if !ok {
		return nil, false
	}
	return def.(*aliasDef), true
}

// Register records v's concrete type in DefaultTypes.
func Register(v any) {
	DefaultTypes.Register(v)
}

// RegisterName records v's concrete type in DefaultTypes under name.
func RegisterName(name string, v any) {
	DefaultTypes.RegisterName(name, v)
}

// RegisterEnum records an enum name table in DefaultTypes.
func RegisterEnum(v any, names ...string) {
	DefaultTypes.RegisterEnum(v, names...)
}

// BindInterface records an interface binding in DefaultTypes.
func BindInterface(iface any, concrete any) {
	DefaultTypes.BindInterface(iface, concrete)
}

// Alias records a type expression alias in DefaultTypes.
func Alias(name string, target string) error {
	return DefaultTypes.Alias(name, target)
}
