package gomap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// typeExpr is the parsed form of a type expression string such as
// "[]string", "map[string]*pkg.T", or "table[int]". Expressions compose
// builtins, registered names, aliases, and alias parameters.
type typeExpr struct {
	kind exprKind
	name string      // exprName, exprParam, and the base of exprApply
	n    int         // exprArray length
	elem *typeExpr   // exprSlice, exprArray, exprPtr
	key  *typeExpr   // exprMap
	val  *typeExpr   // exprMap
	args []*typeExpr // exprApply
}

type exprKind uint8

const (
	exprName exprKind = iota
	exprParam
	exprSlice
	exprArray
	exprMap
	exprPtr
	exprApply
	exprWildcard
)

// resolveCtx binds alias parameters to argument expressions while an
// alias application is resolved. Parameters with no binding are left in
// place so an enclosing application can bind them later.
type resolveCtx struct {
	bindings map[string]*typeExpr
}

func newResolveCtx(params []string, args []*typeExpr) *resolveCtx {
	c := &resolveCtx{bindings: make(map[string]*typeExpr, len(params))}
	for i, p := range params {
		if i < len(args) {
			c.bindings[p] = args[i]
		}
	}
	return c
}

// apply substitutes bound parameters throughout e, returning a new
// tree. Unbound parameters survive the rewrite unchanged.
func (c *resolveCtx) apply(e *typeExpr) *typeExpr {
	switch e.kind {
	case exprParam:
		if b, ok := c.bindings[e.name]; ok {
			return b
		}
		return e
	case exprSlice, exprArray, exprPtr:
		return &typeExpr{kind: e.kind, n: e.n, elem: c.apply(e.elem)}
	case exprMap:
		return &typeExpr{kind: exprMap, key: c.apply(e.key), val: c.apply(e.val)}
	case exprApply:
		args := make([]*typeExpr, len(e.args))
		for i, a := range e.args {
			args[i] = c.apply(a)
		}
		return &typeExpr{kind: exprApply, name: e.name, args: args}
	}
	return e
}

// markParams rewrites names that match declared alias parameters into
// parameter nodes. Called once when an alias is stored.
func markParams(e *typeExpr, params []string) *typeExpr {
	switch e.kind {
	case exprName:
		for _, p := range params {
			if e.name == p {
				return &typeExpr{kind: exprParam, name: e.name}
			}
		}
		return e
	case exprSlice, exprArray, exprPtr:
		return &typeExpr{kind: e.kind, n: e.n, elem: markParams(e.elem, params)}
	case exprMap:
		return &typeExpr{kind: exprMap, key: markParams(e.key, params), val: markParams(e.val, params)}
	case exprApply:
		args := make([]*typeExpr, len(e.args))
		for i, a := range e.args {
			args[i] = markParams(a, params)
		}
		return &typeExpr{kind: exprApply, name: e.name, args: args}
	}
	return e
}

// render prints e in the canonical form used for registry lookups,
// matching the reflect string form of instantiated generics.
func (e *typeExpr) render() string {
	switch e.kind {
	case exprName, exprParam:
		return e.name
	case exprWildcard:
		return "?"
	case exprSlice:
		return "[]" + e.elem.render()
	case exprArray:
		return "[" + strconv.Itoa(e.n) + "]" + e.elem.render()
	case exprMap:
		return "map[" + e.key.render() + "]" + e.val.render()
	case exprPtr:
		return "*" + e.elem.render()
	case exprApply:
		parts := make([]string, len(e.args))
		for i, a := range e.args {
			parts[i] = a.render()
		}
		return e.name + "[" + strings.Join(parts, ",") + "]"
	}
	return ""
}

var builtinTypes = map[string]reflect.Type{
	"bool":         reflect.TypeOf(false),
	"string":       reflect.TypeOf(""),
	"int":          reflect.TypeOf(int(0)),
	"int8":         reflect.TypeOf(int8(0)),
	"int16":        reflect.TypeOf(int16(0)),
	"int32":        reflect.TypeOf(int32(0)),
	"int64":        reflect.TypeOf(int64(0)),
	"uint":         reflect.TypeOf(uint(0)),
	"uint8":        reflect.TypeOf(uint8(0)),
	"uint16":       reflect.TypeOf(uint16(0)),
	"uint32":       reflect.TypeOf(uint32(0)),
	"uint64":       reflect.TypeOf(uint64(0)),
	"byte":         reflect.TypeOf(byte(0)),
	"rune":         reflect.TypeOf(rune(0)),
	"float32":      reflect.TypeOf(float32(0)),
	"float64":      reflect.TypeOf(float64(0)),
	"any":          reflect.TypeOf((*any)(nil)).Elem(),
	"interface {}": reflect.TypeOf((*any)(nil)).Elem(),
}

// toType materializes a resolved expression into a reflect.Type. Any
// wildcard or still-unbound parameter is an error at this point: there
// is no Go type to build.
func (ts *Types) toType(e *typeExpr) (reflect.Type, error) {
	switch e.kind {
	case exprWildcard:
		return nil, fmt.Errorf("wildcard type argument has no concrete type")
	case exprParam:
		return nil, fmt.Errorf("unresolved type parameter %q", e.name)
	case exprName:
		if t, ok := builtinTypes[e.name]; ok {
			return t, nil
		}
		if t, ok := ts.typeNamed(e.name); ok {
			return t, nil
		}
		if def, ok := ts.aliasNamed(e.name); ok {
			if len(def.params) != 0 {
				return nil, fmt.Errorf("alias %q needs %d type arguments", e.name, len(def.params))
			}
			return ts.toType(def.target)
		}
		return nil, fmt.Errorf("unknown type %q", e.name)
	case exprSlice:
		elem, err := ts.toType(e.elem)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case exprArray:
		elem, err := ts.toType(e.elem)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(e.n, elem), nil
	case exprPtr:
		elem, err := ts.toType(e.elem)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case exprMap:
		key, err := ts.toType(e.key)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("map key type %s is not comparable", key)
		}
		val, err := ts.toType(e.val)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, val), nil
	case exprApply:
		// Instantiated generics register under their full reflect
		// string, so try the whole application as a name first.
		if t, ok := ts.typeNamed(e.render()); ok {
			return t, nil
		}
		def, ok := ts.aliasNamed(e.name)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", e.render())
		}
		if len(e.args) != len(def.params) {
			return nil, fmt.Errorf("alias %q needs %d type arguments, got %d", e.name, len(def.params), len(e.args))
		}
		ctx := newResolveCtx(def.params, e.args)
		return ts.toType(ctx.apply(def.target))
	}
	return nil, fmt.Errorf("malformed type expression")
}

// parseAliasName splits an alias declaration into its base name and
// declared parameters: "table[K,V]" gives ("table", ["K","V"]).
func parseAliasName(name string) (string, []string, error) {
	base, rest, found := strings.Cut(name, "[")
	base = strings.TrimSpace(base)
	if base == "" {
		return "", nil, fmt.Errorf("alias name is empty")
	}
	if !found {
		return base, nil, nil
	}
	if !strings.HasSuffix(rest, "]") {
		return "", nil, fmt.Errorf("alias %q: unterminated parameter list", name)
	}
	var params []string
	for _, p := range strings.Split(strings.TrimSuffix(rest, "]"), ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", nil, fmt.Errorf("alias %q: empty type parameter", name)
		}
		params = append(params, p)
	}
	return base, params, nil
}

type exprParser struct {
	s string
	i int
}

// parseTypeExpr parses a type expression string. Aliases store their
// targets in this form, and Lookup accepts it for wire type names.
func parseTypeExpr(s string) (*typeExpr, error) {
	p := &exprParser{s: s}
	e, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("type expression %q: %w", s, err)
	}
	p.skipSpace()
	if p.i != len(p.s) {
		return nil, fmt.Errorf("type expression %q: trailing input at offset %d", s, p.i)
	}
	return e, nil
}

func (p *exprParser) parse() (*typeExpr, error) {
	p.skipSpace()
	if p.i >= len(p.s) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch {
	case p.s[p.i] == '*':
		p.i++
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		return &typeExpr{kind: exprPtr, elem: elem}, nil
	case p.s[p.i] == '?':
		p.i++
		return &typeExpr{kind: exprWildcard}, nil
	case p.s[p.i] == '[':
		return p.parseBracketed()
	case strings.HasPrefix(p.s[p.i:], "map["):
		p.i += len("map[")
		key, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		val, err := p.parse()
		if err != nil {
			return nil, err
		}
		return &typeExpr{kind: exprMap, key: key, val: val}, nil
	}
	return p.parseIdent()
}

// parseBracketed handles the two leading-bracket forms, "[]T" and
// "[N]T".
func (p *exprParser) parseBracketed() (*typeExpr, error) {
	p.i++
	p.skipSpace()
	if p.i < len(p.s) && p.s[p.i] == ']' {
		p.i++
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		return &typeExpr{kind: exprSlice, elem: elem}, nil
	}
	start := p.i
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
	}
	if p.i == start {
		return nil, fmt.Errorf("expected array length at offset %d", p.i)
	}
	n, err := strconv.Atoi(p.s[start:p.i])
	if err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &typeExpr{kind: exprArray, n: n, elem: elem}, nil
}

func (p *exprParser) parseIdent() (*typeExpr, error) {
	start := p.i
	for p.i < len(p.s) && isIdentByte(p.s[p.i]) {
		p.i++
	}
	if p.i == start {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.s[p.i], p.i)
	}
	name := p.s[start:p.i]
	if name == "interface" {
		p.skipSpace()
		if strings.HasPrefix(p.s[p.i:], "{}") {
			p.i += 2
			name = "interface {}"
		}
	}
	if p.i < len(p.s) && p.s[p.i] == '[' {
		p.i++
		var args []*typeExpr
		for {
			arg, err := p.parse()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpace()
			if p.i < len(p.s) && p.s[p.i] == ',' {
				p.i++
				continue
			}
			break
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return &typeExpr{kind: exprApply, name: name, args: args}, nil
	}
	return &typeExpr{kind: exprName, name: name}, nil
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != c {
		return fmt.Errorf("expected %q at offset %d", string(c), p.i)
	}
	p.i++
	return nil
}

func (p *exprParser) skipSpace() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t') {
		p.i++
	}
}

func isIdentByte(c byte) bool {
	return c == '.' || c == '/' || c == '_' || c == '-' ||
		(c >= '0' && c <= '9') ||
		unicode.IsLetter(rune(c))
}
