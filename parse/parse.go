package parse

import (
	"fmt"
	"strconv"

	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, doc, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, token.ExpectedErr("value", doc.End())
	}
	off := 0
	res, err := parseValue(toks, nil, &off, pOpts)
	if err != nil {
		return nil, err
	}
	if off != len(toks) {
		return nil, token.UnexpectedErr("trailing input", toks[off].Pos)
	}
	return res, nil
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func trackPos(node *ir.Node, pos *token.Pos, opts *parseOpts) {
	if opts.positions != nil && pos != nil {
		opts.positions[node] = pos
	}
}

func parseValue(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	if *pi >= len(toks) {
		return nil, fmt.Errorf("%w: unexpected end of input", ir.ErrParse)
	}
	t := &toks[*pi]
	switch t.Type {
	case token.TLCurl:
		pos := t.Pos
		*pi++
		obj := &ir.Node{Type: ir.ObjectType, Parent: p}
		trackPos(obj, pos, opts)
		return parseObj(toks, obj, pi, opts)
	case token.TLSquare:
		pos := t.Pos
		*pi++
		arr := &ir.Node{Type: ir.ArrayType, Parent: p}
		trackPos(arr, pos, opts)
		return parseArr(toks, arr, pi, opts)
	case token.TString:
		*pi++
		n := ir.FromString(t.String())
		n.Parent = p
		trackPos(n, t.Pos, opts)
		return n, nil
	case token.TInteger:
		*pi++
		n, err := numberNode(t)
		if err != nil {
			return nil, err
		}
		n.Parent = p
		trackPos(n, t.Pos, opts)
		return n, nil
	case token.TFloat:
		*pi++
		f, err := strconv.ParseFloat(string(t.Bytes), 64)
		if err != nil {
			return nil, token.NewTokenizeErr(token.ErrNumber, t.Pos)
		}
		n := &ir.Node{Type: ir.NumberType, Float64: &f, Number: string(t.Bytes), Parent: p}
		trackPos(n, t.Pos, opts)
		return n, nil
	case token.TTrue:
		*pi++
		n := ir.FromBool(true)
		n.Parent = p
		trackPos(n, t.Pos, opts)
		return n, nil
	case token.TFalse:
		*pi++
		n := ir.FromBool(false)
		n.Parent = p
		trackPos(n, t.Pos, opts)
		return n, nil
	case token.TNull:
		*pi++
		n := ir.Null()
		n.Parent = p
		trackPos(n, t.Pos, opts)
		return n, nil
	default:
		return nil, token.UnexpectedErr(t.Type.String(), t.Pos)
	}
}

// numberNode converts an integer literal, falling back to the raw text
// when the value exceeds int64 range.
func numberNode(t *token.Token) (*ir.Node, error) {
	raw := string(t.Bytes)
	n := &ir.Node{Type: ir.NumberType, Number: raw}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		n.Int64 = &i
		return n, nil
	}
	if _, uerr := strconv.ParseUint(raw, 10, 64); uerr == nil {
		return n, nil
	}
	// out of integer range entirely, treat as float
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil {
		return nil, token.NewTokenizeErr(token.ErrNumber, t.Pos)
	}
	n.Float64 = &f
	return n, nil
}

// parseObj consumes an object body after the opening brace. When the
// first key is the reserved identity key with a string value, the pair
// is lifted into the node's ID rather than kept as a field.
func parseObj(toks []token.Token, obj *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	first := true
	seen := map[string]bool{}
	for {
		if *pi >= len(toks) {
			return nil, fmt.Errorf("%w: unterminated object", ir.ErrParse)
		}
		t := &toks[*pi]
		if t.Type == token.TRCurl {
			*pi++
			return obj, nil
		}
		if !first {
			if t.Type != token.TComma {
				return nil, token.ExpectedErr("',' or '}'", t.Pos)
			}
			*pi++
			if *pi >= len(toks) {
				return nil, fmt.Errorf("%w: unterminated object", ir.ErrParse)
			}
			t = &toks[*pi]
		}
		if t.Type != token.TString {
			return nil, token.ExpectedErr("object key", t.Pos)
		}
		key := t.String()
		keyPos := t.Pos
		*pi++
		if *pi >= len(toks) || toks[*pi].Type != token.TColon {
			return nil, token.ExpectedErr("':'", keyPos)
		}
		*pi++
		val, err := parseValue(toks, obj, pi, opts)
		if err != nil {
			return nil, err
		}
		if first && key == ir.IDKey && val.Type == ir.StringType {
			obj.ID = val.String
			first = false
			continue
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate key %q at %s", ir.ErrParse, key, keyPos)
		}
		seen[key] = true
		obj.Put(key, val)
		first = false
	}
}

func parseArr(toks []token.Token, arr *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	first := true
	for {
		if *pi >= len(toks) {
			return nil, fmt.Errorf("%w: unterminated array", ir.ErrParse)
		}
		t := &toks[*pi]
		if t.Type == token.TRSquare {
			*pi++
			return arr, nil
		}
		if !first {
			if t.Type != token.TComma {
				return nil, token.ExpectedErr("',' or ']'", t.Pos)
			}
			*pi++
		}
		val, err := parseValue(toks, arr, pi, opts)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
		first = false
	}
}
