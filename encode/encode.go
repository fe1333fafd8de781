package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	line, col     int
	depth, indent int

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node as tangle text. The default indent is 2; an indent
// of 0 produces compact single-line output. Output ends with a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeValue(w, es, node.Type, "null")
	case ir.BoolType:
		if node.Bool {
			return writeValue(w, es, node.Type, "true")
		}
		return writeValue(w, es, node.Type, "false")
	case ir.NumberType:
		return writeValue(w, es, node.Type, node.NumberText())
	case ir.StringType:
		return writeValue(w, es, node.Type, token.Quote(node.String))
	case ir.RefType:
		if node.String == "" {
			return fmt.Errorf("%w: reference with unassigned identity tag", ErrEncoding)
		}
		return writeValue(w, es, node.Type, token.Quote(node.String))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeSep(w, es, ir.ArrayType, "[]")
	}
	if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeSep(w, es, ir.ArrayType, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ArrayType, "]")
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 && node.ID == "" {
		return writeSep(w, es, ir.ObjectType, "{}")
	}
	if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
		return err
	}
	es.depth++
	first := true
	if node.ID != "" {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, es, ir.RefType, token.Quote(ir.IDKey)); err != nil {
			return err
		}
		if err := writeColon(w, es); err != nil {
			return err
		}
		if err := writeValue(w, es, ir.RefType, token.Quote(node.ID)); err != nil {
			return err
		}
		first = false
	}
	for i, f := range node.Fields {
		if !first {
			if err := writeSep(w, es, ir.ObjectType, ","); err != nil {
				return err
			}
		}
		first = false
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, es, node.Values[i].Type, token.Quote(f.String)); err != nil {
			return err
		}
		if err := writeColon(w, es); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ObjectType, "}")
}

// writeNL breaks the line and writes the current indent. Compact mode
// (indent 0) writes nothing.
func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.line++
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeValue(w io.Writer, es *EncState, t ir.Type, s string) error {
	if es.Color != nil {
		s = es.Color(t, ValueColor, s)
	}
	return writeString(w, s)
}

func writeField(w io.Writer, es *EncState, t ir.Type, s string) error {
	if es.Color != nil {
		s = es.Color(t, FieldColor, s)
	}
	return writeString(w, s)
}

func writeSep(w io.Writer, es *EncState, t ir.Type, s string) error {
	if es.Color != nil {
		s = es.Color(t, SepColor, s)
	}
	return writeString(w, s)
}

func writeColon(w io.Writer, es *EncState) error {
	s := ":"
	if es.indent > 0 {
		s = ": "
	}
	if es.Color != nil {
		s = es.Color(ir.ObjectType, SepColor, s)
	}
	return writeString(w, s)
}
