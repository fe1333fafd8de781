package encode

import (
	"testing"

	"github.com/tangle-format/go-tangle/ir"
)

func obj(kvs ...ir.KeyVal) *ir.Node { return ir.FromKeyVals(kvs) }

func kv(k string, v *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: ir.FromString(k), Val: v}
}

func TestEncodeCompact(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"null", ir.Null(), `null`},
		{"bool", ir.FromBool(true), `true`},
		{"int", ir.FromInt(-5), `-5`},
		{"float", ir.FromFloat(2.5), `2.5`},
		{"string", ir.FromString("hi"), `"hi"`},
		{"escaped", ir.FromString("a\tb"), `"a\tb"`},
		{"empty object", obj(), `{}`},
		{"empty array", ir.FromSlice(nil), `[]`},
		{"object", obj(kv("a", ir.FromInt(1)), kv("b", ir.FromString("x"))), `{"a":1,"b":"x"}`},
		{"array", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromBool(false)}), `[1,false]`},
		{"nested", obj(kv("a", ir.FromSlice([]*ir.Node{obj(kv("b", ir.Null()))}))), `{"a":[{"b":null}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustString(tt.node, WithIndent(0))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeIndent(t *testing.T) {
	node := obj(kv("a", ir.FromInt(1)), kv("b", ir.FromSlice([]*ir.Node{ir.FromInt(2)})))
	want := `{
  "a": 1,
  "b": [
    2
  ]
}`
	if got := MustString(node); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeIDFirst(t *testing.T) {
	node := obj(kv("name", ir.FromString("alice")))
	node.ID = "a1"
	want := `{"@id":"a1","name":"alice"}`
	if got := MustString(node, WithIndent(0)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeRef(t *testing.T) {
	target := obj(kv("x", ir.FromInt(1)))
	target.ID = "1"
	ref := ir.Ref(target)
	ref.String = "1"
	node := obj(kv("a", target), kv("b", ref))
	want := `{"a":{"@id":"1","x":1},"b":"1"}`
	if got := MustString(node, WithIndent(0)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeUnresolvedRef(t *testing.T) {
	ref := ir.Ref(obj())
	node := obj(kv("a", ref))
	if _, err := Bytes(node); err == nil {
		t.Fatal("expected error for unassigned reference")
	}
}

func TestEncodeIDOnlyObject(t *testing.T) {
	node := obj()
	node.ID = "7"
	want := `{"@id":"7"}`
	if got := MustString(node, WithIndent(0)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeTrailingNewline(t *testing.T) {
	d, err := Bytes(ir.FromInt(1))
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "1\n" {
		t.Fatalf("got %q", string(d))
	}
}
