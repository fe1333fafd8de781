package gomap

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type refItem struct {
	V int `tangle:"v"`
}

type refHolder struct {
	A *refItem `tangle:"a"`
	B *refItem `tangle:"b"`
}

// A reference and its target at the same level must resolve in either
// declaration order.
func TestBackRefOrderIndependence(t *testing.T) {
	docs := []string{
		`{"a":{"@id":"k","v":7},"b":"k"}`,
		`{"b":"k","a":{"@id":"k","v":7}}`,
	}
	for _, doc := range docs {
		var out refHolder
		if err := Unmarshal([]byte(doc), &out); err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		if out.A == nil || out.A != out.B {
			t.Errorf("%s: a and b must be the same instance", doc)
		}
		if out.A.V != 7 {
			t.Errorf("%s: got v=%d, want 7", doc, out.A.V)
		}
	}
}

func TestUnresolvedReference(t *testing.T) {
	var out refHolder
	err := Unmarshal([]byte(`{"a":{"v":1},"b":"ghost"}`), &out)
	var ue *UnresolvedReferenceError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want UnresolvedReferenceError", err)
	}
	if ue.Tag != "ghost" {
		t.Errorf("got tag %q, want %q", ue.Tag, "ghost")
	}
}

func TestOverflowChecks(t *testing.T) {
	type narrow struct {
		I8  int8    `tangle:"i8"`
		I16 int16   `tangle:"i16"`
		I32 int32   `tangle:"i32"`
		U8  uint8   `tangle:"u8"`
		U16 uint16  `tangle:"u16"`
		F32 float32 `tangle:"f32"`
	}
	tests := []struct {
		name string
		doc  string
		frag string
	}{
		{"int8", `{"i8":200}`, "overflows int8"},
		{"int16", `{"i16":40000}`, "overflows int16"},
		{"int32", `{"i32":3000000000}`, "overflows int32"},
		{"uint8", `{"u8":300}`, "overflows uint8"},
		{"negative uint", `{"u16":-5}`, "negative value -5"},
		{"float32", `{"f32":1e39}`, "overflows float32"},
		{"float into int", `{"i8":1.5}`, "cannot convert 1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out narrow
			err := Unmarshal([]byte(tt.doc), &out)
			if err == nil {
				t.Fatalf("expected error for %s", tt.doc)
			}
			if !strings.Contains(err.Error(), tt.frag) {
				t.Errorf("got %q, want substring %q", err.Error(), tt.frag)
			}
		})
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	var out refItem
	if err := Unmarshal([]byte(`{"v":3,"extra":{"deep":[1,2]},"more":null}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.V != 3 {
		t.Errorf("got v=%d, want 3", out.V)
	}
}

func TestRuneField(t *testing.T) {
	type text struct {
		R rune `tangle:"r"`
	}
	var out text
	if err := Unmarshal([]byte(`{"r":"é"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.R != 'é' {
		t.Errorf("got %q, want %q", out.R, 'é')
	}

	err := Unmarshal([]byte(`{"r":"ab"}`), &out)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
}

func TestScalarKeyConversion(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		var out map[int]string
		if err := Unmarshal([]byte(`{"-3":"neg","7":"pos"}`), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := map[int]string{-3: "neg", 7: "pos"}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("bool", func(t *testing.T) {
		var out map[bool]string
		if err := Unmarshal([]byte(`{"true":"y","false":"n"}`), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := map[bool]string{true: "y", false: "n"}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("rune", func(t *testing.T) {
		var out map[rune]string
		if err := Unmarshal([]byte(`{"a":"letter"}`), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out['a'] != "letter" {
			t.Errorf("got %v, want letter under 'a'", out)
		}
	})
	t.Run("float", func(t *testing.T) {
		var out map[float64]string
		if err := Unmarshal([]byte(`{"1.5":"x"}`), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out[1.5] != "x" {
			t.Errorf("got %v, want x under 1.5", out)
		}
	})
	t.Run("bad int", func(t *testing.T) {
		var out map[int]string
		err := Unmarshal([]byte(`{"seven":"x"}`), &out)
		if err == nil || !strings.Contains(err.Error(), "cannot convert key") {
			t.Errorf("got %v, want key conversion error", err)
		}
	})
}

func TestShapeMismatches(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		dst  func() any
	}{
		{"array into record", `[1,2]`, func() any { return &refItem{} }},
		{"object into slice", `{"a":1}`, func() any { return &[]int{} }},
		{"string into number", `{"v":"x"}`, func() any { return &refItem{} }},
		{"number into record field", `{"a":5}`, func() any { return &refHolder{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.doc), tt.dst())
			var tm *TypeMismatchError
			if !errors.As(err, &tm) {
				t.Fatalf("got %v, want TypeMismatchError", err)
			}
		})
	}
}

func TestFixedArrayLength(t *testing.T) {
	type grid struct {
		Row [2]int `tangle:"row"`
	}
	var out grid
	if err := Unmarshal([]byte(`{"row":[4,5]}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Row != [2]int{4, 5} {
		t.Errorf("got %v, want [4 5]", out.Row)
	}

	err := Unmarshal([]byte(`{"row":[1,2,3]}`), &out)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
}

func TestMaxDepth(t *testing.T) {
	doc := strings.Repeat(`{"a":`, 20) + "1" + strings.Repeat("}", 20)
	var out map[string]any
	err := Unmarshal([]byte(doc), &out, WithMaxDepth(5))
	if err == nil || !strings.Contains(err.Error(), "max depth") {
		t.Errorf("got %v, want max depth error", err)
	}
}

func TestDestinationMustBePointer(t *testing.T) {
	var out refItem
	err := Unmarshal([]byte(`{"v":1}`), out)
	if err == nil || !strings.Contains(err.Error(), "non-nil pointer") {
		t.Errorf("got %v, want pointer requirement error", err)
	}
}

// Ids register one level above their object's contents, so a child can
// reference its not-yet-filled parent.
func TestForwardRefIntoParent(t *testing.T) {
	doc := `{"@id":"root","name":"p","next":{"name":"c","next":"root"}}`
	var out *chainNode
	if err := Unmarshal([]byte(doc), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Next.Next != out {
		t.Errorf("child must point back at parent")
	}
}
