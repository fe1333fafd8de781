package gomap

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type widget struct {
	N int `tangle:"n"`
}

type gadget struct {
	S string `tangle:"s"`
}

func TestRegisterAndLookup(t *testing.T) {
	ts := NewTypes()
	ts.Register(widget{})

	got, err := ts.Lookup("gomap.widget")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != reflect.TypeOf(widget{}) {
		t.Errorf("got %s", got)
	}
	if name := ts.NameOf(reflect.TypeOf(widget{})); name != "gomap.widget" {
		t.Errorf("got name %q", name)
	}
	// unregistered types fall back to their reflect string
	if name := ts.NameOf(reflect.TypeOf(gadget{})); name != "gomap.gadget" {
		t.Errorf("got name %q", name)
	}
}

func TestRegisterName(t *testing.T) {
	ts := NewTypes()
	ts.RegisterName("widget", widget{})

	got, err := ts.Lookup("widget")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != reflect.TypeOf(widget{}) {
		t.Errorf("got %s", got)
	}
	if name := ts.NameOf(reflect.TypeOf(widget{})); name != "widget" {
		t.Errorf("got name %q", name)
	}

	// identical re-registration is a no-op
	ts.RegisterName("widget", widget{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for conflicting registration")
		}
	}()
	ts.RegisterName("widget", gadget{})
}

type shade int

func TestEnumRoundTrip(t *testing.T) {
	ts := NewTypes()
	ts.RegisterEnum(shade(0), "light", "mid", "dark")

	type wall struct {
		Tone shade `tangle:"tone"`
	}
	data, err := Marshal(wall{Tone: 2}, WithTypes(ts), WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"tone":"dark"}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var out wall
	if err := Unmarshal(data, &out, WithTypes(ts)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Tone != 2 {
		t.Errorf("got %d, want 2", out.Tone)
	}

	err = Unmarshal([]byte(`{"tone":"max"}`), &out, WithTypes(ts))
	if err == nil || !strings.Contains(err.Error(), `"max"`) {
		t.Errorf("got %v, want unknown name error", err)
	}

	_, err = Marshal(wall{Tone: 9}, WithTypes(ts))
	if err == nil || !strings.Contains(err.Error(), "no registered name") {
		t.Errorf("got %v, want unnamed value error", err)
	}
}

type quantity interface {
	Amount() float64
}

type liters struct {
	L float64 `tangle:"l"`
}

func (v liters) Amount() float64 { return v.L }

func TestBindInterface(t *testing.T) {
	ts := NewTypes()
	ts.BindInterface((*quantity)(nil), liters{})

	type tank struct {
		Fill quantity `tangle:"fill"`
	}
	data, err := Marshal(tank{Fill: liters{L: 40}}, WithTypes(ts), WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"fill":{"l":40}}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var out tank
	if err := Unmarshal(data, &out, WithTypes(ts)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := out.Fill.(liters)
	if !ok {
		t.Fatalf("got %T, want liters", out.Fill)
	}
	if v.L != 40 {
		t.Errorf("got %v, want 40", v.L)
	}
}

func TestUnboundInterface(t *testing.T) {
	type tank struct {
		Fill quantity `tangle:"fill"`
	}
	var out tank
	err := Unmarshal([]byte(`{"fill":{"l":1}}`), &out, WithTypes(NewTypes()))
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConstructionError", err)
	}
}

func TestBindInterfaceMisuse(t *testing.T) {
	ts := NewTypes()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-implementing concrete type")
		}
	}()
	ts.BindInterface((*quantity)(nil), widget{})
}

func TestTypeValuedField(t *testing.T) {
	type schema struct {
		Elem reflect.Type `tangle:"elem"`
	}
	data, err := Marshal(schema{Elem: reflect.TypeOf(map[string][]int(nil))}, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"elem":"map[string][]int"}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var out schema
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Elem != reflect.TypeOf(map[string][]int(nil)) {
		t.Errorf("got %s", out.Elem)
	}
}

func TestRegisterEnumMisuse(t *testing.T) {
	ts := NewTypes()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-integer enum type")
		}
	}()
	ts.RegisterEnum("not an int", "a")
}
