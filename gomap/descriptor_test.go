package gomap

import (
	"reflect"
	"strings"
	"testing"
)

func mustType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

type stamp struct {
	Code string `tangle:"code"`
	Note string `tangle:"note"`
}

func TestEmbeddedFieldsPromoted(t *testing.T) {
	type letter struct {
		stamp
		Body string `tangle:"body"`
	}
	data, err := Marshal(letter{stamp: stamp{Code: "c1", Note: "n"}, Body: "hi"}, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"code":"c1","note":"n","body":"hi"}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var out letter
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Code != "c1" || out.Note != "n" || out.Body != "hi" {
		t.Errorf("got %+v", out)
	}
}

func TestOuterFieldShadowsEmbedded(t *testing.T) {
	type letter struct {
		stamp
		Note string `tangle:"note"`
	}
	data, err := Marshal(letter{stamp: stamp{Note: "inner"}, Note: "outer"}, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := strings.TrimSpace(string(data))
	if strings.Contains(got, "inner") {
		t.Errorf("embedded field leaked through shadow: %s", got)
	}
	if !strings.Contains(got, `"note":"outer"`) {
		t.Errorf("got %s", got)
	}

	var out letter
	if err := Unmarshal([]byte(`{"note":"x"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Note != "x" || out.stamp.Note != "" {
		t.Errorf("got %+v", out)
	}
}

func TestDuplicateFieldNames(t *testing.T) {
	type clash struct {
		A int `tangle:"x"`
		B int `tangle:"x"`
	}
	_, err := Marshal(clash{})
	if err == nil || !strings.Contains(err.Error(), "duplicate field name") {
		t.Errorf("got %v, want duplicate name error", err)
	}
}

func TestMultipleIdentityFields(t *testing.T) {
	type twoIDs struct {
		A string `tangle:"a,id"`
		B string `tangle:"b,id"`
	}
	_, err := Marshal(twoIDs{})
	if err == nil || !strings.Contains(err.Error(), "multiple identity fields") {
		t.Errorf("got %v, want identity conflict error", err)
	}
}

func TestEmbeddedPointerAllocated(t *testing.T) {
	type letter struct {
		*stamp
		Body string `tangle:"body"`
	}
	var out letter
	if err := Unmarshal([]byte(`{"note":"n","body":"hi"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.stamp == nil || out.stamp.Note != "n" || out.Body != "hi" {
		t.Errorf("got %+v", out)
	}

	// a nil embedded pointer leaves its promoted fields out entirely
	data, err := Marshal(letter{Body: "solo"}, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"body":"solo"}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSetTypeDetection(t *testing.T) {
	if !isSetType(mustType[map[string]struct{}]()) {
		t.Error("map[string]struct{} is a set")
	}
	if !isSetType(mustType[map[int]struct{}]()) {
		t.Error("map[int]struct{} is a set")
	}
	if isSetType(mustType[map[string]int]()) {
		t.Error("map[string]int is not a set")
	}
	if isSetType(mustType[[]struct{}]()) {
		t.Error("slices are not sets")
	}
}
