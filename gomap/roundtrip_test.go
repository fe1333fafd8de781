package gomap

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type profile struct {
	Name   string            `tangle:"name"`
	Age    int               `tangle:"age"`
	Email  string            `tangle:"email"`
	Labels map[string]string `tangle:"labels"`
	Scores []float64         `tangle:"scores"`
}

func TestRoundTripRecord(t *testing.T) {
	in := profile{
		Name:   "ana",
		Age:    34,
		Email:  "ana@example.com",
		Labels: map[string]string{"team": "core", "role": "admin"},
		Scores: []float64{99.5, 87, 92.25},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out profile
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripNested(t *testing.T) {
	type inner struct {
		K string `tangle:"k"`
	}
	type outer struct {
		Direct  inner            `tangle:"direct"`
		Ptr     *inner           `tangle:"ptr"`
		ByName  map[string]inner `tangle:"by_name"`
		Several []*inner         `tangle:"several"`
	}
	in := outer{
		Direct:  inner{K: "d"},
		Ptr:     &inner{K: "p"},
		ByName:  map[string]inner{"one": {K: "m1"}, "two": {K: "m2"}},
		Several: []*inner{{K: "s0"}, {K: "s1"}},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out outer
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripSet(t *testing.T) {
	type point struct {
		X int `tangle:"x"`
		Y int `tangle:"y"`
	}
	in := map[point]struct{}{
		{X: 2, Y: 1}: {},
		{X: 1, Y: 9}: {},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[point]struct{}
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripTime(t *testing.T) {
	type event struct {
		At   time.Time `tangle:"at"`
		Note string    `tangle:"note"`
	}
	in := event{
		At:   time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC),
		Note: "deploy",
	}
	data, err := Marshal(in, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"2024-03-05T12:30:00Z"`) {
		t.Errorf("time not rendered as text: %s", data)
	}
	var out event
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.At.Equal(in.At) {
		t.Errorf("got %v, want %v", out.At, in.At)
	}
}

func TestRoundTripAny(t *testing.T) {
	in := map[string]any{
		"n":    int64(7),
		"f":    1.5,
		"s":    "str",
		"b":    true,
		"list": []any{int64(1), "two"},
		"obj":  map[string]any{"k": "v"},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripScalarRoot(t *testing.T) {
	data, err := Marshal(42)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out int
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != 42 {
		t.Errorf("got %d, want 42", out)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	in := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}
	first, err := Marshal(in, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"alpha":2,"mid":3,"zeta":1}`
	if got := strings.TrimSpace(string(first)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	for i := 0; i < 20; i++ {
		again, err := Marshal(in, WithIndent(0))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("output changed between runs:\n%s\n%s", first, again)
		}
	}
}

func TestMapNumericKeyOrder(t *testing.T) {
	in := map[int]string{10: "ten", 2: "two", -1: "neg"}
	data, err := Marshal(in, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"-1":"neg","2":"two","10":"ten"}`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	var out map[int]string
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSetElementOrder(t *testing.T) {
	in := map[int]struct{}{5: {}, 1: {}, 3: {}}
	data, err := Marshal(in, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[1,3,5]`
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNullFieldOmitted(t *testing.T) {
	type linked struct {
		Name string  `tangle:"name"`
		Next *linked `tangle:"next"`
	}
	data, err := Marshal(linked{Name: "solo"}, WithIndent(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "next") {
		t.Errorf("nil field must be omitted: %s", data)
	}

	var out linked
	if err := Unmarshal([]byte(`{"name":"x","next":null}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Next != nil {
		t.Errorf("null must leave the field unset")
	}
}

func TestMarshalIndentFormat(t *testing.T) {
	type rec struct {
		Name string `tangle:"name"`
		Age  int    `tangle:"age"`
	}
	data, err := Marshal(rec{Name: "ana", Age: 34})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{
  "name": "ana",
  "age": 34
}
`
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}
