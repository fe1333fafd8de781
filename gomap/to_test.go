package gomap

import (
	"math"
	"strings"
	"testing"
)

func TestNonFiniteFloats(t *testing.T) {
	tests := []struct {
		name string
		v    float64
	}{
		{"nan", math.NaN()},
		{"+inf", math.Inf(1)},
		{"-inf", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(struct {
				F float64 `tangle:"f"`
			}{F: tt.v})
			if err == nil {
				t.Fatal("expected error for non-finite float")
			}
			if !strings.Contains(err.Error(), "no document representation") {
				t.Errorf("got %q", err.Error())
			}
		})
	}
}

func TestNonScalarMapKey(t *testing.T) {
	m := map[[2]int]string{{1, 2}: "x"}
	_, err := Marshal(m)
	if err == nil || !strings.Contains(err.Error(), "not scalar") {
		t.Errorf("got %v, want non-scalar key error", err)
	}
}

func TestSkippedAndRenamedFields(t *testing.T) {
	type rec struct {
		Kept    int    `tangle:"kept"`
		Skipped string `tangle:"-"`
		Plain   int
	}
	out, err := Marshal(rec{Kept: 1, Skipped: "secret", Plain: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(out)
	if strings.Contains(got, "secret") || strings.Contains(got, "Skipped") {
		t.Errorf("skipped field leaked: %s", got)
	}
	want := `{"kept":1,"Plain":2}` + "\n"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUnexportedFieldsInvisible(t *testing.T) {
	type rec struct {
		Pub  int `tangle:"pub"`
		priv int
	}
	out, err := Marshal(rec{Pub: 1, priv: 9})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"pub":1}` + "\n"
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestNilPointerField(t *testing.T) {
	type rec struct {
		Next *rec `tangle:"next"`
		N    int  `tangle:"n"`
	}
	out, err := Marshal(rec{N: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"n":1}` + "\n"
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestEmptyContainers(t *testing.T) {
	type rec struct {
		S []int          `tangle:"s"`
		M map[string]int `tangle:"m"`
	}
	out, err := Marshal(rec{S: []int{}, M: map[string]int{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"s":[],"m":{}}` + "\n"
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestNilSliceRendersEmpty(t *testing.T) {
	type rec struct {
		S []int `tangle:"s"`
	}
	out, err := Marshal(rec{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"s":[]}` + "\n"
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestMarshalMaxDepth(t *testing.T) {
	type box struct {
		Inner any `tangle:"inner"`
	}
	v := any("leaf")
	for i := 0; i < 20; i++ {
		v = box{Inner: v}
	}
	_, err := Marshal(v, WithMaxDepth(5))
	if err == nil || !strings.Contains(err.Error(), "max depth") {
		t.Errorf("got %v, want max depth error", err)
	}
}
