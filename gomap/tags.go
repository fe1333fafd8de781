package gomap

import (
	"strings"
)

// TagKey is the struct tag key read by this package.
//
// The tag names the wire field and may carry options after a comma:
//
//	Name string `tangle:"name"`        // rename
//	ID   string `tangle:"id,id"`       // rename and designate identity field
//	Tmp  int    `tangle:"-"`           // skip
//	Key  string `tangle:",id"`         // keep Go name, designate identity field
const TagKey = "tangle"

// fieldTag is the parsed form of a tangle struct tag.
type fieldTag struct {
	Name string
	Skip bool
	ID   bool
}

func parseFieldTag(raw string) fieldTag {
	if raw == "-" {
		return fieldTag{Skip: true}
	}
	var ft fieldTag
	name, rest, _ := strings.Cut(raw, ",")
	ft.Name = name
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "id" {
			ft.ID = true
		}
	}
	return ft
}
