// Package gomap maps Go object graphs to tangle documents and back.
//
// # Overview
//
// Marshal walks a Go value with reflection and renders it as document
// text; Unmarshal parses document text and rebuilds the value. Unlike
// encoding/json, gomap preserves object identity: a value reachable
// through two paths stays one value, and cyclic graphs round-trip. The
// first time a shared object must be referenced it receives an identity
// tag, and later occurrences render as bare references to that tag.
//
//	type Node struct {
//	    Name string
//	    Next *Node
//	}
//	n := &Node{Name: "a"}
//	n.Next = n
//	data, _ := gomap.Marshal(n)
//	// {"@id": "1", "Name": "a", "Next": "1"}
//
// # Value Mapping
//
// Scalars map to their document forms. Structs and maps map to objects;
// a struct reached through a pointer carries identity and can be
// referenced. Slices and arrays map to arrays. A map with empty struct
// elements (map[T]struct{}) is a set and maps to an array of its
// elements in a deterministic order; map entries are likewise emitted
// in key order, so equal values always render identical documents.
//
// Fields rename and opt out with struct tags, and one field may be
// designated the identity field, whose value is preferred over a
// generated tag:
//
//	type User struct {
//	    Login string `tangle:"login,id"`
//	    Name  string `tangle:"name"`
//	    Aux   int    `tangle:"-"`
//	}
//
// Enums registered with RegisterEnum render as their names. Types
// implementing encoding.TextMarshaler and encoding.TextUnmarshaler
// render as strings. Fields of type reflect.Type render as registered
// type names.
//
// # Interfaces and Type Names
//
// Values landing on interface destinations need a registered concrete
// type, bound with BindInterface. Type names on the wire resolve
// through a Types registry, which also accepts composed expressions
// ("[]pkg.T", "map[string]*pkg.T") and parameterized aliases
// ("table[V]" for "map[string]V").
//
// # Deserialization Order
//
// Unmarshal registers each object's identity one level before the
// object's contents are filled, so a reference and its target at the
// same level resolve in either declaration order. Set elements are
// fully built first and inserted only after the whole graph is
// populated, so their hashes are computed on final contents.
//
// # Errors
//
// Failures are fail-fast and typed: TypeMismatchError for shape
// conflicts, UnresolvedReferenceError for dangling references,
// UnsupportedCycleError for cycles through slices or sets,
// ConstructionError for uninstantiable destinations, and
// MarshalError/UnmarshalError for everything else. All carry the field
// path of the failure.
//
// # Related Packages
//
//   - github.com/tangle-format/go-tangle/ir - The document tree gomap builds and consumes
//   - github.com/tangle-format/go-tangle/parse - Parses text into IR nodes
//   - github.com/tangle-format/go-tangle/encode - Encodes IR nodes to text
package gomap
