// Package ir provides the intermediate representation (IR) for tangle
// documents.
//
// # Overview
//
// The IR package defines the core data structures for representing tangle
// documents as a tree of nodes. All documents (whether parsed from text or
// built from Go values) are represented as ir.Node trees. The IR contains
// no position information from input documents, making it purely semantic.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64, or string fallback)
//   - StringType: string value
//   - RefType: back-reference to an object elsewhere in the document
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("key"), Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// # Identity and References
//
// An object node may carry an identity tag in its ID field. A RefType node
// points back at such an object via Target and renders as the tag text.
// Array nodes never carry an identity tag, so a reference can only resolve
// to an object.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if the value is a 64-bit signed integer
//   - Float64: if the value is a 64-bit IEEE float
//   - Number: as a string fallback when neither field can represent it
//
// # Comparison and Hashing
//
// Compare defines a total order over nodes, used for deterministic ordering
// of map keys and set elements:
//
//	equal := ir.Compare(a, b) == 0
//
// Hash produces a 64-bit content hash, stable within one process.
//
// # Thread Safety
//
// Node structures are not thread-safe. Clone nodes or synchronize access
// when sharing between goroutines.
//
// # Related Packages
//
//   - github.com/tangle-format/go-tangle/parse - Parses text into IR nodes
//   - github.com/tangle-format/go-tangle/encode - Encodes IR nodes to text
//   - github.com/tangle-format/go-tangle/gomap - Converts Go values to/from IR
package ir
