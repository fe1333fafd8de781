// Package parse parses tangle text into IR nodes.
//
// # Usage
//
//	// Parse tangle text
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse from string
//	node, err := parse.ParseString(`[1, 2, 3]`)
//
// The grammar is strict JSON. When an object's first key is the reserved
// identity key "@id" with a string value, the pair is lifted into the
// node's ID field; in any other position "@id" is ordinary data.
//
// # Related Packages
//
//   - github.com/tangle-format/go-tangle/ir - IR representation
//   - github.com/tangle-format/go-tangle/encode - Encode IR to text
//   - github.com/tangle-format/go-tangle/token - Tokenization
package parse
