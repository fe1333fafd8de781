// Package encode encodes IR nodes to tangle text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("alice")},
//	    {Key: ir.FromString("age"), Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Compact output
//	err = encode.Encode(node, os.Stdout, encode.WithIndent(0))
//
//	// With colors on a terminal
//	err = encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// Objects carrying an identity tag emit it as the first key; references
// emit as the quoted tag text. Field order is emitted exactly as the
// node holds it.
//
// # Related Packages
//
//   - github.com/tangle-format/go-tangle/ir - IR representation
//   - github.com/tangle-format/go-tangle/parse - Parse text to IR
package encode
