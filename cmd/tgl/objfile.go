package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/parse"

	"github.com/scott-cotton/cli"
)

var docSep = []byte("\n---\n")

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// splitDocs cuts a stream into its "---" separated documents.
func splitDocs(in []byte) [][]byte {
	return bytes.Split(in, docSep)
}

var errFoundID = errors.New("identity tag present")

// hasIdentity reports whether any object in the tree carries an "@id"
// tag. Such documents have no faithful projection into formats without
// reference semantics.
func hasIdentity(n *ir.Node) bool {
	err := n.Visit(func(nd *ir.Node, isPost bool) (bool, error) {
		if !isPost && nd.ID != "" {
			return false, errFoundID
		}
		return true, nil
	})
	return errors.Is(err, errFoundID)
}
