package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tangle-format/go-tangle/encode"
	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a patch and a file to apply it to", cli.ErrUsage)
	}
	patchNode, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	target, err := getObjFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	res, err := applyPatch(target, patchNode)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// applyPatch applies an RFC 6902 operation array through the json
// projection. Identity references have no json form, so documents
// using them do not patch.
func applyPatch(target, patchNode *ir.Node) (*ir.Node, error) {
	if hasIdentity(target) {
		return nil, fmt.Errorf("document carries %q references and cannot be patched through its json projection", ir.IDKey)
	}
	if patchNode.Type != ir.ArrayType {
		return nil, fmt.Errorf("patch must be an array of operations, got %s", patchNode.Type)
	}
	patchJSON, err := encode.Bytes(patchNode, encode.WithIndent(0))
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	targetJSON, err := encode.Bytes(target, encode.WithIndent(0))
	if err != nil {
		return nil, err
	}
	resJSON, err := p.Apply(targetJSON)
	if err != nil {
		return nil, err
	}
	return parse.Parse(resJSON)
}

func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (*ir.Node, error) {
	res, err := getish(cfg.String, cfg.File, cc, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return res, nil
}

// getish reads an argument that may be literal text or a file path,
// depending on the -s and -f flags. Without either, the argument is
// taken as literal text.
func getish(s, f bool, cc *cli.Context, arg string) (*ir.Node, error) {
	if s && f {
		return nil, fmt.Errorf("only one of -s, -f may be specified")
	}
	var r io.Reader
	switch {
	case f:
		if arg == "-" {
			r = os.Stdin
			break
		}
		file, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer file.Close()
		r = file
	default:
		r = strings.NewReader(arg)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading patch: %w", err)
	}
	res, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	return res, nil
}
