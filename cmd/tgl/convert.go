package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangle-format/go-tangle/encode"
	"github.com/tangle-format/go-tangle/gomap"
	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

type form int

const (
	formTangle form = iota
	formJSON
	formYAML
)

func parseForm(s string) (form, error) {
	switch strings.ToLower(s) {
	case "", "tangle", "t":
		return formTangle, nil
	case "json", "j":
		return formJSON, nil
	case "yaml", "yml", "y":
		return formYAML, nil
	}
	return 0, fmt.Errorf("unknown form %q, want tangle, json, or yaml", s)
}

// formOfFile sniffs the input form from a file extension; stdin and
// unknown extensions read as tangle, which also covers json.
func formOfFile(file string) form {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return formYAML
	case ".json":
		return formJSON
	}
	return formTangle
}

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	to, err := parseForm(cfg.To)
	if err != nil {
		return fmt.Errorf("%w: -to: %v", cli.ErrUsage, err)
	}
	if len(args) == 0 {
		from := formTangle
		if cfg.From != "" {
			if from, err = parseForm(cfg.From); err != nil {
				return fmt.Errorf("%w: -from: %v", cli.ErrUsage, err)
			}
		}
		return convertReader(cfg, cc.Out, cc.In, from, to)
	}
	for i, file := range args {
		if err := convertFile(cfg, cc.Out, file, to); err != nil {
			return err
		}
		if i < len(args)-1 {
			if _, err := cc.Out.Write(docSep); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertFile(cfg *ConvertConfig, w io.Writer, file string, to form) error {
	from := formOfFile(file)
	if cfg.From != "" {
		var err error
		if from, err = parseForm(cfg.From); err != nil {
			return fmt.Errorf("%w: -from: %v", cli.ErrUsage, err)
		}
	}
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	if err := convertReader(cfg, w, f, from, to); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func convertReader(cfg *ConvertConfig, w io.Writer, r io.Reader, from, to form) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	docs := splitDocs(in)
	n := len(docs)
	for i, doc := range docs {
		node, err := readDoc(doc, from)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if err := writeDoc(cfg, w, node, to); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if i < n-1 {
			if _, err := w.Write(docSep); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}

func readDoc(doc []byte, from form) (*ir.Node, error) {
	switch from {
	case formYAML:
		var v any
		if err := yaml.Unmarshal(doc, &v); err != nil {
			return nil, err
		}
		return gomap.ToIR(v)
	default:
		// tangle and json share one reader
		return parse.Parse(doc)
	}
}

func writeDoc(cfg *ConvertConfig, w io.Writer, node *ir.Node, to form) error {
	switch to {
	case formYAML:
		if hasIdentity(node) {
			return fmt.Errorf("document carries %q references, which yaml cannot express", ir.IDKey)
		}
		var v any
		if err := gomap.FromIR(node, &v); err != nil {
			return err
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case formJSON:
		// tangle text is json; render without color so tools can read it
		return encode.Encode(node, w, cfg.plainOpts()...)
	default:
		return encode.Encode(node, w, cfg.encOpts(w)...)
	}
}
