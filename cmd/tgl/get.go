package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/tangle-format/go-tangle/encode"
	"github.com/tangle-format/go-tangle/gomap"
	"github.com/tangle-format/go-tangle/ir"
	"github.com/tangle-format/go-tangle/parse"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an expression", cli.ErrUsage)
	}
	src := args[0]
	if src == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("%w: invalid query %q: %v", cli.ErrUsage, src, err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		if err := queryArg(cfg, cc.Out, arg, program, i > 0); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, src, err)
		}
	}
	return nil
}

func queryArg(cfg *GetConfig, w io.Writer, arg string, program *vm.Program, sep bool) error {
	var targetReader io.Reader
	if arg == "-" {
		targetReader = os.Stdin
	} else {
		targetFile, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer targetFile.Close()
		targetReader = targetFile
	}
	rd, err := io.ReadAll(targetReader)
	if err != nil {
		return err
	}
	target, err := parse.Parse(rd)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", arg, err)
	}
	env, err := queryEnv(cfg, target)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", arg, err)
	}
	res, err := expr.Run(program, env)
	if err != nil {
		return fmt.Errorf("error evaluating query on %s: %w", arg, err)
	}
	if res == nil {
		// nothing found, nothing to say
		return nil
	}
	node, err := gomap.ToIR(res)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if sep {
		if _, err := w.Write([]byte("---\n")); err != nil {
			return err
		}
	}
	if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// queryEnv builds the expression environment for one document. Object
// documents expose their fields directly; everything else binds to
// "value". With -type the document decodes through the registry first.
func queryEnv(cfg *GetConfig, target *ir.Node) (any, error) {
	if cfg.Type != "" {
		t, err := gomap.DefaultTypes.Lookup(cfg.Type)
		if err != nil {
			return nil, fmt.Errorf("-type: %w", err)
		}
		p := reflect.New(t)
		if err := gomap.FromIR(target, p.Interface()); err != nil {
			return nil, err
		}
		return p.Elem().Interface(), nil
	}
	var v any
	if err := gomap.FromIR(target, &v); err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"value": v}, nil
}
