package main

import (
	"io"
	"time"

	"github.com/tangle-format/go-tangle/encode"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Wire   bool `cli:"name=w aliases=wire desc='compact single-line output'"`
	Indent int  `cli:"name=indent desc='indent width for pretty output'"`
	Color  bool `cli:"name=color desc='encode with color'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// encOpts builds the encoder options for one output writer. An explicit
// -color wins; otherwise color turns on when the writer is a terminal.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	indent := cfg.Indent
	if cfg.Wire {
		indent = 0
	}
	res := []encode.EncodeOption{
		encode.WithIndent(indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if c := encode.ColorsForWriter(w); c != nil {
		res = append(res, encode.EncodeColors(c))
	}
	return res
}

// plainOpts is encOpts without color, for output meant to be reparsed.
func (cfg *MainConfig) plainOpts() []encode.EncodeOption {
	indent := cfg.Indent
	if cfg.Wire {
		indent = 0
	}
	return []encode.EncodeOption{encode.WithIndent(indent)}
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	From string `cli:"name=from desc='input form: tangle, json, yaml (default by extension)'"`
	To   string `cli:"name=to desc='output form: tangle, json, yaml'"`

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Loop      string `cli:"name=loop desc='command producing documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type GetConfig struct {
	*MainConfig

	Type string `cli:"name=type desc='decode through a type expression instead of plain maps'"`

	Get *cli.Command
}

type PatchConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type VersionConfig struct {
	*MainConfig

	Version *cli.Command
}
