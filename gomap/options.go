package gomap

import (
	"github.com/tangle-format/go-tangle/encode"
	"github.com/tangle-format/go-tangle/parse"
)

const defaultMaxDepth = 10000

// MapOption configures Marshal, MarshalField, and ToIR.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption configures Unmarshal, UnmarshalField, and FromIR.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// Option configures both directions.
type Option interface {
	MapOption
	UnmapOption
}

type mapConfig struct {
	types    *Types
	maxDepth int
	indent   int
	colors   *encode.Colors
	encOpts  []encode.EncodeOption
}

type unmapConfig struct {
	types     *Types
	maxDepth  int
	parseOpts []parse.ParseOption
}

func newMapConfig(opts []MapOption) *mapConfig {
	c := &mapConfig{
		types:    DefaultTypes,
		maxDepth: defaultMaxDepth,
		indent:   2,
	}
	for _, o := range opts {
		o.applyMap(c)
	}
	return c
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	c := &unmapConfig{
		types:    DefaultTypes,
		maxDepth: defaultMaxDepth,
	}
	for _, o := range opts {
		o.applyUnmap(c)
	}
	return c
}

func (c *mapConfig) encodeOptions() []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.WithIndent(c.indent)}
	if c.colors != nil {
		opts = append(opts, encode.EncodeColors(c.colors))
	}
	return append(opts, c.encOpts...)
}

type typesOption struct {
	types *Types
}

func (o typesOption) applyMap(c *mapConfig)     { c.types = o.types }
func (o typesOption) applyUnmap(c *unmapConfig) { c.types = o.types }

// WithTypes selects the registry consulted for names, enums, interface
// bindings, and aliases. The default is DefaultTypes.
func WithTypes(ts *Types) Option {
	return typesOption{types: ts}
}

type maxDepthOption int

func (o maxDepthOption) applyMap(c *mapConfig)     { c.maxDepth = int(o) }
func (o maxDepthOption) applyUnmap(c *unmapConfig) { c.maxDepth = int(o) }

// WithMaxDepth bounds the nesting depth processed in either direction.
func WithMaxDepth(n int) Option {
	return maxDepthOption(n)
}

type indentOption int

func (o indentOption) applyMap(c *mapConfig) { c.indent = int(o) }

// WithIndent sets the output indent width for Marshal. 0 produces
// compact output.
func WithIndent(n int) MapOption {
	return indentOption(n)
}

type colorsOption struct {
	colors *encode.Colors
}

func (o colorsOption) applyMap(c *mapConfig) { c.colors = o.colors }

// WithColors colorizes Marshal output.
func WithColors(colors *encode.Colors) MapOption {
	return colorsOption{colors: colors}
}

type encOptsOption []encode.EncodeOption

func (o encOptsOption) applyMap(c *mapConfig) {
	c.encOpts = append(c.encOpts, o...)
}

// WithEncodeOptions passes options through to the encoder.
func WithEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encOptsOption(opts)
}

type parseOptsOption []parse.ParseOption

func (o parseOptsOption) applyUnmap(c *unmapConfig) {
	c.parseOpts = append(c.parseOpts, o...)
}

// WithParseOptions passes options through to the parser.
func WithParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptsOption(opts)
}
