package barcodegen

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/panics"

	"github.com/ericlevine/barcodegen/bitutil"
)

// Result is the outcome of a render: Pixels is non-nil exactly when Err is
// nil. Err wraps ErrEmptyPayload, ErrIncompatible or ErrEncoderInternal.
type Result struct {
	Pixels *PixelBuffer
	Err    error
}

// OK reports whether the render produced a buffer.
func (r Result) OK() bool { return r.Err == nil && r.Pixels != nil }

// Generator renders payloads with a fixed pair of colors. It holds no
// mutable state and is safe for concurrent use.
type Generator struct {
	colors  ColorPair
	encoder Encoder
	logger  *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithColors sets both colors.
func WithColors(c ColorPair) Option {
	return func(g *Generator) { g.colors = c }
}

// WithInk sets the color of set modules.
func WithInk(c Color) Option {
	return func(g *Generator) { g.colors.Ink = c }
}

// WithBackground sets the color of unset modules.
func WithBackground(c Color) Option {
	return func(g *Generator) { g.colors.Background = c }
}

// WithEncoder replaces the registry-backed MultiFormatEncoder.
func WithEncoder(e Encoder) Option {
	return func(g *Generator) { g.encoder = e }
}

// WithLogger sets the logger that receives render failures at debug level.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a Generator painting black on white unless
// configured otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		colors:  DefaultColors(),
		encoder: NewMultiFormatEncoder(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return g
}

// Colors returns the generator's colors.
func (g *Generator) Colors() ColorPair { return g.colors }

// Render renders payload and returns nil on any failure.
func (g *Generator) Render(payload string, code FormatCode, width, height int) *PixelBuffer {
	return g.Generate(payload, code, width, height).Pixels
}

// Generate renders payload as the symbology resolved from code, asking the
// encoder for a width x height symbol. Failures are reported in the Result,
// never retried, and leave the generator usable.
func (g *Generator) Generate(payload string, code FormatCode, width, height int) Result {
	if payload == "" {
		return g.fail(code, ErrEmptyPayload)
	}
	sym := Resolve(code)
	opts := SelectHints(payload)

	m, err := g.encode(payload, sym, width, height, opts)
	if err != nil {
		return g.fail(code, err)
	}
	return Result{Pixels: ToPixels(m, g.colors.Ink, g.colors.Background)}
}

func (g *Generator) encode(payload string, sym Symbology, width, height int, opts *EncodeOptions) (m *bitutil.BitMatrix, err error) {
	var pc panics.Catcher
	pc.Try(func() {
		m, err = g.encoder.Encode(payload, sym, width, height, opts)
	})
	if r := pc.Recovered(); r != nil {
		return nil, fmt.Errorf("%w: encoding %s panicked: %v", ErrEncoderInternal, sym, r.Value)
	}
	switch {
	case err != nil && errors.Is(err, ErrIncompatible):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrEncoderInternal, err)
	case m == nil:
		return nil, fmt.Errorf("%w: %s encoder returned no matrix", ErrEncoderInternal, sym)
	}
	return m, nil
}

func (g *Generator) fail(code FormatCode, err error) Result {
	g.logger.Debug("barcode render failed", "format", code, "err", err)
	return Result{Err: err}
}
