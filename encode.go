package barcodegen

import (
	"fmt"
	"sync"

	"github.com/ericlevine/barcodegen/bitutil"
)

// Encoder turns a payload into a binary module matrix for one or more
// symbologies. Width and height are the requested size in pixels; encoders
// may return a larger matrix when the symbol does not fit. Errors caused by
// the input must wrap ErrIncompatible.
type Encoder interface {
	Encode(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)

// Encode calls f.
func (f EncoderFunc) Encode(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	return f(contents, sym, width, height, opts)
}

var (
	encodersMu sync.RWMutex
	encoders   = map[Symbology]Encoder{}
)

// RegisterEncoder registers the encoder used for sym by MultiFormatEncoder.
// A later registration replaces an earlier one.
func RegisterEncoder(sym Symbology, e Encoder) {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	encoders[sym] = e
}

// RegisteredSymbologies returns the symbologies that currently have an
// encoder registered.
func RegisteredSymbologies() []Symbology {
	encodersMu.RLock()
	defer encodersMu.RUnlock()
	var out []Symbology
	for _, f := range formatCodes {
		if _, ok := encoders[Resolve(f)]; ok {
			out = append(out, Resolve(f))
		}
	}
	return out
}

// MultiFormatEncoder dispatches to the encoder registered for the requested
// symbology.
type MultiFormatEncoder struct{}

// NewMultiFormatEncoder creates a new multi-format encoder.
func NewMultiFormatEncoder() *MultiFormatEncoder {
	return &MultiFormatEncoder{}
}

// Encode encodes contents with the encoder registered for sym.
func (m *MultiFormatEncoder) Encode(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	encodersMu.RLock()
	e, ok := encoders[sym]
	encodersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no encoder registered for %s: %w", sym, ErrIncompatible)
	}
	return e.Encode(contents, sym, width, height, opts)
}

// Encode is a convenience function that encodes contents with the
// registered encoders.
func Encode(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	return NewMultiFormatEncoder().Encode(contents, sym, width, height, opts)
}
