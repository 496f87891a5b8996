// Package barcodegen renders barcode symbols into ARGB pixel buffers.
//
// An application format code is resolved to a Symbology, the payload is
// inspected for a character-set hint, a registered Encoder produces the
// binary module matrix, and ToPixels paints it with a fixed ink and
// background color. Encoders register themselves on import:
//
//	import (
//		"github.com/ericlevine/barcodegen"
//		_ "github.com/ericlevine/barcodegen/oned"
//	)
//
//	g := barcodegen.NewGenerator()
//	buf := g.Render("0123456789012", barcodegen.FormatEAN13, 400, 120)
package barcodegen

import (
	"strconv"
	"strings"
)

// FormatCode is the application-level barcode format code. The values are
// discrete codes, not flags, and are never combined.
type FormatCode int

const (
	FormatCode128 FormatCode = 1
	FormatCode39  FormatCode = 2
	FormatCode93  FormatCode = 4
	FormatCodabar FormatCode = 8
	FormatEAN13   FormatCode = 32
	FormatEAN8    FormatCode = 64
	FormatITF     FormatCode = 128
	FormatUPCA    FormatCode = 512
	FormatUPCE    FormatCode = 1024
)

var formatCodes = []FormatCode{
	FormatCodabar,
	FormatCode128,
	FormatCode39,
	FormatCode93,
	FormatEAN13,
	FormatEAN8,
	FormatITF,
	FormatUPCA,
	FormatUPCE,
}

// FormatCodes returns every defined format code.
func FormatCodes() []FormatCode {
	out := make([]FormatCode, len(formatCodes))
	copy(out, formatCodes)
	return out
}

// Valid reports whether f is one of the defined format codes.
func (f FormatCode) Valid() bool {
	_, ok := symbologies[f]
	return ok
}

// String returns the name of the format code, or its decimal value if it is
// not defined.
func (f FormatCode) String() string {
	if s, ok := symbologies[f]; ok {
		return s.String()
	}
	return strconv.Itoa(int(f))
}

// ParseFormatCode parses a format code from its name ("EAN_13", "ean13",
// "code-128") or its decimal value. Undefined decimal values are accepted
// as-is; Resolve maps them to the default symbology.
func ParseFormatCode(s string) (FormatCode, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return FormatCode(n), true
	}
	key := normalizeName(s)
	for _, f := range formatCodes {
		if normalizeName(f.String()) == key {
			return f, true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}

// Symbology identifies a barcode encoding standard understood by an Encoder.
type Symbology int

const (
	SymbologyCode128 Symbology = iota
	SymbologyCodabar
	SymbologyCode39
	SymbologyCode93
	SymbologyEAN13
	SymbologyEAN8
	SymbologyITF
	SymbologyUPCA
	SymbologyUPCE
)

// String returns the name of the symbology.
func (s Symbology) String() string {
	switch s {
	case SymbologyCodabar:
		return "CODABAR"
	case SymbologyCode128:
		return "CODE_128"
	case SymbologyCode39:
		return "CODE_39"
	case SymbologyCode93:
		return "CODE_93"
	case SymbologyEAN13:
		return "EAN_13"
	case SymbologyEAN8:
		return "EAN_8"
	case SymbologyITF:
		return "ITF"
	case SymbologyUPCA:
		return "UPC_A"
	case SymbologyUPCE:
		return "UPC_E"
	default:
		return "UNKNOWN"
	}
}

// DefaultSymbology is used for format codes outside the defined set.
const DefaultSymbology = SymbologyCode128

var symbologies = map[FormatCode]Symbology{
	FormatCodabar: SymbologyCodabar,
	FormatCode128: SymbologyCode128,
	FormatCode39:  SymbologyCode39,
	FormatCode93:  SymbologyCode93,
	FormatEAN13:   SymbologyEAN13,
	FormatEAN8:    SymbologyEAN8,
	FormatITF:     SymbologyITF,
	FormatUPCA:    SymbologyUPCA,
	FormatUPCE:    SymbologyUPCE,
}

// Resolve maps a format code to its symbology. Codes outside the defined set
// resolve to DefaultSymbology instead of failing, so a stale code renders the
// wrong symbology rather than nothing. Callers that care must check Valid.
func Resolve(f FormatCode) Symbology {
	if s, ok := symbologies[f]; ok {
		return s
	}
	return DefaultSymbology
}
