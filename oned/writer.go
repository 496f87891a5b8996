// Package oned provides the default encoders for the one-dimensional
// symbologies. Importing it registers a Writer for each of them:
//
//	import _ "github.com/ericlevine/barcodegen/oned"
//
// Bar patterns come from github.com/boombuler/barcode, except UPC-E which is
// built here on the same bit list type.
package oned

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"

	"github.com/ericlevine/barcodegen"
	"github.com/ericlevine/barcodegen/bitutil"
	"github.com/ericlevine/barcodegen/charset"
)

// Writer encodes every one-dimensional symbology.
type Writer struct{}

// NewWriter creates a new one-dimensional writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode encodes contents as sym and lays the bars out in a matrix of at
// least width x height modules.
func (w *Writer) Encode(contents string, sym barcodegen.Symbology, width, height int, opts *barcodegen.EncodeOptions) (*bitutil.BitMatrix, error) {
	if contents == "" {
		return nil, fmt.Errorf("found empty contents: %w", barcodegen.ErrIncompatible)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative size is not allowed, got %dx%d: %w", width, height, barcodegen.ErrIncompatible)
	}
	if opts != nil && opts.CharacterSet != "" {
		if err := charset.CheckEncodable(contents, opts.CharacterSet); err != nil {
			return nil, fmt.Errorf("%s: %v: %w", sym, err, barcodegen.ErrIncompatible)
		}
	}
	code, err := Bars(contents, sym)
	if err != nil {
		return nil, err
	}
	return RenderOneDCode(code, width, height), nil
}

// Bars returns the bar pattern of contents encoded as sym, true for a dark
// module, without quiet zones.
func Bars(contents string, sym barcodegen.Symbology) ([]bool, error) {
	bc, err := encodeSymbol(contents, sym)
	if err != nil {
		return nil, fmt.Errorf("can not encode %q as %s: %v: %w", contents, sym, err, barcodegen.ErrIncompatible)
	}
	b := bc.Bounds()
	code := make([]bool, b.Dx())
	for x := range code {
		code[x] = isDark(bc.At(b.Min.X+x, b.Min.Y))
	}
	return code, nil
}

func encodeSymbol(contents string, sym barcodegen.Symbology) (barcode.Barcode, error) {
	switch sym {
	case barcodegen.SymbologyCodabar:
		guarded, err := codabarGuards(contents)
		if err != nil {
			return nil, err
		}
		return codabar.Encode(guarded)
	case barcodegen.SymbologyCode128:
		return code128.Encode(contents)
	case barcodegen.SymbologyCode39:
		return code39.Encode(contents, false, !isBasicCode39(contents))
	case barcodegen.SymbologyCode93:
		return code93.Encode(contents, true, true)
	case barcodegen.SymbologyEAN13:
		if err := checkDigits(contents, 12, 13); err != nil {
			return nil, err
		}
		return ean.Encode(contents)
	case barcodegen.SymbologyEAN8:
		if err := checkDigits(contents, 7, 8); err != nil {
			return nil, err
		}
		return ean.Encode(contents)
	case barcodegen.SymbologyUPCA:
		if err := checkDigits(contents, 11, 12); err != nil {
			return nil, err
		}
		// UPC-A is EAN-13 with a leading zero.
		return ean.Encode("0" + contents)
	case barcodegen.SymbologyUPCE:
		return encodeUPCE(contents)
	case barcodegen.SymbologyITF:
		if err := checkNumeric(contents); err != nil {
			return nil, err
		}
		if len(contents)%2 != 0 {
			return nil, fmt.Errorf("the length of the input should be even, got %d", len(contents))
		}
		if len(contents) > 80 {
			return nil, fmt.Errorf("requested contents should be less than 80 digits long, got %d", len(contents))
		}
		return twooffive.Encode(contents, true)
	default:
		return nil, fmt.Errorf("unsupported symbology %s", sym)
	}
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}

// checkDigits validates a digit string that is either missing its check
// digit (withoutCheck) or carries it (withCheck).
func checkDigits(s string, withoutCheck, withCheck int) error {
	if len(s) != withoutCheck && len(s) != withCheck {
		return fmt.Errorf("requested contents should be %d or %d digits long, but got %d", withoutCheck, withCheck, len(s))
	}
	return checkNumeric(s)
}

func checkNumeric(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("contents contain non-digit character: %q", s[i])
		}
	}
	return nil
}

const codabarGuardChars = "ABCD"

// codabarAltGuards maps the alternate start/stop characters to the ones the
// bar encoder knows.
var codabarAltGuards = map[byte]byte{'T': 'A', 'N': 'B', '*': 'C', 'E': 'D'}

// codabarGuards adds the default A...A start/stop pair when contents has
// neither guard and rewrites the alternate T N * E guards to A B C D. Start
// and stop must come from the same set; a single guard is an error.
func codabarGuards(contents string) (string, error) {
	up := strings.ToUpper(contents)
	first, last := up[0], up[len(up)-1]
	_, firstAlt := codabarAltGuards[first]
	_, lastAlt := codabarAltGuards[last]
	firstStd := strings.IndexByte(codabarGuardChars, first) >= 0
	lastStd := strings.IndexByte(codabarGuardChars, last) >= 0
	paired := len(up) > 1

	switch {
	case paired && firstStd && lastStd:
		return up, nil
	case paired && firstAlt && lastAlt:
		return string(codabarAltGuards[first]) + up[1:len(up)-1] + string(codabarAltGuards[last]), nil
	case !firstStd && !firstAlt && !lastStd && !lastAlt:
		return "A" + up + "A", nil
	default:
		return "", fmt.Errorf("invalid start/end guards: %s", contents)
	}
}

const code39Basic = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

func isBasicCode39(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(code39Basic, r) {
			return false
		}
	}
	return true
}
