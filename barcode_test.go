package barcodegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code FormatCode
		want Symbology
	}{
		{8, SymbologyCodabar},
		{1, SymbologyCode128},
		{2, SymbologyCode39},
		{4, SymbologyCode93},
		{32, SymbologyEAN13},
		{64, SymbologyEAN8},
		{128, SymbologyITF},
		{512, SymbologyUPCA},
		{1024, SymbologyUPCE},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Resolve(tc.code), "Resolve(%d)", int(tc.code))
		assert.True(t, tc.code.Valid())
	}
}

func TestResolveUnknownDefaultsToCode128(t *testing.T) {
	for _, code := range []FormatCode{0, -1, 3, 16, 256, 2048, 1 | 2, 1 << 20} {
		assert.Equal(t, SymbologyCode128, Resolve(code), "Resolve(%d)", int(code))
		assert.False(t, code.Valid())
	}
}

func TestFormatCodes(t *testing.T) {
	codes := FormatCodes()
	assert.Len(t, codes, 9)
	seen := map[Symbology]bool{}
	for _, c := range codes {
		seen[Resolve(c)] = true
	}
	assert.Len(t, seen, 9, "every code maps to its own symbology")

	codes[0] = 77
	assert.Equal(t, FormatCodabar, FormatCodes()[0], "returned slice is a copy")
}

func TestParseFormatCode(t *testing.T) {
	tests := map[string]FormatCode{
		"EAN_13":   FormatEAN13,
		"ean13":    FormatEAN13,
		"code-128": FormatCode128,
		"Code 39":  FormatCode39,
		"upc_e":    FormatUPCE,
		"itf":      FormatITF,
		"512":      FormatUPCA,
		" 7 ":      FormatCode(7),
	}
	for in, want := range tests {
		got, ok := ParseFormatCode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseFormatCode("qr")
	assert.False(t, ok)
}

func TestFormatCodeString(t *testing.T) {
	assert.Equal(t, "UPC_A", FormatUPCA.String())
	assert.Equal(t, "3", FormatCode(3).String())
	assert.Equal(t, "UNKNOWN", Symbology(42).String())
}
