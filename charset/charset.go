// Package charset resolves character-set names used in encoding hints and
// checks whether a payload can be expressed in them.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// UTF8 is the hint value chosen for payloads outside Latin-1.
const UTF8 = "UTF-8"

// ErrUnsupported indicates a character set name that cannot be resolved.
var ErrUnsupported = errors.New("charset: unsupported character set")

// ZXing-style names mapped to their IANA equivalents.
var aliases = map[string]string{
	"UTF8":               "UTF-8",
	"ISO8859_1":          "ISO-8859-1",
	"ISO8859_2":          "ISO-8859-2",
	"ISO8859_15":         "ISO-8859-15",
	"SJIS":               "Shift_JIS",
	"CP437":              "IBM437",
	"CP1250":             "windows-1250",
	"CP1251":             "windows-1251",
	"CP1252":             "windows-1252",
	"CP1256":             "windows-1256",
	"UNICODEBIGUNMARKED": "UTF-16BE",
	"EUC_KR":             "EUC-KR",
	"EUC_CN":             "GB2312",
	"ASCII":              "US-ASCII",
}

// ExceedsLatin1 reports whether s contains a code point above U+00FF.
// Invalid UTF-8 decodes to U+FFFD and therefore counts.
func ExceedsLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return true
		}
	}
	return false
}

// Lookup returns the encoding registered under name. Both IANA names and
// the ZXing-style names ("ISO8859_1", "SJIS") are accepted.
func Lookup(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(name)
	if alias, ok := aliases[strings.ToUpper(n)]; ok {
		n = alias
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return enc, nil
}

// CheckEncodable returns an error if s cannot be represented in the named
// character set.
func CheckEncodable(s, name string) error {
	enc, err := Lookup(name)
	if err != nil {
		return err
	}
	if _, err := enc.NewEncoder().String(s); err != nil {
		return fmt.Errorf("charset: %q not representable in %s: %w", s, name, err)
	}
	return nil
}
