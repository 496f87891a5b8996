package barcodegen

import "github.com/ericlevine/barcodegen/charset"

// EncodeOptions carries hints for an Encoder. A nil *EncodeOptions means no
// hints at all, which is distinct from a zero value.
type EncodeOptions struct {
	// CharacterSet names the character set the payload should be encoded in.
	CharacterSet string
}

// SelectHints returns the hints for payload: a UTF-8 character set when any
// code point is above U+00FF, nil otherwise. It is a crude heuristic that
// only looks at code point values.
func SelectHints(payload string) *EncodeOptions {
	if !charset.ExceedsLatin1(payload) {
		return nil
	}
	return &EncodeOptions{CharacterSet: charset.UTF8}
}
