package oned

import "github.com/ericlevine/barcodegen"

func init() {
	w := NewWriter()
	for _, f := range barcodegen.FormatCodes() {
		barcodegen.RegisterEncoder(barcodegen.Resolve(f), w)
	}
}
