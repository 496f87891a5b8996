package oned

import "github.com/ericlevine/barcodegen/bitutil"

// QuietZone is the margin in modules left on each side of the bars.
const QuietZone = 10

// RenderOneDCode lays out a bar pattern in a matrix. Each module becomes the
// largest whole number of columns that fits the requested width including
// quiet zones, centered horizontally and running the full height. The matrix
// grows when the requested size is too small.
func RenderOneDCode(code []bool, width, height int) *bitutil.BitMatrix {
	inputWidth := len(code)
	fullWidth := inputWidth + 2*QuietZone
	outputWidth := max(width, fullWidth)
	outputHeight := max(height, 1)

	multiple := outputWidth / fullWidth
	leftPadding := (outputWidth - inputWidth*multiple) / 2

	output := bitutil.NewBitMatrix(outputWidth, outputHeight)
	for inputX, outputX := 0, leftPadding; inputX < inputWidth; inputX, outputX = inputX+1, outputX+multiple {
		if code[inputX] {
			output.SetRegion(outputX, 0, multiple, outputHeight)
		}
	}
	return output
}
