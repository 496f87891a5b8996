// Package bitutil holds the binary module matrix exchanged between symbol
// encoders and the raster converter.
package bitutil

import (
	"fmt"
	"strings"
)

// BitMatrix is a width x height grid of modules. x is the column, y is the
// row, and the origin is at the top-left. Rows are packed 32 modules per word.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates an empty BitMatrix with the given width and height.
// It panics if either dimension is less than 1.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseStringMatrix builds a BitMatrix from rows of setStr/unsetStr tokens
// separated by newlines. All rows must have the same number of tokens.
func ParseStringMatrix(repr, setStr, unsetStr string) (*BitMatrix, error) {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", ""), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for len(line) > 0 {
			switch {
			case strings.HasPrefix(line, setStr):
				row = append(row, true)
				line = line[len(setStr):]
			case strings.HasPrefix(line, unsetStr):
				row = append(row, false)
				line = line[len(unsetStr):]
			default:
				return nil, fmt.Errorf("bitmatrix: illegal character %q in row %d", line[0], len(rows))
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("bitmatrix: row %d has %d modules, want %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("bitmatrix: empty matrix")
	}
	bm := NewBitMatrix(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, set := range row {
			if set {
				bm.Set(x, y)
			}
		}
	}
	return bm, nil
}

// Get returns true if the module at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the module at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// SetRegion sets every module in the given rectangle.
func (bm *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitmatrix: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitmatrix: height and width must be at least 1")
	}
	right := left + width
	bottom := top + height
	if bottom > bm.height || right > bm.width {
		panic("bitmatrix: region must fit inside the matrix")
	}
	for y := top; y < bottom; y++ {
		offset := y * bm.rowSize
		for x := left; x < right; x++ {
			bm.data[offset+x/32] |= 1 << uint(x&0x1f)
		}
	}
}

// Width returns the number of columns.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the number of rows.
func (bm *BitMatrix) Height() int { return bm.height }

// String renders the matrix with "X " for set and "  " for unset modules.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars renders the matrix using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals reports whether both matrices have the same size and modules.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
