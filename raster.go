package barcodegen

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Color is a 32-bit ARGB color value.
type Color uint32

// Opaque black and white.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
)

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// NRGBA converts c to a non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// String formats c as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseColor parses "#AARRGGBB", "#RRGGBB", "0xAARRGGBB" or "AARRGGBB".
// Six-digit forms are opaque.
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	if strings.HasPrefix(h, "0x") || strings.HasPrefix(h, "0X") {
		h = h[2:]
	}
	if len(h) != 6 && len(h) != 8 {
		return 0, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v |= 0xFF000000
	}
	return Color(v), nil
}

// ColorPair is the ink and background color of a generator.
type ColorPair struct {
	Ink        Color
	Background Color
}

// DefaultColors returns opaque black ink on opaque white.
func DefaultColors() ColorPair {
	return ColorPair{Ink: Black, Background: White}
}

// Matrix is the read-only view of a binary module matrix.
type Matrix interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// PixelBuffer is a row-major grid of ARGB pixels. It implements image.Image.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// ARGB returns the raw color at (x, y).
func (p *PixelBuffer) ARGB(x, y int) Color {
	return Color(p.Pix[y*p.Width+x])
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// At implements image.Image.
func (p *PixelBuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return color.NRGBA{}
	}
	return p.ARGB(x, y).NRGBA()
}

// ToPixels paints m in row-major order: ink where a module is set,
// background elsewhere. The buffer has exactly the matrix dimensions.
func ToPixels(m Matrix, ink, background Color) *PixelBuffer {
	width, height := m.Width(), m.Height()
	pix := make([]uint32, width*height)
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			if m.Get(x, y) {
				pix[offset+x] = uint32(ink)
			} else {
				pix[offset+x] = uint32(background)
			}
		}
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}
}
