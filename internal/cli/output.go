package cli

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encoders maps output file extensions to image encoders.
var encoders = map[string]func(io.Writer, image.Image) error{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) },
	".tiff": func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) },
}

func checkOutputPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := encoders[ext]; !ok {
		return fmt.Errorf("unsupported output format %q (want .png, .bmp, .tif or .tiff)", ext)
	}
	return nil
}

// upscale enlarges img by an integer factor with nearest-neighbour sampling
// so that no colors other than the original two appear.
func upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// writeImage encodes img to path, choosing the format from the extension.
func writeImage(path string, img image.Image) (err error) {
	if err := checkOutputPath(path); err != nil {
		return err
	}
	enc := encoders[strings.ToLower(filepath.Ext(path))]

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := enc(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
