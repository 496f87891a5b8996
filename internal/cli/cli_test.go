package cli

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/ericlevine/barcodegen"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeFile(t *testing.T, path string, decode func(io.Reader) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := decode(f)
	require.NoError(t, err)
	return img
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "ean.png")

	_, err := run(t, "render", "5901234123457", "--format", "ean13", "--width", "230", "--height", "40", "-o", out)
	require.NoError(t, err)

	img := decodeFile(t, out, png.Decode)
	assert.Equal(t, image.Rect(0, 0, 230, 40), img.Bounds())
	r, g, b, _ := img.At(20, 0).RGBA()
	assert.Zero(t, r|g|b, "first bar should be black")
}

func TestRenderCommandScaledBMP(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "code.bmp")

	_, err := run(t, "render", "HELLO", "--format", "2", "--width", "10", "--height", "5", "--scale", "2", "--async", "-o", out)
	require.NoError(t, err)

	img := decodeFile(t, out, bmp.Decode)
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestRenderCommandFailures(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "render", "not digits", "--format", "ean13")
	assert.ErrorIs(t, err, barcodegen.ErrIncompatible)

	_, err = run(t, "render", "123", "--format", "qr")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "render", "123", "-o", "out.gif")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = run(t, "render", "123", "--ink", "purple")
	assert.ErrorContains(t, err, "ink")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	list := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(list, []byte(strings.Join([]string{
		"# sample",
		"ean13,5901234123457",
		"",
		"CODE_128,Hello, world",
		"upc_e,05096893",
	}, "\n")), 0o600))
	outDir := filepath.Join(dir, "out")
	metrics := filepath.Join(dir, "metrics.prom")

	_, err := run(t, "batch", list, "-d", outDir, "--workers", "2", "--metrics-file", metrics)
	require.NoError(t, err)

	for _, name := range []string{"2_EAN_13.png", "4_CODE_128.png", "5_UPC_E.png"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `barcodegen_renders_total{status="ok",symbology="EAN_13"} 1`)
}

func TestBatchCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	list := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("ean8,1234\ncode39,OK\n"), 0o600))

	_, err := run(t, "batch", list, "-d", dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 1")
	assert.FileExists(t, filepath.Join(dir, "2_CODE_39.png"))
}

func TestParseBatch(t *testing.T) {
	entries, err := parseBatch(strings.NewReader("1,a,b\n  \n#x\n1024,0123\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, batchEntry{line: 1, format: barcodegen.FormatCode128, payload: "a,b"}, entries[0])
	assert.Equal(t, batchEntry{line: 4, format: barcodegen.FormatUPCE, payload: "0123"}, entries[1])

	_, err = parseBatch(strings.NewReader("no comma\n"))
	assert.ErrorContains(t, err, "line 1")
	_, err = parseBatch(strings.NewReader("pdf417,x\n"))
	assert.ErrorContains(t, err, "unknown format")
}

func TestFormatsCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "formats")
	require.NoError(t, err)
	for _, want := range []string{"1024", "UPC_E", "CODABAR", "fallback"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "missing")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BARCODEGEN_BACKGROUND=#00FFFFFF\n"), 0o600))
	t.Setenv("BARCODEGEN_BACKGROUND", "")
	os.Unsetenv("BARCODEGEN_BACKGROUND")

	out, err := run(t, "config", "--ink", "#FF002A54", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "#FF002A54")
	assert.Contains(t, out, "#00FFFFFF")
	assert.Contains(t, out, "workers: 3")
}
