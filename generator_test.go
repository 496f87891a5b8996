package barcodegen

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/barcodegen/bitutil"
)

// stripes encodes every payload as alternating one-module columns, one per
// byte of the payload, and records the arguments it saw.
type stripes struct {
	mu    sync.Mutex
	calls []encodeCall
}

type encodeCall struct {
	contents      string
	sym           Symbology
	width, height int
	opts          *EncodeOptions
}

func (s *stripes) Encode(contents string, sym Symbology, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	s.mu.Lock()
	s.calls = append(s.calls, encodeCall{contents, sym, width, height, opts})
	s.mu.Unlock()
	m := bitutil.NewBitMatrix(len(contents), max(height, 1))
	for x := 0; x < len(contents); x += 2 {
		m.SetRegion(x, 0, 1, m.Height())
	}
	return m, nil
}

func mustNotEncode(t *testing.T) Encoder {
	return EncoderFunc(func(string, Symbology, int, int, *EncodeOptions) (*bitutil.BitMatrix, error) {
		t.Fatal("encoder must not be called")
		return nil, nil
	})
}

func TestRenderEmptyPayloadSkipsEncoder(t *testing.T) {
	g := NewGenerator(WithEncoder(mustNotEncode(t)))

	assert.Nil(t, g.Render("", FormatEAN13, 100, 50))
	res := g.Generate("", FormatEAN13, 100, 50)
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ErrEmptyPayload)
}

func TestRenderPassesResolvedInputs(t *testing.T) {
	enc := &stripes{}
	g := NewGenerator(WithEncoder(enc))

	require.NotNil(t, g.Render("ABC", FormatEAN8, 30, 7))
	require.NotNil(t, g.Render("日本", FormatCode(3), 30, 7))

	require.Len(t, enc.calls, 2)
	assert.Equal(t, encodeCall{"ABC", SymbologyEAN8, 30, 7, nil}, enc.calls[0])
	assert.Equal(t, SymbologyCode128, enc.calls[1].sym)
	assert.Equal(t, &EncodeOptions{CharacterSet: "UTF-8"}, enc.calls[1].opts)
}

func TestRenderColors(t *testing.T) {
	g := NewGenerator(WithEncoder(&stripes{}), WithInk(0xFF002A54), WithBackground(0x00FFFFFF))
	assert.Equal(t, ColorPair{Ink: 0xFF002A54, Background: 0x00FFFFFF}, g.Colors())

	buf := g.Render("abcd", FormatCode128, 4, 2)
	require.NotNil(t, buf)
	assert.Equal(t, 4, buf.Width)
	assert.Equal(t, 2, buf.Height)
	assert.Equal(t, []uint32{
		0xFF002A54, 0x00FFFFFF, 0xFF002A54, 0x00FFFFFF,
		0xFF002A54, 0x00FFFFFF, 0xFF002A54, 0x00FFFFFF,
	}, buf.Pix)

	assert.Equal(t, DefaultColors(), NewGenerator().Colors())
	assert.Equal(t, ColorPair{Ink: White, Background: Black},
		NewGenerator(WithColors(ColorPair{Ink: White, Background: Black})).Colors())
}

func TestRenderIncompatible(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	enc := EncoderFunc(func(contents string, sym Symbology, _, _ int, _ *EncodeOptions) (*bitutil.BitMatrix, error) {
		return nil, errors.Join(errors.New("contents contain non-digit character"), ErrIncompatible)
	})
	g := NewGenerator(WithEncoder(enc), WithLogger(logger))

	assert.Nil(t, g.Render("not digits", FormatEAN13, 100, 50))
	res := g.Generate("not digits", FormatEAN13, 100, 50)
	assert.ErrorIs(t, res.Err, ErrIncompatible)
	assert.NotErrorIs(t, res.Err, ErrEncoderInternal)
	assert.Contains(t, buf.String(), "barcode render failed")
}

func TestRenderEncoderInternalError(t *testing.T) {
	boom := errors.New("table corrupted")
	g := NewGenerator(WithEncoder(EncoderFunc(func(string, Symbology, int, int, *EncodeOptions) (*bitutil.BitMatrix, error) {
		return nil, boom
	})))
	res := g.Generate("123", FormatCode128, 10, 10)
	assert.ErrorIs(t, res.Err, ErrEncoderInternal)
	assert.ErrorIs(t, res.Err, boom)
	assert.Nil(t, res.Pixels)
}

func TestRenderEncoderPanicIsContained(t *testing.T) {
	calls := 0
	g := NewGenerator(WithEncoder(EncoderFunc(func(contents string, _ Symbology, _, _ int, _ *EncodeOptions) (*bitutil.BitMatrix, error) {
		calls++
		if contents == "panic" {
			panic("index out of range")
		}
		return bitutil.NewBitMatrix(1, 1), nil
	})))

	res := g.Generate("panic", FormatCode128, 10, 10)
	assert.ErrorIs(t, res.Err, ErrEncoderInternal)

	// The generator stays usable.
	assert.NotNil(t, g.Render("fine", FormatCode128, 10, 10))
	assert.Equal(t, 2, calls)
}

func TestRenderNilMatrix(t *testing.T) {
	g := NewGenerator(WithEncoder(EncoderFunc(func(string, Symbology, int, int, *EncodeOptions) (*bitutil.BitMatrix, error) {
		return nil, nil
	})))
	assert.ErrorIs(t, g.Generate("x", FormatCode128, 1, 1).Err, ErrEncoderInternal)
}

func TestMultiFormatEncoderUnregistered(t *testing.T) {
	_, err := NewMultiFormatEncoder().Encode("123", Symbology(99), 10, 10, nil)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestRegisterEncoder(t *testing.T) {
	const sym = Symbology(1000)
	enc := &stripes{}
	RegisterEncoder(sym, enc)

	m, err := Encode("ab", sym, 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width())
	assert.Len(t, enc.calls, 1)
}

func TestRenderIdempotent(t *testing.T) {
	g := NewGenerator(WithEncoder(&stripes{}))
	a := g.Render("payload", FormatITF, 7, 3)
	b := g.Render("payload", FormatITF, 7, 3)
	require.NotNil(t, a)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestRenderConcurrent(t *testing.T) {
	g := NewGenerator(WithEncoder(&stripes{}))
	want := g.Render("concurrent", FormatCode39, 10, 4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, g.Render("concurrent", FormatCode39, 10, 4))
		}()
	}
	wg.Wait()
}
