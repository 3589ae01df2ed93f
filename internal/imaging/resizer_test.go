package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestResizeNarrowImageUnchanged(t *testing.T) {
	r := NewResizer(1024)
	original := makeJPEG(t, 800, 600)

	out, err := r.Resize(original)
	require.NoError(t, err)
	assert.Equal(t, original, out, "narrow images must pass through byte-identical")
}

func TestResizeExactWidthUnchanged(t *testing.T) {
	r := NewResizer(1024)
	original := makePNG(t, 1024, 300)

	out, err := r.Resize(original)
	require.NoError(t, err)
	assert.Equal(t, original, out)
}

func TestResizeWideImageScaled(t *testing.T) {
	r := NewResizer(1024)
	original := makeJPEG(t, 2048, 1000)

	out, err := r.Resize(original)
	require.NoError(t, err)
	require.NotEqual(t, original, out)

	w, h := decodeSize(t, out)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 500, h, "height must scale proportionally")
}

func TestResizeRoundsHeight(t *testing.T) {
	r := NewResizer(100)
	original := makePNG(t, 301, 100)

	out, err := r.Resize(original)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 33, h) // round(100 * 100 / 301)
}

func TestResizeOutputIsJPEG(t *testing.T) {
	r := NewResizer(100)
	out, err := r.Resize(makePNG(t, 400, 400))
	require.NoError(t, err)

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestResizeUndecodableBytes(t *testing.T) {
	r := NewResizer(1024)
	_, err := r.Resize([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNewResizerDefault(t *testing.T) {
	assert.Equal(t, DefaultMaxWidth, NewResizer(0).MaxWidth)
	assert.Equal(t, DefaultMaxWidth, NewResizer(-5).MaxWidth)
	assert.Equal(t, 640, NewResizer(640).MaxWidth)
}

func TestProbe(t *testing.T) {
	assert.NoError(t, Probe(makeJPEG(t, 10, 10)))
	assert.NoError(t, Probe(makePNG(t, 10, 10)))
	assert.ErrorIs(t, Probe([]byte{0x00, 0x01, 0x02}), ErrDecode)
}
