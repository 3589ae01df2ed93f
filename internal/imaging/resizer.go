// Package imaging downsamples oversized diary images before upload.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	// Decoders for the formats browsers commonly hand us.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// DefaultMaxWidth matches the width the web client always resized to.
	DefaultMaxWidth = 1024

	// jpegQuality is fixed; resized images are always re-encoded at 90%.
	jpegQuality = 90
)

var (
	// ErrDecode indicates the input bytes are not a decodable image.
	ErrDecode = errors.New("image decode failed")

	// ErrEncode indicates re-encoding produced no output.
	ErrEncode = errors.New("image encode failed")
)

// Resizer scales images down to a maximum width, preserving aspect ratio.
type Resizer struct {
	MaxWidth int
}

// NewResizer returns a Resizer for the given maximum width; zero or negative
// falls back to DefaultMaxWidth.
func NewResizer(maxWidth int) *Resizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Resizer{MaxWidth: maxWidth}
}

// Resize returns data scaled down to at most MaxWidth pixels wide. Images
// already narrow enough are returned unchanged, byte for byte, so they suffer
// no generation loss. Wider images are rescaled proportionally and re-encoded
// as JPEG at fixed quality.
func (r *Resizer) Resize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= r.MaxWidth {
		return data, nil
	}

	newWidth := r.MaxWidth
	newHeight := int(math.Round(float64(height) * float64(r.MaxWidth) / float64(width)))
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEncode
	}
	return buf.Bytes(), nil
}

// Probe reports whether data looks like a decodable image without decoding
// the full pixel buffer. The upload handler uses it to reject a bad file in a
// batch while still admitting its siblings.
func Probe(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
