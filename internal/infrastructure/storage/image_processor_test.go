package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessorValidate(t *testing.T) {
	p := NewImageProcessor()

	t.Run("accepts png", func(t *testing.T) {
		assert.NoError(t, p.Validate(encodePNG(t, 10, 10)))
	})

	t.Run("accepts jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil))
		assert.NoError(t, p.Validate(buf.Bytes()))
	})

	t.Run("rejects non-image bytes", func(t *testing.T) {
		err := p.Validate([]byte("definitely not an image"))
		assert.Error(t, err)
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		tiny := &ImageProcessor{maxBytes: 16}
		err := tiny.Validate(encodePNG(t, 10, 10))
		assert.ErrorContains(t, err, "limit")
	})
}

func TestImageProcessorNormalize(t *testing.T) {
	p := NewImageProcessor()

	t.Run("fits large image into the cover bounds as jpeg", func(t *testing.T) {
		out, err := p.Normalize(encodePNG(t, 1200, 2400))
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.LessOrEqual(t, cfg.Width, coverMaxWidth)
		assert.LessOrEqual(t, cfg.Height, coverMaxHeight)
	})

	t.Run("rejects undecodable bytes", func(t *testing.T) {
		_, err := p.Normalize([]byte{0x00, 0x01, 0x02})
		assert.Error(t, err)
	})
}
