package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	maxCoverBytes    = 5 << 20
	coverMaxWidth    = 600
	coverMaxHeight   = 900
	coverJPEGQuality = 85
)

// ImageProcessor validates and normalizes uploaded cover images before
// they reach the object store. Whatever the upload format, stored
// covers are bounded JPEGs.
type ImageProcessor struct {
	maxBytes int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{maxBytes: maxCoverBytes}
}

// Validate rejects oversized uploads and anything that is not a JPEG
// or PNG. GIF decoding is registered so a GIF upload reports an
// unsupported format rather than an opaque decode failure.
func (p *ImageProcessor) Validate(data []byte) error {
	if int64(len(data)) > p.maxBytes {
		return fmt.Errorf("cover exceeds %dMB limit", p.maxBytes>>20)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode cover: %w", err)
	}

	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("unsupported cover format %q", format)
	}
}

// Normalize re-encodes the cover as a JPEG fitted within
// coverMaxWidth x coverMaxHeight, so storage holds a predictable size
// regardless of what was uploaded.
func (p *ImageProcessor) Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}

	fitted := imaging.Fit(img, coverMaxWidth, coverMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: coverJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}

	return buf.Bytes(), nil
}
