package imageprocessor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Processor transcodes uploaded images. Large originals from phone cameras
// get re-encoded as bounded JPEGs before they reach storage.
type Processor struct {
	quality  int
	maxWidth int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 70
	}
	return &Processor{quality: quality, maxWidth: 1600}
}

// Compress decodes the image, caps its width and re-encodes it as JPEG at
// the configured quality.
func (p *Processor) Compress(reader io.Reader) ([]byte, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail produces a square center-cropped JPEG preview.
func (p *Processor) Thumbnail(reader io.Reader, size int) ([]byte, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// IsImage reports whether the content type is a processable image format.
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
