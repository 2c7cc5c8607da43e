package imaging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	maxOriginalWidth = 1920
	thumbnailWidth   = 400
	thumbnailHeight  = 300
	jpegQuality      = 85
)

// Result holds a processed image and its thumbnail
type Result struct {
	Original  []byte
	Thumbnail []byte
}

// Process decodes an image, bounds its size and builds a thumbnail
// Both outputs are encoded as JPEG
func Process(r io.Reader) (*Result, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxOriginalWidth {
		img = imaging.Resize(img, maxOriginalWidth, 0, imaging.Lanczos)
	}

	var original bytes.Buffer
	if err := imaging.Encode(&original, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	thumb := imaging.Fill(img, thumbnailWidth, thumbnailHeight, imaging.Center, imaging.Lanczos)
	var thumbnail bytes.Buffer
	if err := imaging.Encode(&thumbnail, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return &Result{
		Original:  original.Bytes(),
		Thumbnail: thumbnail.Bytes(),
	}, nil
}
