package imaging

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// JPEGQuality of every re-encoded image.
const JPEGQuality = 85

var ErrUnsupportedFormat = errors.New("unsupported image format, use jpeg, png or gif")

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Result is a processed image ready to be stored.
type Result struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Downscale decodes an image, fits it inside maxDimension on its longest side and
// re-encodes it as JPEG. Smaller images keep their size but are still re-encoded.
func Downscale(r io.Reader, maxDimension int) (*Result, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if !supportedTypes[http.DetectContentType(head)] {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(br, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if maxDimension > 0 && (bounds.Dx() > maxDimension || bounds.Dy() > maxDimension) {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Result{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Extension:   ".jpg",
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}
