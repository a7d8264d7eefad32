// Package imaging normalises uploaded item photos: the format is checked by
// sniffing bytes, oversized images are downscaled and everything is stored
// as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/findr-api/internal/domain"
)

const (
	DefaultMaxDimension = 1024
	JPEGQuality         = 85
	OutputMIME          = "image/jpeg"
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Processor downscales photos so neither side exceeds maxDim.
type Processor struct {
	maxDim int
}

func NewProcessor(maxDim int) *Processor {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Processor{maxDim: maxDim}
}

// Process returns the re-encoded JPEG bytes of the photo read from r.
// Unsupported or corrupt input is reported as domain.ErrBadRequest.
func (p *Processor) Process(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s: %w", detected, domain.ErrBadRequest)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %v: %w", err, domain.ErrBadRequest)
	}
	img = downscale(img, p.maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale keeps the aspect ratio and never upscales.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
