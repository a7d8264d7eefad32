package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findr-api/internal/domain"
)

func createTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255})))
	return buf.Bytes()
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcess_JPEG(t *testing.T) {
	out, err := NewProcessor(0).Process(bytes.NewReader(createTestJPEG(t, 100, 80)))
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 80, h)
}

func TestProcess_PNGIsReencodedAsJPEG(t *testing.T) {
	out, err := NewProcessor(0).Process(bytes.NewReader(createTestPNG(t, 50, 50)))
	require.NoError(t, err)
	decodedSize(t, out)
}

func TestProcess_DownscalesKeepingAspect(t *testing.T) {
	out, err := NewProcessor(256).Process(bytes.NewReader(createTestJPEG(t, 1024, 512)))
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	assert.Equal(t, 256, w)
	assert.Equal(t, 128, h)
}

func TestProcess_PortraitDownscale(t *testing.T) {
	out, err := NewProcessor(100).Process(bytes.NewReader(createTestPNG(t, 200, 400)))
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	assert.Equal(t, 50, w)
	assert.Equal(t, 100, h)
}

func TestProcess_RejectsNonImage(t *testing.T) {
	_, err := NewProcessor(0).Process(bytes.NewReader([]byte("definitely not an image")))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestProcess_RejectsTruncatedJPEG(t *testing.T) {
	data := createTestJPEG(t, 64, 64)
	_, err := NewProcessor(0).Process(bytes.NewReader(data[:20]))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
