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

	"github.com/erazemk/anylist/internal/model"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255})))
	return buf.Bytes()
}

func TestNormalizePNGToJPEG(t *testing.T) {
	pic, err := Normalize(bytes.NewReader(encodePNG(t, 100, 40)), Options{})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", pic.MIME)
	assert.Equal(t, 100, pic.Width, "small picture keeps its size")
	assert.Equal(t, 40, pic.Height, "small picture keeps its size")

	_, err = jpeg.Decode(bytes.NewReader(pic.Data))
	assert.NoError(t, err)
}

func TestNormalizeDownscales(t *testing.T) {
	pic, err := Normalize(bytes.NewReader(encodeJPEG(t, 2000, 1000)), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDimension, pic.Width)
	assert.Equal(t, DefaultMaxDimension/2, pic.Height)

	img, _, err := image.Decode(bytes.NewReader(pic.Data))
	require.NoError(t, err)
	assert.Equal(t, pic.Width, img.Bounds().Dx())
}

func TestNormalizeTallImage(t *testing.T) {
	pic, err := Normalize(bytes.NewReader(encodeJPEG(t, 10, 400)), Options{MaxDimension: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, pic.Width)
	assert.Equal(t, 100, pic.Height)
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("not an image")},
		{"gif", []byte("GIF89a...")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(bytes.NewReader(tt.data), Options{})
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "picture")
		})
	}
}

func TestNormalizeTooLarge(t *testing.T) {
	data := encodePNG(t, 64, 64)
	_, err := Normalize(bytes.NewReader(data), Options{MaxBytes: int64(len(data) - 1)})
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}
