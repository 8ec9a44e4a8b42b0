// Package imaging normalizes uploaded item pictures.
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

	"github.com/erazemk/anylist/internal/model"
)

// Defaults for item pictures.
const (
	DefaultMaxDimension = 512
	DefaultQuality      = 80
	DefaultMaxBytes     = 5 << 20
)

// Options controls picture normalization. Zero fields use the defaults.
type Options struct {
	MaxDimension int
	Quality      int
	MaxBytes     int64
}

func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return o
}

// Picture is a normalized item picture.
type Picture struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func invalid(format string, args ...any) error {
	return &model.ValidationError{
		Message: "invalid picture",
		Fields:  map[string]string{"picture": fmt.Sprintf(format, args...)},
	}
}

// Normalize reads a JPEG or PNG upload, fits it within a
// MaxDimension square and re-encodes it as JPEG. The format is sniffed
// from the content, not taken from client headers.
func Normalize(r io.Reader, opts Options) (*Picture, error) {
	opts = opts.withDefaults()

	data, err := io.ReadAll(io.LimitReader(r, opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading picture: %w", err)
	}
	if int64(len(data)) > opts.MaxBytes {
		return nil, invalid("must not exceed %d bytes", opts.MaxBytes)
	}

	if ct := http.DetectContentType(data); !accepted[ct] {
		return nil, invalid("unsupported format %s, only JPEG and PNG are accepted", ct)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("cannot be decoded")
	}

	img := fit(src, opts.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encoding picture: %w", err)
	}

	b := img.Bounds()
	return &Picture{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// fit scales img down so its longer side is at most limit, keeping the
// aspect ratio. Smaller images are returned unchanged.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	nw, nh := limit, limit
	if w > h {
		nh = max(1, h*limit/w)
	} else {
		nw = max(1, w*limit/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
