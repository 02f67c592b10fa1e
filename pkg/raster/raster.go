// Package raster is the image file boundary for snipbook.
//
// It decodes source scans into in-memory images and encodes finished
// images back to PNG or JPEG. Decoding recognizes png, jpeg, gif (stdlib)
// plus tiff, bmp and webp via golang.org/x/image, since scanner output is
// frequently TIFF. Encoding is limited to the two output formats the
// pipeline produces.
package raster

import (
	"fmt"
	"image"
	_ "image/gif" // register gif decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register bmp decoder
	_ "golang.org/x/image/tiff" // register tiff decoder
	_ "golang.org/x/image/webp" // register webp decoder

	"github.com/cwverhey/snipbook/pkg/errors"
)

// Format is an output image format.
type Format string

// Supported output formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat parses an output format name. "jpg" is accepted as an
// alias for "jpeg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown output format %q (want png or jpeg)", s)
	}
}

// Ext returns the file extension for the format, without a dot.
func (f Format) Ext() string {
	return string(f)
}

// EncodeOptions control output encoding.
type EncodeOptions struct {
	Format      Format
	JPEGQuality int  // 1-100; 0 means DefaultJPEGQuality
	PNGOptimize bool // use best (slowest) compression
}

// DefaultJPEGQuality matches the original tool's merge default: page
// rasters compress well at low quality because most of each page is
// uniform background.
const DefaultJPEGQuality = 50

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailure, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailure, err, "decode %s", path)
	}
	return img, nil
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, opts EncodeOptions) error {
	switch opts.Format {
	case PNG:
		enc := png.Encoder{}
		if opts.PNGOptimize {
			enc.CompressionLevel = png.BestCompression
		}
		if err := enc.Encode(w, img); err != nil {
			return errors.Wrap(errors.ErrCodeIOFailure, err, "encode png")
		}
	case JPEG:
		q := opts.JPEGQuality
		if q == 0 {
			q = DefaultJPEGQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: q}); err != nil {
			return errors.Wrap(errors.ErrCodeIOFailure, err, "encode jpeg")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown output format %q", opts.Format)
	}
	return nil
}

// EncodeFile encodes img to a new file at path. The file must not already
// exist: snipbook never overwrites finished output.
func EncodeFile(path string, img image.Image, opts EncodeOptions) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create %s", path)
	}

	if err := Encode(f, img, opts); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "close %s", path)
	}
	return nil
}
