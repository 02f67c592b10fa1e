// Package meld combines a stack of equally-sized images into one by
// pixel-wise reduction.
//
// Overlaying every scan of a document with the min method darkens each
// coordinate to the darkest ink seen across the stack, which makes the
// union of printed content visible on a light background. The max method
// is the inverse and reveals the regions that stay light on every page.
// The melded image is the reference from which regions of interest are
// marked for the snip step.
package meld

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/cwverhey/snipbook/pkg/errors"
)

// Method selects the pixel-wise reduction.
type Method string

// Supported melding methods.
const (
	Min Method = "min"
	Max Method = "max"
)

// ParseMethod parses a melding method name.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown melding method %q (want min or max)", s)
	}
}

// Reduce melds images into a single image of the same dimensions, taking
// the per-channel minimum or maximum at every pixel. All inputs must have
// identical width and height; the first deviating input is reported by
// index. Reduce never modifies its inputs.
func Reduce(method Method, images []image.Image) (*image.NRGBA, error) {
	if method != Min && method != Max {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown melding method %q", method)
	}
	if len(images) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no images to meld")
	}

	out := imaging.Clone(images[0])
	w, h := out.Bounds().Dx(), out.Bounds().Dy()

	for i, img := range images[1:] {
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		if iw != w || ih != h {
			return nil, errors.New(errors.ErrCodeShapeMismatch,
				"image %d is %dx%d, want %dx%d", i+1, iw, ih, w, h)
		}

		next := imaging.Clone(img)
		if method == Min {
			for p := range out.Pix {
				if next.Pix[p] < out.Pix[p] {
					out.Pix[p] = next.Pix[p]
				}
			}
		} else {
			for p := range out.Pix {
				if next.Pix[p] > out.Pix[p] {
					out.Pix[p] = next.Pix[p]
				}
			}
		}
	}

	return out, nil
}
