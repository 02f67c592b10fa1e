// Package autocrop trims uniform-colored borders from an image.
//
// A border row or column is trimmed when every one of its pixels lies
// within a tolerance of a reference color. The reference is either given
// explicitly as an RGB triple, sampled from the image's top-left pixel
// ("auto"), or absent ("none"), in which case cropping is skipped.
package autocrop

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/cwverhey/snipbook/pkg/errors"
)

// DefaultTolerance is the per-channel deviation allowed when matching the
// reference color, in percent of the full channel range.
const DefaultTolerance = 10

type kind int

const (
	kindNone kind = iota
	kindAuto
	kindRGB
)

// Color is the autocrop reference color: none, auto, or an explicit RGB
// triple. The zero value is none.
type Color struct {
	k       kind
	r, g, b uint8
}

// None skips autocropping entirely.
func None() Color { return Color{k: kindNone} }

// Auto samples the reference from the top-left pixel of each image being
// cropped, at crop time. It is resolved per image, never shared between
// images.
func Auto() Color { return Color{k: kindAuto} }

// RGB is an explicit reference color.
func RGB(r, g, b uint8) Color { return Color{k: kindRGB, r: r, g: g, b: b} }

// IsNone reports whether the color disables cropping.
func (c Color) IsNone() bool { return c.k == kindNone }

// String renders the color the way it is written on the command line.
func (c Color) String() string {
	switch c.k {
	case kindAuto:
		return "auto"
	case kindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	default:
		return "none"
	}
}

// ParseColor parses an autocrop color argument: "none" (or "no"), "auto",
// or a hex triple like "#ffcc00".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "none", "no":
		return None(), nil
	case "auto":
		return Auto(), nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(s) == len(hex) || len(hex) != 6 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor,
			"invalid crop color %q (want none, auto, or #rrggbb)", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, errors.New(errors.ErrCodeInvalidColor,
			"invalid crop color %q (want none, auto, or #rrggbb)", s)
	}
	return RGB(r, g, b), nil
}

// Crop trims border rows and columns of img whose pixels all lie within
// tolerance percent per channel of the reference color. It returns the
// cropped image and the retained rectangle in img's coordinate space.
//
// With color none the input is returned unchanged apart from being
// normalized to NRGBA. An image that matches the reference everywhere
// collapses to a 1x1 rectangle at its center rather than a zero-area
// crop, so a blank page can never break downstream layout.
func Crop(img image.Image, c Color, tolerance int) (*image.NRGBA, image.Rectangle, error) {
	if err := errors.ValidateTolerance(tolerance); err != nil {
		return nil, image.Rectangle{}, err
	}

	src := imaging.Clone(img)
	full := src.Bounds()
	if c.IsNone() {
		return src, full, nil
	}

	// Resolve auto against this image's own top-left pixel.
	ref := c
	if c.k == kindAuto {
		ref = RGB(src.Pix[0], src.Pix[1], src.Pix[2])
	}

	// Tolerance in raw 8-bit channel units.
	maxDiff := tolerance * 255 / 100

	matches := func(x, y int) bool {
		p := y*src.Stride + x*4
		return absDiff(src.Pix[p], ref.r) <= maxDiff &&
			absDiff(src.Pix[p+1], ref.g) <= maxDiff &&
			absDiff(src.Pix[p+2], ref.b) <= maxDiff
	}

	w, h := full.Dx(), full.Dy()

	// Bounding box of all pixels that differ from the reference. This is
	// equivalent to scanning inward from each edge until a row or column
	// contains a differing pixel.
	left, top := w, h
	right, bottom := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matches(x, y) {
				continue
			}
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
			if y < top {
				top = y
			}
			if y > bottom {
				bottom = y
			}
		}
	}

	if right < 0 {
		// Every pixel matches: keep a single center pixel.
		rect := image.Rect(w/2, h/2, w/2+1, h/2+1)
		return imaging.Crop(src, rect), rect, nil
	}

	rect := image.Rect(left, top, right+1, bottom+1)
	return imaging.Crop(src, rect), rect, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
