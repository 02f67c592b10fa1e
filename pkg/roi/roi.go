// Package roi models rectangular regions of interest and derives them
// either from an explicit JSON list or from the transparent areas of a
// mask image.
//
// The mask workflow: meld all source scans into one image, erase (make
// transparent) the areas to extract in any image editor, then hand the
// edited PNG back as the region source. Each maximal connected transparent
// area becomes one region.
package roi

import (
	"encoding/json"
	"image"
	"slices"

	"github.com/disintegration/imaging"

	"github.com/cwverhey/snipbook/pkg/errors"
)

// Rect is a rectangular region in pixel coordinates. Left/Top are
// inclusive, Right/Bottom exclusive, matching image.Rectangle semantics.
//
// The wire format is a JSON 4-element array [left, top, right, bottom].
type Rect struct {
	Left, Top, Right, Bottom int
}

// Bounds converts the region to an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// MarshalJSON encodes the region as [left, top, right, bottom].
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{r.Left, r.Top, r.Right, r.Bottom})
}

// UnmarshalJSON decodes a [left, top, right, bottom] array.
func (r *Rect) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 4 {
		return errors.New(errors.ErrCodeInvalidRegion, "region must have 4 elements, got %d", len(v))
	}
	r.Left, r.Top, r.Right, r.Bottom = v[0], v[1], v[2], v[3]
	return nil
}

// ParseList parses a JSON array of [left, top, right, bottom] arrays.
func ParseList(data []byte) ([]Rect, error) {
	var rects []Rect
	if err := json.Unmarshal(data, &rects); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "parse region list")
	}
	return rects, nil
}

// Validate checks every region against a reference size of w by h pixels.
// A region must have positive area and lie entirely within the reference
// bounds. The first offending region is reported by index.
func Validate(rects []Rect, w, h int) error {
	for i, r := range rects {
		if r.Left >= r.Right || r.Top >= r.Bottom {
			return errors.New(errors.ErrCodeInvalidRegion,
				"region %d [%d,%d,%d,%d]: empty or inverted", i, r.Left, r.Top, r.Right, r.Bottom)
		}
		if r.Left < 0 || r.Top < 0 || r.Right > w || r.Bottom > h {
			return errors.New(errors.ErrCodeInvalidRegion,
				"region %d [%d,%d,%d,%d]: outside %dx%d reference bounds", i, r.Left, r.Top, r.Right, r.Bottom, w, h)
		}
	}
	return nil
}

// opaqueThreshold splits mask pixels into transparent (region) and opaque
// (background). Anything at least half transparent counts as erased, so
// soft eraser edges do not fragment a region.
const opaqueThreshold = 128

// minMaskPixels is the smallest connected component that counts as a
// region. Stray transparent specks from editing are discarded as noise.
const minMaskPixels = 4

// FromMask finds the maximal connected transparent areas of mask and
// returns their bounding rectangles in reading order: top coordinate
// first, left coordinate second. The result is deterministic for a given
// mask. A mask without any transparent region yields an EMPTY_INPUT error.
func FromMask(mask image.Image) ([]Rect, error) {
	img := imaging.Clone(mask)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	transparent := func(x, y int) bool {
		return img.Pix[y*img.Stride+x*4+3] < opaqueThreshold
	}

	visited := make([]bool, w*h)
	var rects []Rect

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !transparent(x, y) {
				continue
			}

			// Flood fill with an explicit worklist; recursion would blow
			// the stack on page-sized regions.
			stack := []image.Point{{X: x, Y: y}}
			visited[y*w+x] = true
			r := Rect{Left: x, Top: y, Right: x + 1, Bottom: y + 1}
			pixels := 0

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels++

				if p.X < r.Left {
					r.Left = p.X
				}
				if p.X+1 > r.Right {
					r.Right = p.X + 1
				}
				if p.Y < r.Top {
					r.Top = p.Y
				}
				if p.Y+1 > r.Bottom {
					r.Bottom = p.Y + 1
				}

				for _, n := range [4]image.Point{{p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y - 1}, {p.X, p.Y + 1}} {
					if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
						continue
					}
					if visited[n.Y*w+n.X] || !transparent(n.X, n.Y) {
						continue
					}
					visited[n.Y*w+n.X] = true
					stack = append(stack, n)
				}
			}

			if pixels >= minMaskPixels {
				rects = append(rects, r)
			}
		}
	}

	if len(rects) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "mask contains no transparent regions")
	}

	slices.SortFunc(rects, func(a, b Rect) int {
		if a.Top != b.Top {
			return a.Top - b.Top
		}
		return a.Left - b.Left
	})

	return rects, nil
}
