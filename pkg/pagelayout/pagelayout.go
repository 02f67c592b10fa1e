// Package pagelayout computes the shared page geometry for a merge run.
//
// A run produces exactly one PagePlan: a canvas size in pixels, the
// physical page size in millimeters, and a single scale relating the two.
// Every page of the output PDF uses the same plan, which is what makes
// the finished document dimensionally uniform regardless of how the
// snipped inputs vary in size.
package pagelayout

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cwverhey/snipbook/pkg/errors"
)

// mmPerInch converts between dpi and the metric page world.
const mmPerInch = 25.4

// DefaultMarginMM is the default page margin.
const DefaultMarginMM = 20.0

// DefaultDPI is the default resolution for auto-sized pages.
const DefaultDPI = 72

// PageSizes lists the named paper sizes, in mm (width, height).
var PageSizes = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// PageSizeNames returns the named paper sizes for help text, in a fixed
// order.
func PageSizeNames() []string {
	return []string{"A4", "A5", "letter", "legal"}
}

// SizePolicy is the requested page size: auto (derived from the largest
// input plus margins) or a fixed size in mm.
type SizePolicy struct {
	Auto bool
	W, H float64 // mm, set when !Auto
}

// String renders the policy the way it is written on the command line.
func (s SizePolicy) String() string {
	if s.Auto {
		return "auto"
	}
	return fmt.Sprintf("[%g,%g]", s.W, s.H)
}

// ParseSize parses a page size argument: "auto", a named paper size, or
// an explicit "[width,height]" pair in mm.
func ParseSize(s string) (SizePolicy, error) {
	if strings.EqualFold(s, "auto") {
		return SizePolicy{Auto: true}, nil
	}

	for name, dim := range PageSizes {
		if strings.EqualFold(s, name) {
			return SizePolicy{W: dim[0], H: dim[1]}, nil
		}
	}

	var pair []float64
	if err := json.Unmarshal([]byte(s), &pair); err == nil && len(pair) == 2 {
		if pair[0] <= 0 || pair[1] <= 0 {
			return SizePolicy{}, errors.New(errors.ErrCodeInvalidSize,
				"page size %q: dimensions must be positive", s)
		}
		return SizePolicy{W: pair[0], H: pair[1]}, nil
	}

	return SizePolicy{}, errors.New(errors.ErrCodeInvalidSize,
		"unknown page size %q (want auto, %s, or \"[w,h]\" in mm)", s, strings.Join(PageSizeNames(), ", "))
}

// Dim is an image size in pixels.
type Dim struct {
	W, H int
}

// Options configure plan computation.
type Options struct {
	MarginMM float64    // margin on every page edge
	Size     SizePolicy // auto or fixed page size
	DPI      int        // used only under auto sizing
}

// PagePlan is the immutable shared geometry of one merge run.
type PagePlan struct {
	CanvasW, CanvasH int     // output raster size, px
	Scale            float64 // px per mm
	PageW, PageH     float64 // physical page size, mm
	MarginPx         int     // margin converted to px
}

// Plan computes the single page plan for the given input dimensions.
//
// Under auto sizing the scale is exactly the configured dpi and the canvas
// wraps the per-axis maximum input plus margins; the widest and tallest
// input need not be the same image. Under fixed sizing the page dimensions
// are given and the scale is derived instead: the smallest px-per-mm at
// which the largest inputs still fit inside the margins, taken per axis,
// with the larger requirement governing both.
func Plan(dims []Dim, opts Options) (PagePlan, error) {
	if len(dims) == 0 {
		return PagePlan{}, errors.New(errors.ErrCodeEmptyInput, "no input dimensions to plan")
	}
	if err := errors.ValidateMargin(opts.MarginMM); err != nil {
		return PagePlan{}, err
	}

	var maxW, maxH int
	for _, d := range dims {
		if d.W > maxW {
			maxW = d.W
		}
		if d.H > maxH {
			maxH = d.H
		}
	}

	if opts.Size.Auto {
		if err := errors.ValidateDPI(opts.DPI); err != nil {
			return PagePlan{}, err
		}
		scale := float64(opts.DPI) / mmPerInch
		marginPx := int(opts.MarginMM * scale)
		canvasW := maxW + 2*marginPx
		canvasH := maxH + 2*marginPx
		return PagePlan{
			CanvasW:  canvasW,
			CanvasH:  canvasH,
			Scale:    scale,
			PageW:    float64(canvasW) / scale,
			PageH:    float64(canvasH) / scale,
			MarginPx: marginPx,
		}, nil
	}

	availW := opts.Size.W - 2*opts.MarginMM
	availH := opts.Size.H - 2*opts.MarginMM
	if availW <= 0 || availH <= 0 {
		return PagePlan{}, errors.New(errors.ErrCodeInvalidSize,
			"margin %g mm leaves no room on a %g x %g mm page", opts.MarginMM, opts.Size.W, opts.Size.H)
	}

	// The larger required scale governs, so no input is forced below the
	// margin-respecting fit on either axis.
	scale := math.Max(float64(maxW)/availW, float64(maxH)/availH)
	return PagePlan{
		// Ceil on the canvas and floor on the margin keep the content area
		// at least as large as the true fit despite rounding.
		CanvasW:  int(math.Ceil(opts.Size.W * scale)),
		CanvasH:  int(math.Ceil(opts.Size.H * scale)),
		Scale:    scale,
		PageW:    opts.Size.W,
		PageH:    opts.Size.H,
		MarginPx: int(opts.MarginMM * scale),
	}, nil
}

// Validate checks the actual input dimensions against the plan. Plans are
// often computed from the same dimensions they compose, in which case this
// always passes; it exists for callers that plan against a nominal
// estimate and must catch inputs that exceed the canvas content area.
func (p PagePlan) Validate(dims []Dim) error {
	availW := p.CanvasW - 2*p.MarginPx
	availH := p.CanvasH - 2*p.MarginPx
	for i, d := range dims {
		if d.W > availW || d.H > availH {
			return errors.New(errors.ErrCodeOversizedInput,
				"input %d is %dx%d px, exceeds the %dx%d px content area", i, d.W, d.H, availW, availH)
		}
	}
	return nil
}

// DPI returns the plan's effective resolution.
func (p PagePlan) DPI() float64 {
	return p.Scale * mmPerInch
}

// Placement is the position and size of one image on its canvas.
type Placement struct {
	OffsetX, OffsetY int
	W, H             int
}

// Placement positions an image of size d on the canvas: centered by
// default, or covering the full canvas when expand is set.
func (p PagePlan) Placement(d Dim, expand bool) Placement {
	if expand {
		return Placement{W: p.CanvasW, H: p.CanvasH}
	}
	return Placement{
		OffsetX: (p.CanvasW - d.W) / 2,
		OffsetY: (p.CanvasH - d.H) / 2,
		W:       d.W,
		H:       d.H,
	}
}
