// Package compose assembles source images into canvas-sized output pages
// according to a shared page plan.
package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/cwverhey/snipbook/pkg/pagelayout"
)

// Page renders img onto one plan-sized canvas.
//
// Default placement centers the source on a white canvas, leaving the
// plan's margins (and more, for smaller inputs) as background. Expand
// placement stretches the source to exactly fill the canvas, margins
// included; aspect ratio is not preserved if the source deviates from the
// canvas shape. In practice sources match the canvas aspect because the
// plan derives from them, so the stretch is invisible.
//
// The plan is read-only shared state: composing pages is independent per
// page and safe to run concurrently once the plan exists.
func Page(img image.Image, plan pagelayout.PagePlan, expand bool) *image.NRGBA {
	if expand {
		return imaging.Resize(img, plan.CanvasW, plan.CanvasH, imaging.Lanczos)
	}

	canvas := imaging.New(plan.CanvasW, plan.CanvasH, color.White)
	pl := plan.Placement(pagelayout.Dim{W: img.Bounds().Dx(), H: img.Bounds().Dy()}, false)
	return imaging.Paste(canvas, img, image.Pt(pl.OffsetX, pl.OffsetY))
}
