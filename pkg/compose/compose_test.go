package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/cwverhey/snipbook/pkg/pagelayout"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPageCentersSource(t *testing.T) {
	plan := pagelayout.PagePlan{CanvasW: 200, CanvasH: 200}
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	out := Page(solid(100, 50, black), plan, false)

	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 200 {
		t.Fatalf("canvas = %v, want 200x200", out.Bounds())
	}

	// Source occupies [50,150) x [75,125).
	if got := out.NRGBAAt(50, 75); got != black {
		t.Errorf("pixel at source origin = %v, want black", got)
	}
	if got := out.NRGBAAt(149, 124); got != black {
		t.Errorf("pixel at source far corner = %v, want black", got)
	}
	for _, p := range []image.Point{{49, 75}, {150, 75}, {50, 74}, {50, 125}, {0, 0}, {199, 199}} {
		if got := out.NRGBAAt(p.X, p.Y); got != white {
			t.Errorf("background pixel %v = %v, want white", p, got)
		}
	}
}

func TestPageExpandFillsCanvas(t *testing.T) {
	plan := pagelayout.PagePlan{CanvasW: 120, CanvasH: 80}
	red := color.NRGBA{R: 200, A: 255}

	out := Page(solid(30, 20, red), plan, true)

	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 80 {
		t.Fatalf("canvas = %v, want 120x80", out.Bounds())
	}
	// Corners belong to the stretched source, not background.
	for _, p := range []image.Point{{0, 0}, {119, 0}, {0, 79}, {119, 79}} {
		got := out.NRGBAAt(p.X, p.Y)
		if got.R < 150 || got.G > 50 {
			t.Errorf("corner %v = %v, want stretched source color", p, got)
		}
	}
}

func TestPageSourceAsLargeAsCanvas(t *testing.T) {
	plan := pagelayout.PagePlan{CanvasW: 64, CanvasH: 64}
	blue := color.NRGBA{B: 255, A: 255}

	out := Page(solid(64, 64, blue), plan, false)

	if got := out.NRGBAAt(0, 0); got != blue {
		t.Errorf("pixel (0,0) = %v, want blue", got)
	}
	if got := out.NRGBAAt(63, 63); got != blue {
		t.Errorf("pixel (63,63) = %v, want blue", got)
	}
}
