package pagelayout

import (
	"math"
	"testing"

	"github.com/cwverhey/snipbook/pkg/errors"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    SizePolicy
		wantErr bool
	}{
		{"auto", SizePolicy{Auto: true}, false},
		{"AUTO", SizePolicy{Auto: true}, false},
		{"A4", SizePolicy{W: 210, H: 297}, false},
		{"a4", SizePolicy{W: 210, H: 297}, false},
		{"A5", SizePolicy{W: 148, H: 210}, false},
		{"letter", SizePolicy{W: 215.9, H: 279.4}, false},
		{"legal", SizePolicy{W: 215.9, H: 355.6}, false},
		{"[123,456]", SizePolicy{W: 123, H: 456}, false},
		{"[100.5, 200.25]", SizePolicy{W: 100.5, H: 200.25}, false},
		{"[0,100]", SizePolicy{}, true},
		{"[-10,100]", SizePolicy{}, true},
		{"[100]", SizePolicy{}, true},
		{"[1,2,3]", SizePolicy{}, true},
		{"A9", SizePolicy{}, true},
		{"", SizePolicy{}, true},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidSize) {
				t.Errorf("ParseSize(%q) code = %q, want INVALID_SIZE", tt.in, errors.GetCode(err))
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlanAutoIndependentAxes(t *testing.T) {
	// The widest and the tallest input are different images; the canvas
	// takes the max of each axis independently.
	dims := []Dim{{W: 100, H: 200}, {W: 150, H: 100}}

	plan, err := Plan(dims, Options{MarginMM: 0, Size: SizePolicy{Auto: true}, DPI: 100})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if plan.CanvasW != 150 || plan.CanvasH != 200 {
		t.Errorf("canvas = %dx%d, want 150x200", plan.CanvasW, plan.CanvasH)
	}
	if want := 100.0 / 25.4; math.Abs(plan.Scale-want) > 1e-9 {
		t.Errorf("Scale = %v, want %v", plan.Scale, want)
	}
	if math.Abs(plan.DPI()-100) > 1e-9 {
		t.Errorf("DPI() = %v, want 100", plan.DPI())
	}
}

func TestPlanAutoMargin(t *testing.T) {
	// 20mm at 72dpi is 56.69 px, floored to 56.
	plan, err := Plan([]Dim{{W: 1000, H: 500}}, Options{MarginMM: 20, Size: SizePolicy{Auto: true}, DPI: 72})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if plan.MarginPx != 56 {
		t.Errorf("MarginPx = %d, want 56", plan.MarginPx)
	}
	if plan.CanvasW != 1000+2*56 || plan.CanvasH != 500+2*56 {
		t.Errorf("canvas = %dx%d, want %dx%d", plan.CanvasW, plan.CanvasH, 1112, 612)
	}
	// Page mm dimensions must match canvas px at the plan scale.
	if want := float64(plan.CanvasW) / plan.Scale; math.Abs(plan.PageW-want) > 1e-9 {
		t.Errorf("PageW = %v, want %v", plan.PageW, want)
	}
}

func TestPlanFixedSizeDerivesScale(t *testing.T) {
	// A4 portrait, 20mm margins: content area 170 x 257 mm. A 1700x1000 px
	// input needs 10 px/mm on the width axis, which governs.
	plan, err := Plan([]Dim{{W: 1700, H: 1000}}, Options{
		MarginMM: 20,
		Size:     SizePolicy{W: 210, H: 297},
		DPI:      72, // ignored in fixed mode
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if math.Abs(plan.Scale-10) > 1e-9 {
		t.Errorf("Scale = %v, want 10", plan.Scale)
	}
	if plan.PageW != 210 || plan.PageH != 297 {
		t.Errorf("page = %gx%g mm, want 210x297", plan.PageW, plan.PageH)
	}
	if plan.CanvasW != 2100 || plan.CanvasH != 2970 {
		t.Errorf("canvas = %dx%d, want 2100x2970", plan.CanvasW, plan.CanvasH)
	}

	// The planned inputs always fit their own plan.
	if err := plan.Validate([]Dim{{W: 1700, H: 1000}}); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestPlanFixedHeightGoverns(t *testing.T) {
	// Content area 170 x 257 mm; a tall input forces the height axis to govern.
	plan, err := Plan([]Dim{{W: 170, H: 2570}}, Options{
		MarginMM: 20,
		Size:     SizePolicy{W: 210, H: 297},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if math.Abs(plan.Scale-10) > 1e-9 {
		t.Errorf("Scale = %v, want 10", plan.Scale)
	}
}

func TestPlanEmptyInput(t *testing.T) {
	_, err := Plan(nil, Options{Size: SizePolicy{Auto: true}, DPI: 72})
	if !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("Plan(nil) code = %q, want EMPTY_INPUT", errors.GetCode(err))
	}
}

func TestPlanMarginSwallowsPage(t *testing.T) {
	_, err := Plan([]Dim{{W: 100, H: 100}}, Options{
		MarginMM: 110,
		Size:     SizePolicy{W: 210, H: 297},
	})
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("Plan() code = %q, want INVALID_SIZE", errors.GetCode(err))
	}
}

func TestPlanInvalidOptions(t *testing.T) {
	dims := []Dim{{W: 10, H: 10}}

	if _, err := Plan(dims, Options{MarginMM: -1, Size: SizePolicy{Auto: true}, DPI: 72}); err == nil {
		t.Error("negative margin accepted")
	}
	if _, err := Plan(dims, Options{Size: SizePolicy{Auto: true}, DPI: 0}); err == nil {
		t.Error("zero dpi accepted under auto sizing")
	}
}

func TestValidateOversized(t *testing.T) {
	plan, err := Plan([]Dim{{W: 1000, H: 1000}}, Options{
		MarginMM: 20,
		Size:     SizePolicy{W: 210, H: 297},
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	err = plan.Validate([]Dim{{W: 1000, H: 1000}, {W: 5000, H: 100}})
	if !errors.Is(err, errors.ErrCodeOversizedInput) {
		t.Errorf("Validate() code = %q, want OVERSIZED_INPUT", errors.GetCode(err))
	}
}

func TestPlacementCentered(t *testing.T) {
	plan := PagePlan{CanvasW: 200, CanvasH: 200}

	got := plan.Placement(Dim{W: 100, H: 50}, false)
	want := Placement{OffsetX: 50, OffsetY: 75, W: 100, H: 50}
	if got != want {
		t.Errorf("Placement() = %+v, want %+v", got, want)
	}
}

func TestPlacementExpand(t *testing.T) {
	plan := PagePlan{CanvasW: 300, CanvasH: 400}

	got := plan.Placement(Dim{W: 100, H: 50}, true)
	want := Placement{OffsetX: 0, OffsetY: 0, W: 300, H: 400}
	if got != want {
		t.Errorf("Placement() = %+v, want %+v", got, want)
	}
}
