package raster

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwverhey/snipbook/pkg/errors"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 100, A: 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{"jpeg", JPEG, false},
		{"jpg", JPEG, false},
		{"JPEG", JPEG, false},
		{"webp", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeDecodePNG(t *testing.T) {
	src := testImage(8, 6)

	var buf bytes.Buffer
	if err := Encode(&buf, src, EncodeOptions{Format: PNG}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("decoded bounds = %v, want 8x6", img.Bounds())
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(8, 6), EncodeOptions{Format: JPEG, JPEGQuality: 80}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	// JPEG SOI marker
	b := buf.Bytes()
	if len(b) < 2 || b[0] != 0xff || b[1] != 0xd8 {
		t.Error("output does not start with JPEG SOI marker")
	}
}

func TestEncodeFileRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := EncodeFile(path, testImage(4, 4), EncodeOptions{Format: PNG}); err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}

	err := EncodeFile(path, testImage(4, 4), EncodeOptions{Format: PNG})
	if err == nil {
		t.Fatal("EncodeFile() on existing path = nil error, want error")
	}
	if !errors.Is(err, errors.ErrCodeIOFailure) {
		t.Errorf("error code = %q, want IO_FAILURE", errors.GetCode(err))
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("DecodeFile(missing) = nil error, want error")
	}
	if !errors.Is(err, errors.ErrCodeIOFailure) {
		t.Errorf("error code = %q, want IO_FAILURE", errors.GetCode(err))
	}
}

func TestDecodeFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeFile(path); err == nil {
		t.Fatal("DecodeFile(garbage) = nil error, want error")
	}
}
