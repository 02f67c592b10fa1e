// Package pdfout serializes finished raster pages into a single PDF.
//
// Every page of the output carries identical physical dimensions; the
// page images are expected to already be canvas-sized (see compose), so
// each one covers its page completely.
package pdfout

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/cwverhey/snipbook/pkg/errors"
)

const pointsPerMM = 72.0 / 25.4

// WriteTo writes one PDF page per image in pages to w. Each page measures
// pageWmm x pageHmm millimeters and is covered entirely by its image.
// The readers must yield encoded PNG or JPEG bytes.
func WriteTo(w io.Writer, pages []io.Reader, pageWmm, pageHmm float64) error {
	if len(pages) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no pages to write")
	}
	if pageWmm <= 0 || pageHmm <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "page size %g x %g mm must be positive", pageWmm, pageHmm)
	}

	imp := pdfcpu.Import{
		PageDim: &types.Dim{
			Width:  pageWmm * pointsPerMM,
			Height: pageHmm * pointsPerMM,
		},
		UserDim: true,
		Pos:     types.Full,
		Scale:   1.0,
		InpUnit: types.POINTS,
	}

	if err := api.ImportImages(nil, w, pages, &imp, model.NewDefaultConfiguration()); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write pdf")
	}
	return nil
}

// Write writes the PDF to path. The path must not already exist: finished
// documents are never overwritten. Content is staged under a temporary
// name and renamed into place, so an interrupted run never leaves a
// partial PDF at the target path.
func Write(path string, pages []io.Reader, pageWmm, pageHmm float64) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeIOFailure, "output file %q already exists", path)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString()[:8])
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create %s", tmp)
	}

	if err := WriteTo(f, pages, pageWmm, pageHmm); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "rename %s", path)
	}
	return nil
}
