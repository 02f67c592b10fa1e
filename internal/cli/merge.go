package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwverhey/snipbook/pkg/compose"
	"github.com/cwverhey/snipbook/pkg/errors"
	"github.com/cwverhey/snipbook/pkg/pagelayout"
	"github.com/cwverhey/snipbook/pkg/pdfout"
	"github.com/cwverhey/snipbook/pkg/raster"
)

// mergeCommand creates the merge command for composing images into a PDF.
func (c *CLI) mergeCommand() *cobra.Command {
	var (
		output  string
		margin  float64
		size    string
		dpi     int
		expand  []int
		format  string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Compose images onto uniform pages and write a single PDF",
		Long: `Compose the input images onto pages of a single uniform size and
write them as one PDF, one image per page, in argument order.

The page size is either derived from the largest input plus margins
(size 'auto', using --dpi to convert pixels to mm) or fixed: a named
paper size (` + strings.Join(pagelayout.PageSizeNames(), ", ") + `) or explicit
"[width,height]" in mm. Under a fixed size the resolution is derived so
the largest input exactly fits inside the margins; inputs too large for
the page abort the run.

Images are centered on a white canvas. Pages named with --expand (by
1-based position) are instead stretched to fill the full page with no
margin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("margin") {
				margin = c.Config.Merge.MarginMM
			}
			if !cmd.Flags().Changed("size") {
				size = c.Config.Merge.Size
			}
			if !cmd.Flags().Changed("dpi") {
				dpi = c.Config.Merge.DPI
			}
			if !cmd.Flags().Changed("format") {
				format = c.Config.Merge.Format
			}
			if !cmd.Flags().Changed("quality") {
				quality = c.Config.Merge.Quality
			}
			return c.runMerge(cmd.Context(), args, output, margin, size, dpi, expand, format, quality)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF filename (required)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().Float64VarP(&margin, "margin", "m", DefaultConfig().Merge.MarginMM, "margin around each image in mm")
	cmd.Flags().StringVarP(&size, "size", "s", DefaultConfig().Merge.Size, `page size: auto, a paper name, or "[width,height]" in mm`)
	cmd.Flags().IntVarP(&dpi, "dpi", "d", DefaultConfig().Merge.DPI, "resolution for auto page sizing (ignored for fixed sizes)")
	cmd.Flags().IntSliceVarP(&expand, "expand", "e", nil, "1-based page numbers to expand to the full page, without margin")
	cmd.Flags().StringVarP(&format, "format", "f", DefaultConfig().Merge.Format, "page raster format inside the PDF: jpeg (default), png")
	cmd.Flags().IntVar(&quality, "quality", DefaultConfig().Merge.Quality, "jpeg quality (1-100)")

	return cmd
}

// runMerge plans the shared page geometry, composes every page, and
// writes the PDF.
func (c *CLI) runMerge(ctx context.Context, files []string, output string, margin float64, sizeStr string, dpi int, expand []int, formatStr string, quality int) error {
	logger := loggerFromContext(ctx)

	size, err := pagelayout.ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if err := errors.ValidateDPI(dpi); err != nil {
		return err
	}
	format, err := raster.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	expanded := make(map[int]bool, len(expand))
	for _, page := range expand {
		if page < 1 || page > len(files) {
			return errors.New(errors.ErrCodeInvalidInput, "expand page %d out of range 1-%d", page, len(files))
		}
		expanded[page] = true
	}

	prog := newProgress(logger)

	images := make([]*decodedInput, 0, len(files))
	dims := make([]pagelayout.Dim, 0, len(files))
	for _, f := range files {
		img, err := raster.DecodeFile(f)
		if err != nil {
			return err
		}
		b := img.Bounds()
		images = append(images, &decodedInput{path: f, img: img})
		dims = append(dims, pagelayout.Dim{W: b.Dx(), H: b.Dy()})
	}

	plan, err := pagelayout.Plan(dims, pagelayout.Options{
		MarginMM: margin,
		Size:     size,
		DPI:      dpi,
	})
	if err != nil {
		return err
	}
	if err := plan.Validate(dims); err != nil {
		return err
	}
	logger.Debug("page plan computed",
		"canvas", fmt.Sprintf("%dx%d px", plan.CanvasW, plan.CanvasH),
		"page", fmt.Sprintf("%.1fx%.1f mm", plan.PageW, plan.PageH),
		"dpi", fmt.Sprintf("%.1f", plan.DPI()))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Composing %d pages...", len(images)))
	spinner.Start()

	opts := raster.EncodeOptions{Format: format, JPEGQuality: quality, PNGOptimize: true}
	pages := make([]io.Reader, 0, len(images))
	for i, in := range images {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}

		canvas := compose.Page(in.img, plan, expanded[i+1])

		var buf bytes.Buffer
		if err := raster.Encode(&buf, canvas, opts); err != nil {
			spinner.StopWithError("Merge failed")
			return fmt.Errorf("%s: %w", in.path, err)
		}
		pages = append(pages, &buf)
	}

	if err := pdfout.Write(output, pages, plan.PageW, plan.PageH); err != nil {
		spinner.StopWithError("Merge failed")
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Merged %d pages", len(images)))

	printSuccess("Merge complete")
	printFile(output)
	printStats(
		fmt.Sprintf("%d pages", len(images)),
		fmt.Sprintf("%.0f x %.0f mm", plan.PageW, plan.PageH),
		fmt.Sprintf("%.0f dpi", plan.DPI()),
	)

	return nil
}

// decodedInput pairs a decoded image with its source path for error reporting.
type decodedInput struct {
	path string
	img  image.Image
}
