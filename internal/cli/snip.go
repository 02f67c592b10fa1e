package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/cwverhey/snipbook/pkg/autocrop"
	"github.com/cwverhey/snipbook/pkg/errors"
	"github.com/cwverhey/snipbook/pkg/raster"
	"github.com/cwverhey/snipbook/pkg/roi"
)

// snipCommand creates the snip command for cutting regions out of scans.
func (c *CLI) snipCommand() *cobra.Command {
	var (
		regions   string
		outputDir string
		crop      string
		tolerance int
		format    string
	)

	cmd := &cobra.Command{
		Use:   "snip FILE...",
		Short: "Cut regions of interest out of each input image",
		Long: `Cut the same regions of interest out of every input image.

Regions come from an inline JSON list "[[left,top,right,bottom], ...]" or
from a PNG mask file whose transparent areas mark the regions. Mask
regions are extracted in reading order (top to bottom, then left to
right).

Each region of each input becomes one output file <input>-<n>.<format>
in the output directory, which is created and must not already exist.
With --crop, each snip is additionally trimmed to its content by removing
the border that matches the crop color within the given tolerance.

Inputs that fail to decode are skipped with a warning; invalid regions
abort the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("crop") {
				crop = c.Config.Snip.Crop
			}
			if !cmd.Flags().Changed("tolerance") {
				tolerance = c.Config.Snip.Tolerance
			}
			if !cmd.Flags().Changed("format") {
				format = c.Config.Snip.Format
			}
			return c.runSnip(cmd.Context(), args, regions, outputDir, crop, tolerance, format)
		},
	}

	cmd.Flags().StringVarP(&regions, "roi", "r", "", `regions of interest: JSON "[[left,top,right,bottom], ...]" or PNG mask file (required)`)
	_ = cmd.MarkFlagRequired("roi")
	cmd.Flags().StringVarP(&outputDir, "outputdir", "o", "", "output directory, created fresh (required)")
	_ = cmd.MarkFlagRequired("outputdir")
	cmd.Flags().StringVarP(&crop, "crop", "c", DefaultConfig().Snip.Crop, "autocrop color: none (default), #rrggbb, auto (top-left pixel)")
	cmd.Flags().IntVarP(&tolerance, "tolerance", "t", DefaultConfig().Snip.Tolerance, "autocrop color tolerance in percent (0-100)")
	cmd.Flags().StringVarP(&format, "format", "f", DefaultConfig().Snip.Format, "output format: png (default), jpeg")

	return cmd
}

// runSnip resolves the regions and cuts them out of every input.
func (c *CLI) runSnip(ctx context.Context, files []string, regionsArg, outputDir, cropStr string, tolerance int, formatStr string) error {
	logger := loggerFromContext(ctx)

	color, err := autocrop.ParseColor(cropStr)
	if err != nil {
		return err
	}
	if err := errors.ValidateTolerance(tolerance); err != nil {
		return err
	}
	format, err := raster.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	rects, err := resolveRegions(regionsArg)
	if err != nil {
		return err
	}
	logger.Debug("regions resolved", "count", len(rects))

	if _, err := os.Stat(outputDir); err == nil {
		return errors.New(errors.ErrCodeIOFailure, "output directory %q already exists", outputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create %s", outputDir)
	}

	prog := newProgress(logger)

	snipped := 0
	skipped := 0
	for _, f := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		img, err := raster.DecodeFile(f)
		if err != nil {
			printWarning("Skipping %s: %v", f, err)
			logger.Warn("input skipped", "file", f, "err", err)
			skipped++
			continue
		}

		bounds := img.Bounds()
		if err := roi.Validate(rects, bounds.Dx(), bounds.Dy()); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}

		base := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		for ri, r := range rects {
			sub := imaging.Crop(img, r.Bounds())

			cropped, _, err := autocrop.Crop(sub, color, tolerance)
			if err != nil {
				return fmt.Errorf("%s region %d: %w", f, ri, err)
			}

			out := filepath.Join(outputDir, fmt.Sprintf("%s-%d.%s", base, ri+1, format.Ext()))
			opts := raster.EncodeOptions{Format: format, PNGOptimize: true}
			if err := raster.EncodeFile(out, cropped, opts); err != nil {
				return err
			}
			printFile(out)
			snipped++
		}
	}

	prog.done(fmt.Sprintf("Snipped %d regions from %d images", snipped, len(files)-skipped))

	if skipped > 0 {
		printWarning("%d of %d inputs skipped", skipped, len(files))
	}
	printSuccess("Snip complete")
	printStats(fmt.Sprintf("%d images", len(files)-skipped), fmt.Sprintf("%d snips", snipped))
	printNewline()
	printNextStep("Merge", fmt.Sprintf("snipbook merge %s -o book.pdf", filepath.Join(outputDir, "*")))

	return nil
}

// resolveRegions interprets the --roi argument: inline JSON if it looks
// like a JSON array, otherwise the path of a PNG mask whose transparent
// areas are the regions.
func resolveRegions(arg string) ([]roi.Rect, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "[") {
		return roi.ParseList([]byte(arg))
	}
	mask, err := raster.DecodeFile(arg)
	if err != nil {
		return nil, err
	}
	return roi.FromMask(mask)
}
