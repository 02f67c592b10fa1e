package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwverhey/snipbook/pkg/cache"
	"github.com/cwverhey/snipbook/pkg/meld"
	"github.com/cwverhey/snipbook/pkg/raster"
)

// meldCommand creates the meld command for reducing image stacks.
func (c *CLI) meldCommand() *cobra.Command {
	var (
		output  string
		method  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "meld FILE...",
		Short: "Reduce a stack of images into one by pixel-wise min or max",
		Long: `Reduce a stack of same-sized images into a single image.

Each output pixel takes the per-channel minimum (or maximum) over all
inputs. Scanning the same sheet several times and melding with 'min'
suppresses scanner noise; 'max' recovers light content from dark scans.

All inputs must have identical dimensions. The result is always written
as PNG. Results are cached by input content, so re-running with the same
files is instant.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("method") {
				method = c.Config.Meld.Method
			}
			return c.runMeld(cmd.Context(), args, method, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG filename (required)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().StringVarP(&method, "method", "m", DefaultConfig().Meld.Method, "melding method: min (default), max")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runMeld decodes the inputs, reduces them, and writes the PNG output.
func (c *CLI) runMeld(ctx context.Context, files []string, methodStr, output string, noCache bool) error {
	method, err := meld.ParseMethod(methodStr)
	if err != nil {
		return err
	}

	store := newMeldCache(noCache)
	defer store.Close()

	hashes := make([]string, 0, len(files))
	for _, f := range files {
		h, err := cache.HashFile(f)
		if err != nil {
			return fmt.Errorf("hash %s: %w", f, err)
		}
		hashes = append(hashes, h)
	}
	key := cache.MeldKey(string(method), hashes)

	prog := newProgress(c.Logger)

	var encoded []byte
	cacheHit := false
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		encoded = data
		cacheHit = true
		c.Logger.Debug("meld result served from cache", "key", key)
	}

	if !cacheHit {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Melding %d images...", len(files)))
		spinner.Start()

		images := make([]image.Image, 0, len(files))
		for _, f := range files {
			img, err := raster.DecodeFile(f)
			if err != nil {
				spinner.StopWithError("Meld failed")
				return err
			}
			images = append(images, img)
		}

		combined, err := meld.Reduce(method, images)
		if err != nil {
			spinner.StopWithError("Meld failed")
			return err
		}

		var buf bytes.Buffer
		if err := raster.Encode(&buf, combined, raster.EncodeOptions{Format: raster.PNG, PNGOptimize: true}); err != nil {
			spinner.StopWithError("Meld failed")
			return err
		}
		spinner.Stop()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		encoded = buf.Bytes()
		if err := store.Set(ctx, key, encoded, 0); err != nil {
			c.Logger.Debug("storing meld result failed", "err", err)
		}
	}

	if err := writeNewFile(output, encoded); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Melded %d images with %s", len(files), method))

	printSuccess("Meld complete")
	printFile(output)
	printCacheStatus(cacheHit)
	printNewline()
	printNextStep("Snip", fmt.Sprintf("snipbook snip %s -r MASK.png -o snips/", output))

	return nil
}

// writeNewFile writes data to path, refusing to overwrite an existing file.
func writeNewFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
