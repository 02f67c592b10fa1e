package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cwverhey/snipbook/pkg/autocrop"
	"github.com/cwverhey/snipbook/pkg/pagelayout"
	"github.com/cwverhey/snipbook/pkg/raster"
)

// Config holds per-command defaults loaded from the optional TOML config
// file. Flags given on the command line take precedence over config values.
type Config struct {
	Meld  MeldConfig  `toml:"meld"`
	Snip  SnipConfig  `toml:"snip"`
	Merge MergeConfig `toml:"merge"`
}

// MeldConfig holds defaults for the meld command.
type MeldConfig struct {
	Method string `toml:"method"`
}

// SnipConfig holds defaults for the snip command.
type SnipConfig struct {
	Crop      string `toml:"crop"`
	Tolerance int    `toml:"tolerance"`
	Format    string `toml:"format"`
}

// MergeConfig holds defaults for the merge command.
type MergeConfig struct {
	MarginMM float64 `toml:"margin"`
	Size     string  `toml:"size"`
	DPI      int     `toml:"dpi"`
	Format   string  `toml:"format"`
	Quality  int     `toml:"quality"`
}

// DefaultConfig returns the built-in defaults used when no config file
// overrides them.
func DefaultConfig() Config {
	return Config{
		Meld: MeldConfig{
			Method: "min",
		},
		Snip: SnipConfig{
			Crop:      "none",
			Tolerance: autocrop.DefaultTolerance,
			Format:    "png",
		},
		Merge: MergeConfig{
			MarginMM: pagelayout.DefaultMarginMM,
			Size:     "auto",
			DPI:      pagelayout.DefaultDPI,
			Format:   "jpeg",
			Quality:  raster.DefaultJPEGQuality,
		},
	}
}

// LoadConfig reads the TOML config file at path on top of the built-in
// defaults. An empty path means the default XDG location, in which case a
// missing file is not an error; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
