package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultBuildType         = "debug"
	DefaultEntryModule       = "iotjs"
	DefaultMagicStringPrefix = "IOTJS_MAGIC_STRING"
	DefaultOutputDir         = "."
)

// Holds the configuration options for js2c
type Config struct {
	// Build type: "debug" embeds source verbatim, "release" strips
	// comments and blank lines
	BuildType string

	// Path to the external snapshot tool executable; empty selects the
	// no-snapshot mode entirely
	SnapshotTool string

	// Name of the module snapshotted without the CommonJS wrapper
	EntryModule string

	// Header file seeding the magic string set
	MagicStringsHeader string

	// Macro prefix of the seed header constants
	MagicStringPrefix string

	// Directory receiving the generated artifacts
	OutputDir string

	// Directory holding the payload cache
	CacheDir string

	// Disable the payload cache
	NoCache bool

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		BuildType:          viper.GetString("buildtype"),
		SnapshotTool:       viper.GetString("snapshot_tool"),
		EntryModule:        viper.GetString("entry_module"),
		MagicStringsHeader: viper.GetString("magic_strings_header"),
		MagicStringPrefix:  viper.GetString("magic_string_prefix"),
		OutputDir:          viper.GetString("output"),
		CacheDir:           viper.GetString("cache_dir"),
		NoCache:            viper.GetBool("no_cache"),
		Verbose:            viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.BuildType == "" {
		cfg.BuildType = DefaultBuildType
	}

	if cfg.EntryModule == "" {
		cfg.EntryModule = DefaultEntryModule
	}

	if cfg.MagicStringPrefix == "" {
		cfg.MagicStringPrefix = DefaultMagicStringPrefix
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SnapshotMode reports whether the build goes through the external snapshot
// tool rather than embedding (normalized) source text.
func (c *Config) SnapshotMode() bool {
	return c.SnapshotTool != ""
}

func (c *Config) Validate() error {
	if c.BuildType != "debug" && c.BuildType != "release" {
		return fmt.Errorf("invalid buildtype: %s (expected debug or release)", c.BuildType)
	}

	if abs, err := filepath.Abs(c.OutputDir); err == nil {
		c.OutputDir = abs
	}

	if c.SnapshotTool != "" {
		abs, err := filepath.Abs(c.SnapshotTool)
		if err != nil {
			return fmt.Errorf("invalid snapshot tool path: %v", err)
		}

		c.SnapshotTool = abs
	}

	if c.MagicStringsHeader != "" {
		abs, err := filepath.Abs(c.MagicStringsHeader)
		if err != nil {
			return fmt.Errorf("invalid magic strings header path: %v", err)
		}

		c.MagicStringsHeader = abs
	}

	return nil
}
