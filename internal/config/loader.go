package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForBuild loads configuration specifically for build operations
func (l *Loader) LoadForBuild(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("buildtype", DefaultBuildType)
	viper.SetDefault("entry_module", DefaultEntryModule)
	viper.SetDefault("magic_string_prefix", DefaultMagicStringPrefix)
	viper.SetDefault("output", DefaultOutputDir)
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return
	}

	globalDir := filepath.Join(configDir, "js2c")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads local configuration from the working directory upward
func (l *Loader) loadLocalConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return // silently ignore, Load() will handle validation
	}

	localPath := FindLocalConfig(cwd)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.ReadInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("buildtype", cmd.Flags().Lookup("buildtype"))
	_ = viper.BindPFlag("snapshot_tool", cmd.Flags().Lookup("snapshot-tool"))
	_ = viper.BindPFlag("entry_module", cmd.Flags().Lookup("entry-module"))
	_ = viper.BindPFlag("magic_strings_header", cmd.Flags().Lookup("magic-strings-header"))
	_ = viper.BindPFlag("magic_string_prefix", cmd.Flags().Lookup("magic-string-prefix"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("no_cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
}
