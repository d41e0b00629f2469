package cmd

import (
	"fmt"
	"os"

	"github.com/jsembed/js2c/internal/ui/style"
	"github.com/jsembed/js2c/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "js2c",
	Short:         "Embed JavaScript modules as C arrays",
	Long:          `Convert a set of JavaScript modules into C source and header files for linking into a firmware image.`,
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", style.Fail.Render(style.Cross), style.Fail.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().StringSliceP("modules", "m", []string{}, "Modules to embed, as name=path specs")
	rootCmd.PersistentFlags().String("modules-file", "", "YAML manifest listing the modules to embed")
	rootCmd.PersistentFlags().StringP("buildtype", "b", "", "Build type (debug or release)")
	rootCmd.PersistentFlags().String("snapshot-tool", "", "Path to the external snapshot tool executable")
	rootCmd.PersistentFlags().String("entry-module", "", "Module snapshotted without the CommonJS wrapper")
	rootCmd.PersistentFlags().String("magic-strings-header", "", "Header file seeding the magic string set")
	rootCmd.PersistentFlags().String("magic-string-prefix", "", "Macro prefix of the seed header constants")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory for the generated files")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory holding the payload cache")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the payload cache")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cacheCmd)
}
