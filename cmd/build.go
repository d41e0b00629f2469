package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsembed/js2c/internal/build"
	"github.com/jsembed/js2c/internal/cache"
	"github.com/jsembed/js2c/internal/config"
	"github.com/jsembed/js2c/internal/module"
	"github.com/jsembed/js2c/internal/snapshot"
	"github.com/jsembed/js2c/internal/ui/style"
)

var buildCmd = &cobra.Command{
	Use:          "build",
	Short:        "Generate the C artifacts",
	Long:         `Normalize or snapshot the given JavaScript modules and write the generated C source, header and magic string files.`,
	RunE:         runBuild,
	SilenceUsage: true,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd)
	if err != nil {
		return err
	}

	modules, err := collectModules(cmd)
	if err != nil {
		return err
	}

	if len(modules) == 0 {
		return fmt.Errorf("no modules given, use --modules or --modules-file")
	}

	b := &build.Build{Config: cfg}

	if cfg.SnapshotMode() {
		b.Tool = snapshot.NewExecTool(cfg.SnapshotTool)
	}

	if !cfg.NoCache {
		store, err := cache.New(cfg.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache disabled: %v\n", err)
		} else {
			b.Cache = store
			defer store.Close()
		}
	}

	if err := b.Run(modules); err != nil {
		return err
	}

	fmt.Printf("%s Embedded %d modules into %s\n", style.Success.Render(style.Check), len(modules), cfg.OutputDir)

	return nil
}

// collectModules merges the --modules flag specs with the --modules-file
// manifest, flag specs first.
func collectModules(cmd *cobra.Command) ([]module.Module, error) {
	specs, err := cmd.Flags().GetStringSlice("modules")
	if err != nil {
		return nil, err
	}

	modules, err := module.ParseSpecs(specs)
	if err != nil {
		return nil, err
	}

	manifestPath, err := cmd.Flags().GetString("modules-file")
	if err != nil {
		return nil, err
	}

	if manifestPath != "" {
		fromManifest, err := module.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}

		modules = append(modules, fromManifest...)
	}

	return modules, nil
}
