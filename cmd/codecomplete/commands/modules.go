package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/teranos/codecomplete/buildmanifest"
	"github.com/teranos/codecomplete/config"
	"github.com/teranos/codecomplete/errors"
)

// ModulesCmd lists the modules usable with complete --module
var ModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List Swift package modules available to --module",
	Long: `List the module names found in the package's build manifest
(build.package_path/build.manifest, .build/debug.yaml by default).`,
	RunE: runModules,
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	r := buildmanifest.NewResolver(afero.NewOsFs(), cfg.Build.PackagePath, cfg.Build.Manifest)
	names, err := r.Modules()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
