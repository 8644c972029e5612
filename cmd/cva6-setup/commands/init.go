package commands

import (
	"github.com/spf13/cobra"

	"github.com/cva6-tools/cva6-setup/cmd/cva6-setup/handlers"
	"github.com/cva6-tools/cva6-setup/internal/config"
)

// Init returns the command that runs the interactive configuration wizard.
//
// The wizard collects the installation paths, build parallelism, toolchain
// configuration name and optional-stage toggles, and writes them to a YAML
// file consumed by 'cva6-setup apply'.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a provisioning configuration interactively",
		Long: `Create a provisioning configuration interactively.

The wizard asks for the CVA6 checkout path, the toolchain install path,
the build thread count and the toolchain configuration name, then writes
the answers to a YAML file.

Examples:
  # Write cva6-setup.yaml in the current directory
  cva6-setup init

  # Write to a custom location
  cva6-setup init -o lab-setup.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Path for the generated configuration file")

	return cmd
}
