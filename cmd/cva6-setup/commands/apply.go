package commands

import (
	"github.com/spf13/cobra"

	"github.com/cva6-tools/cva6-setup/cmd/cva6-setup/handlers"
)

// Apply returns the command that runs the provisioning pipeline.
//
// Optional flags:
//
//	--config, -c: Path to the provisioning YAML file (default: cva6-setup.yaml)
//	--yes, -y:    Answer optional-stage prompts from the config file instead
//	              of asking interactively
func Apply() *cobra.Command {
	var configPath string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Provision the toolchain and verification environment",
		Long: `Provision the toolchain and verification environment.

Runs the full pipeline: OS packages, submodules, toolchain sources and
patch, the delegated toolchain build, and the Python virtual environment.
Documentation, smoke tests and shell-profile registration are confirmed
individually before they run.

Every stage checks its own preconditions, so apply is safe to rerun:
installed packages, an applied patch, an existing virtual environment and
a registered profile block are all skipped.

Examples:
  # Provision using cva6-setup.yaml in the current directory
  cva6-setup apply

  # Provision using a specific config, no interactive confirmations
  cva6-setup apply -c lab-setup.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, assumeYes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cva6-setup.yaml)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Use the optional-stage toggles from the config file without prompting")

	return cmd
}
