package commands

import (
	"github.com/spf13/cobra"

	"github.com/cva6-tools/cva6-setup/cmd/cva6-setup/handlers"
)

// Doctor returns the command that diagnoses the provisioning environment.
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host tools and provisioning state",
		Long: `Check host tools and provisioning state.

Reports which required host tools are available, the detected compiler
version and CPU count, and - when a configuration file is present - the
read-only state of each idempotent stage: missing OS packages, patch
status, virtual environment and shell-profile registration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cva6-setup.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
