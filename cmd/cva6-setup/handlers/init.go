// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/config/wizard"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
	"github.com/cva6-tools/cva6-setup/internal/util/hostinfo"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// detectGCCVersion discovers the host compiler version.
	detectGCCVersion = func(ctx context.Context) string {
		return hostinfo.GCCVersion(ctx, execx.NewExecRunner())
	}

	// detectCPUCount discovers the usable processing units.
	detectCPUCount = hostinfo.CPUCount

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// writeConfig writes the config to a file.
	writeConfig = config.WriteFile
)

// Init discovers host defaults, runs the configuration wizard and writes
// the result to a YAML file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	defaults := wizard.Defaults{
		GCCVersion: detectGCCVersion(ctx),
		CPUCount:   detectCPUCount(),
	}

	result, err := runWizard(ctx, defaults)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()
	if err := cfg.Normalize(); err != nil {
		return fmt.Errorf("invalid wizard answers: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("cva6-setup - CVA6 toolchain provisioning")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("This wizard creates a provisioning configuration with host-derived defaults.")
	fmt.Println("Answer a few questions about paths, build parallelism and optional stages.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Provisioning Summary")
	fmt.Println("--------------------")
	fmt.Printf("  Checkout:       %s\n", cfg.RepoPath)
	fmt.Printf("  Install to:     %s\n", cfg.InstallPath)
	fmt.Printf("  Build threads:  %d\n", cfg.Threads)
	fmt.Printf("  Configuration:  %s\n", cfg.ConfigName)
	fmt.Printf("  Docs:           %s\n", enabledWord(cfg.Stages.Docs))
	fmt.Printf("  Smoke tests:    %s\n", enabledWord(cfg.Stages.SmokeTests))
	fmt.Printf("  Shell profile:  %s\n", enabledWord(cfg.Stages.ShellProfile))
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Provision the toolchain:")
	fmt.Println("     cva6-setup apply")
	fmt.Println()
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
