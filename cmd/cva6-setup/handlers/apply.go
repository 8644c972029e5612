package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/provisioning"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
	"github.com/cva6-tools/cva6-setup/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// checkBuildPrereqs runs prerequisite checks against the build tools.
	checkBuildPrereqs = func() *prerequisites.CheckResults {
		return prerequisites.Check(prerequisites.BuildTools())
	}

	// newRunner creates the subprocess runner used by the pipeline.
	newRunner = func() execx.Runner {
		return execx.NewExecRunner()
	}

	// runPipeline executes the provisioning phases.
	runPipeline = func(ctx *provisioning.Context) error {
		return provisioning.RunPhases(ctx, provisioning.DefaultPhases())
	}

	// isInteractiveTTY reports whether stdout is an interactive terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// Apply provisions the CVA6 toolchain and verification environment.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the configuration (default: cva6-setup.yaml)
//  2. Verifies the required host tools are on PATH
//  3. Runs the phase pipeline: OS packages, submodules, toolchain fetch,
//     patch, delegated build, Python virtual environment, then the
//     confirmed optional stages
//
// Optional stages are confirmed interactively on a TTY; with --yes or on a
// non-interactive stdout the stage toggles from the config file answer
// instead. Every phase checks its own preconditions, so a rerun after a
// failure resumes without repeating completed work.
func Apply(ctx context.Context, configPath string, assumeYes bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(); err != nil {
		return err
	}

	log.Printf("Provisioning toolchain configuration: %s", cfg.ConfigName)

	confirmer := selectConfirmer(cfg, assumeYes)
	pctx := provisioning.NewContext(ctx, cfg, newRunner(), confirmer)

	if err := runPipeline(pctx); err != nil {
		return err
	}

	printApplySuccess(cfg, pctx.State)
	return nil
}

// loadConfig loads and validates the provisioning configuration.
// If configPath is empty, it looks for cva6-setup.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		if !fileExists(config.DefaultConfigFile) {
			return nil, fmt.Errorf("no config file found: %s\nRun 'cva6-setup init' to create one", config.DefaultConfigFile)
		}
		configPath = config.DefaultConfigFile
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// checkPrerequisites verifies required host tools are available.
func checkPrerequisites() error {
	log.Println("Checking prerequisites...")
	results := checkBuildPrereqs()

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	return nil
}

// selectConfirmer decides how optional-stage confirmations are answered.
// Interactive prompts require a TTY and no --yes; otherwise the config
// toggles decide.
func selectConfirmer(cfg *config.Config, assumeYes bool) provisioning.Confirmer {
	if !assumeYes && isInteractiveTTY() {
		return provisioning.InteractiveConfirmer{}
	}
	return provisioning.FromToggles(cfg.Stages.Docs, cfg.Stages.SmokeTests, cfg.Stages.ShellProfile)
}

// printApplySuccess outputs completion message and next steps for the user.
func printApplySuccess(cfg *config.Config, state *provisioning.State) {
	fmt.Printf("\nProvisioning complete!\n")
	fmt.Printf("Toolchain installed to: %s\n", cfg.InstallPath)
	fmt.Printf("Virtual environment:    %s\n", cfg.VenvPath())

	if len(state.Skipped) > 0 {
		fmt.Printf("Skipped stages:         %s\n", strings.Join(state.Skipped, ", "))
	}

	fmt.Printf("\nTo use the toolchain in this shell:\n")
	fmt.Printf("  export RISCV=%s\n", cfg.InstallPath)
	fmt.Printf("  export PATH=\"$RISCV/bin:$PATH\"\n")

	if state.ProfileModified {
		fmt.Printf("\nNew shells pick this up from your profile automatically.\n")
	}
}
