// Package wizard implements the interactive configuration flow for
// cva6-setup init. One form group per concern, in the order the answers
// feed the pipeline.
package wizard

import (
	"context"
	"fmt"

	"github.com/cva6-tools/cva6-setup/internal/config"
)

// Defaults seeds the wizard with values discovered from the host.
type Defaults struct {
	// GCCVersion is the detected host compiler version, used for the
	// default toolchain configuration name.
	GCCVersion string

	// CPUCount is the number of available processing units.
	CPUCount int
}

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Paths
	RepoPath    string
	InstallPath string

	// Build
	UseAllThreads bool
	Threads       int
	ConfigName    string

	// Optional stages
	BuildDocs     bool
	RunSmokeTests bool
	Simulators    []string
	RegisterShell bool
}

// ToConfig converts the wizard answers into a provisioning config.
func (r *Result) ToConfig() *config.Config {
	return &config.Config{
		RepoPath:    r.RepoPath,
		InstallPath: r.InstallPath,
		Threads:     r.Threads,
		ConfigName:  r.ConfigName,
		Simulators:  r.Simulators,
		Stages: config.StageToggles{
			Docs:         r.BuildDocs,
			SmokeTests:   r.RunSmokeTests,
			ShellProfile: r.RegisterShell,
		},
	}
}

// Run runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func Run(ctx context.Context, defaults Defaults) (*Result, error) {
	result := &Result{
		RepoPath:    "~/cva6",
		InstallPath: "~/riscv",
		Simulators:  config.DefaultSimulators(),
	}

	if err := runPathsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("paths: %w", err)
	}

	if err := runThreadsGroup(ctx, result, defaults); err != nil {
		return nil, fmt.Errorf("threads: %w", err)
	}

	if err := runConfigNameGroup(ctx, result, defaults); err != nil {
		return nil, fmt.Errorf("configuration name: %w", err)
	}

	if err := runOptionalStagesGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("optional stages: %w", err)
	}

	return result, nil
}
