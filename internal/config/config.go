// Package config defines the provisioning configuration collected by the
// wizard or loaded from cva6-setup.yaml, plus its validation rules.
package config

import "fmt"

// Config holds every value the provisioning pipeline needs. It is built once
// (wizard or config file), validated, and then threaded through the pipeline
// explicitly; no stage reads ambient process state.
type Config struct {
	// RepoPath is the CVA6 checkout. It must contain the toolchain-builder
	// marker subdirectory.
	RepoPath string `yaml:"repo_path"`

	// InstallPath is the toolchain install target, created if absent.
	InstallPath string `yaml:"install_path"`

	// Threads is the parallelism handed to the delegated toolchain build.
	Threads int `yaml:"threads"`

	// ConfigName selects the toolchain-builder configuration,
	// e.g. "gcc-13.1.0-BareMetal".
	ConfigName string `yaml:"config_name"`

	// Simulators names the simulators the smoke-test stage exercises,
	// exported to the test scripts as a comma-separated DV_SIMULATORS list.
	Simulators []string `yaml:"simulators,omitempty"`

	// Stages toggles the optional pipeline stages.
	Stages StageToggles `yaml:"stages"`
}

// StageToggles enables or disables the optional pipeline stages. Disabled
// stages are logged as skipped, which is a normal non-error path.
type StageToggles struct {
	Docs         bool `yaml:"docs"`
	SmokeTests   bool `yaml:"smoke_tests"`
	ShellProfile bool `yaml:"shell_profile"`
}

// DefaultConfigName derives the toolchain configuration name from a host
// gcc version string.
func DefaultConfigName(gccVersion string) string {
	return fmt.Sprintf("gcc-%s-BareMetal", gccVersion)
}

// DefaultSimulators is the smoke-test simulator selection used when the
// config does not name any.
func DefaultSimulators() []string {
	return []string{"veri-testharness", "spike"}
}
