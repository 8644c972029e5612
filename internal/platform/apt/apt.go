// Package apt reconciles the declared set of build dependencies against the
// Debian package database. Only the missing delta is handed to apt-get, so
// rerunning the packages stage with nothing missing performs zero installs.
package apt

import (
	"context"
	"strings"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// RequiredPackages is the fixed set of OS packages the toolchain build and
// the verification environment need on a Debian/Ubuntu host.
func RequiredPackages() []string {
	return []string{
		"autoconf",
		"automake",
		"autotools-dev",
		"bc",
		"bison",
		"build-essential",
		"curl",
		"device-tree-compiler",
		"flex",
		"gawk",
		"gperf",
		"help2man",
		"libexpat-dev",
		"libgmp-dev",
		"libmpc-dev",
		"libmpfr-dev",
		"libtool",
		"patchutils",
		"python3",
		"python3-venv",
		"texinfo",
		"zlib1g-dev",
	}
}

// Manager queries and installs OS packages through dpkg and apt-get.
type Manager struct {
	runner execx.Runner

	// Sudo prefixes the install invocation with sudo. Enabled by default;
	// disabled in containers that already run as root.
	Sudo bool
}

// NewManager creates a Manager using the given runner.
func NewManager(runner execx.Runner) *Manager {
	return &Manager{runner: runner, Sudo: true}
}

// Installed reports whether a single package is installed, based on the
// dpkg status database.
func (m *Manager) Installed(ctx context.Context, pkg string) bool {
	out, err := m.runner.Output(ctx, execx.Command{
		Name: "dpkg-query",
		Args: []string{"-W", "-f=${Status}", pkg},
	})
	if err != nil {
		// dpkg-query exits non-zero for unknown packages.
		return false
	}
	return strings.Contains(out, "install ok installed")
}

// Missing returns the subset of pkgs not currently installed, preserving
// order. This is the idempotency predicate for the packages stage.
func (m *Manager) Missing(ctx context.Context, pkgs []string) []string {
	var missing []string
	for _, pkg := range pkgs {
		if !m.Installed(ctx, pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

// Install installs the given packages in a single apt-get invocation.
// An empty list is a no-op. Partial failures are not tracked; a non-zero
// apt-get exit fails the whole stage.
func (m *Manager) Install(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}

	name := "apt-get"
	args := append([]string{"install", "-y"}, pkgs...)
	if m.Sudo {
		name = "sudo"
		args = append([]string{"apt-get", "install", "-y"}, pkgs...)
	}

	return m.runner.Run(ctx, execx.Command{Name: name, Args: args})
}
