// Package pyenv manages the Python virtual environment the verification
// flow and the documentation build run in.
package pyenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// ErrMissingManifest is returned when an expected requirements file is
// absent. The workflow cannot proceed without a declared dependency set.
var ErrMissingManifest = fmt.Errorf("dependency manifest not found")

// Env is a virtual environment rooted at Dir.
type Env struct {
	runner execx.Runner

	// Dir is the venv directory, e.g. <repo>/.venv.
	Dir string
}

// New creates an Env handle for the venv at dir.
func New(runner execx.Runner, dir string) *Env {
	return &Env{runner: runner, Dir: dir}
}

// Exists reports whether the venv has been created already. The pyvenv.cfg
// file is the marker python3 -m venv leaves behind.
func (e *Env) Exists() bool {
	_, err := os.Stat(filepath.Join(e.Dir, "pyvenv.cfg"))
	return err == nil
}

// Create builds the venv if it does not exist yet.
func (e *Env) Create(ctx context.Context) error {
	if e.Exists() {
		return nil
	}
	return e.runner.Run(ctx, execx.Command{
		Name: "python3",
		Args: []string{"-m", "venv", e.Dir},
	})
}

// InstallRequirements installs a requirements manifest into the venv using
// the venv's own pip. Returns ErrMissingManifest when the file is absent.
func (e *Env) InstallRequirements(ctx context.Context, manifest string) error {
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingManifest, manifest)
	}
	return e.runner.Run(ctx, execx.Command{
		Name: e.pip(),
		Args: []string{"install", "-r", manifest},
	})
}

// pip returns the venv-local pip binary path.
func (e *Env) pip() string {
	return filepath.Join(e.Dir, "bin", "pip")
}
