package provisioning

import (
	"context"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Packages results
	InstalledPackages []string // delta actually handed to the package manager

	// Patch results
	PatchSkipped bool // patch was already applied on a previous run

	// Python environment results
	VenvCreated bool // false when the venv already existed

	// Shell profile results
	ProfileModified bool // false when the marked block was already present

	// Skipped optional phases, by name, in pipeline order.
	Skipped []string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Runner   execx.Runner
	Observer Observer
	Confirm  Confirmer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, runner execx.Runner, confirm Confirmer) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Runner:   runner,
		Observer: NewConsoleObserver(),
		Confirm:  confirm,
	}
}
