// Package provisioning implements the toolchain provisioning pipeline:
// a strictly linear sequence of phases, each guarded by an idempotency
// check where one applies, each fatal on failure.
//
// Phases: packages, repository, fetch, patch, build, python-env, then the
// optional docs, smoke-tests and shell-profile stages. Optional stages are
// confirmed through a Confirmer and logged as skipped when declined, which
// is a normal non-error path.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Confirmer answers the yes/no questions gating optional phases. The
// interactive implementation prompts on the terminal; the scripted one
// replays answers from the configuration so runs are non-interactive
// and testable.
type Confirmer interface {
	// Confirm asks the question gating the named phase and returns the answer.
	Confirm(phase, question string) (bool, error)
}
