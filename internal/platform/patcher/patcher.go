// Package patcher applies the toolchain source patch idempotently.
//
// The patch stage runs against a source tree that may already carry the
// patch from an earlier run. A forward dry-run decides whether the patch is
// still applicable; when it is not, a reverse dry-run distinguishes
// "already applied" (skip, not an error) from a genuine conflict (fatal).
package patcher

import (
	"context"
	"fmt"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// Status describes the relationship between a source tree and a patch file.
type Status int

const (
	// StatusNotApplied means the patch applies cleanly and has not been applied.
	StatusNotApplied Status = iota

	// StatusApplied means the tree already carries the patch.
	StatusApplied

	// StatusConflict means the patch neither applies forward nor reverses,
	// i.e. the tree diverged from both expected states.
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusNotApplied:
		return "not applied"
	case StatusApplied:
		return "applied"
	case StatusConflict:
		return "conflict"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Patcher drives the patch(1) utility.
type Patcher struct {
	runner execx.Runner
}

// New creates a Patcher using the given runner.
func New(runner execx.Runner) *Patcher {
	return &Patcher{runner: runner}
}

// Check determines the patch status of dir without mutating it.
func (p *Patcher) Check(ctx context.Context, dir, patchFile string) (Status, error) {
	// Forward dry-run: succeeds only when the patch still applies cleanly.
	_, fwdErr := p.runner.Output(ctx, execx.Command{
		Name: "patch",
		Args: []string{"-p1", "--forward", "--dry-run", "-s", "-i", patchFile},
		Dir:  dir,
	})
	if fwdErr == nil {
		return StatusNotApplied, nil
	}

	// Reverse dry-run: succeeds when the tree already carries the patch.
	_, revErr := p.runner.Output(ctx, execx.Command{
		Name: "patch",
		Args: []string{"-p1", "--reverse", "--dry-run", "-s", "-i", patchFile},
		Dir:  dir,
	})
	if revErr == nil {
		return StatusApplied, nil
	}

	return StatusConflict, fmt.Errorf("patch %s neither applies nor reverses in %s: %w", patchFile, dir, fwdErr)
}

// Apply applies the patch to dir. Callers are expected to have checked the
// status first; applying to an already-patched tree fails.
func (p *Patcher) Apply(ctx context.Context, dir, patchFile string) error {
	return p.runner.Run(ctx, execx.Command{
		Name: "patch",
		Args: []string{"-p1", "--forward", "-i", patchFile},
		Dir:  dir,
	})
}
