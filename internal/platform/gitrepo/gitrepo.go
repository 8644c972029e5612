// Package gitrepo wraps the git operations the provisioning pipeline needs
// on the CVA6 checkout.
package gitrepo

import (
	"context"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// Repo operates on a single checkout directory.
type Repo struct {
	runner execx.Runner
	dir    string
}

// New creates a Repo for the checkout at dir.
func New(runner execx.Runner, dir string) *Repo {
	return &Repo{runner: runner, dir: dir}
}

// Dir returns the checkout directory.
func (r *Repo) Dir() string {
	return r.dir
}

// SyncSubmodules initializes and updates all submodules recursively.
// git is idempotent here; an up-to-date tree exits cleanly without changes.
func (r *Repo) SyncSubmodules(ctx context.Context) error {
	return r.runner.Run(ctx, execx.Command{
		Name: "git",
		Args: []string{"submodule", "update", "--init", "--recursive"},
		Dir:  r.dir,
	})
}
