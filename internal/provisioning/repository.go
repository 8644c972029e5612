package provisioning

import (
	"github.com/cva6-tools/cva6-setup/internal/platform/gitrepo"
)

// RepositoryPhase brings the CVA6 checkout's submodules up to date.
type RepositoryPhase struct{}

// Name implements Phase.
func (p *RepositoryPhase) Name() string { return PhaseRepository }

// Provision implements Phase.
func (p *RepositoryPhase) Provision(ctx *Context) error {
	repo := gitrepo.New(ctx.Runner, ctx.Config.RepoPath)
	return repo.SyncSubmodules(ctx)
}
