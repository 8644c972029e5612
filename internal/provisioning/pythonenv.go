package provisioning

import (
	"path/filepath"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/platform/pyenv"
)

// PythonEnvPhase creates the verification virtual environment if absent and
// installs the declared dependency manifest into it.
type PythonEnvPhase struct{}

// Name implements Phase.
func (p *PythonEnvPhase) Name() string { return PhasePythonEnv }

// Provision implements Phase.
func (p *PythonEnvPhase) Provision(ctx *Context) error {
	env := pyenv.New(ctx.Runner, ctx.Config.VenvPath())

	if env.Exists() {
		LogResourceExists(ctx.Observer, PhasePythonEnv, "virtual environment", env.Dir)
	} else {
		if err := env.Create(ctx); err != nil {
			return err
		}
		ctx.State.VenvCreated = true
		LogResourceCreated(ctx.Observer, PhasePythonEnv, "virtual environment", env.Dir)
	}

	manifest := filepath.Join(ctx.Config.RepoPath, config.RequirementsFile)
	return env.InstallRequirements(ctx, manifest)
}
