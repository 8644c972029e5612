package provisioning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/platform/pyenv"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
	"github.com/cva6-tools/cva6-setup/internal/util/profile"
)

// skipPhase records and logs an optional phase being skipped.
func skipPhase(ctx *Context, phase string) {
	ctx.State.Skipped = append(ctx.State.Skipped, phase)
	LogPhaseSkipped(ctx.Observer, phase, "declined")
}

// DocsPhase installs the documentation tooling into the virtual environment
// and builds the HTML documentation. Optional.
type DocsPhase struct{}

// Name implements Phase.
func (p *DocsPhase) Name() string { return PhaseDocs }

// Provision implements Phase.
func (p *DocsPhase) Provision(ctx *Context) error {
	ok, err := ctx.Confirm.Confirm(PhaseDocs, "Build the HTML documentation?")
	if err != nil {
		return err
	}
	if !ok {
		skipPhase(ctx, PhaseDocs)
		return nil
	}

	env := pyenv.New(ctx.Runner, ctx.Config.VenvPath())
	manifest := filepath.Join(ctx.Config.RepoPath, config.DocsRequirementsFile)
	if err := env.InstallRequirements(ctx, manifest); err != nil {
		return err
	}

	// Run sphinx through make with the venv's binaries first on PATH.
	venvPath := filepath.Join(env.Dir, "bin") + string(os.PathListSeparator) + os.Getenv("PATH")
	return ctx.Runner.Run(ctx, execx.Command{
		Name: "make",
		Args: []string{"html"},
		Dir:  filepath.Join(ctx.Config.RepoPath, config.DocsDir),
		Env:  []string{"PATH=" + venvPath},
	})
}

// SmokeTestPhase runs the minimal post-build regression. Optional.
type SmokeTestPhase struct{}

// Name implements Phase.
func (p *SmokeTestPhase) Name() string { return PhaseSmokeTests }

// Provision implements Phase.
func (p *SmokeTestPhase) Provision(ctx *Context) error {
	ok, err := ctx.Confirm.Confirm(PhaseSmokeTests, "Run the smoke tests?")
	if err != nil {
		return err
	}
	if !ok {
		skipPhase(ctx, PhaseSmokeTests)
		return nil
	}

	return ctx.Runner.Run(ctx, execx.Command{
		Name: "bash",
		Args: []string{config.SmokeTestScript},
		Dir:  ctx.Config.RepoPath,
		Env: []string{
			fmt.Sprintf("RISCV=%s", ctx.Config.InstallPath),
			fmt.Sprintf("NUM_JOBS=%d", ctx.Config.Threads),
			fmt.Sprintf("DV_SIMULATORS=%s", strings.Join(ctx.Config.Simulators, ",")),
		},
	})
}

// ShellProfilePhase appends the marked environment block to the user's shell
// profile, at most once. Optional.
type ShellProfilePhase struct {
	// ProfilePath overrides the profile file location. Empty means ~/.bashrc.
	ProfilePath string
}

// Name implements Phase.
func (p *ShellProfilePhase) Name() string { return PhaseShellProfile }

// Provision implements Phase.
func (p *ShellProfilePhase) Provision(ctx *Context) error {
	ok, err := ctx.Confirm.Confirm(PhaseShellProfile, "Register the environment in your shell profile?")
	if err != nil {
		return err
	}
	if !ok {
		skipPhase(ctx, PhaseShellProfile)
		return nil
	}

	path := p.ProfilePath
	if path == "" {
		path, err = profile.DefaultPath()
		if err != nil {
			return err
		}
	}

	block := profile.Block(ctx.Config.InstallPath, ctx.Config.Threads, ctx.Config.RepoPath)
	modified, err := profile.Register(path, block)
	if err != nil {
		return err
	}

	if modified {
		ctx.State.ProfileModified = true
		LogResourceCreated(ctx.Observer, PhaseShellProfile, "profile block", path)
	} else {
		LogResourceExists(ctx.Observer, PhaseShellProfile, "profile block", path)
	}
	return nil
}
