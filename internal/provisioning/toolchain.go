package provisioning

import (
	"fmt"
	"path/filepath"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/platform/patcher"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
	"github.com/cva6-tools/cva6-setup/internal/util/pathutil"
)

// FetchPhase downloads the toolchain sources via the checkout's fetch script.
// The script itself skips sources that are already present.
type FetchPhase struct{}

// Name implements Phase.
func (p *FetchPhase) Name() string { return PhaseFetch }

// Provision implements Phase.
func (p *FetchPhase) Provision(ctx *Context) error {
	return ctx.Runner.Run(ctx, execx.Command{
		Name: "bash",
		Args: []string{config.FetchScript},
		Dir:  ctx.Config.ToolchainBuilderDir(),
	})
}

// PatchPhase applies the compiler source patch idempotently: an
// already-patched tree is skipped silently, a diverged tree is fatal.
type PatchPhase struct{}

// Name implements Phase.
func (p *PatchPhase) Name() string { return PhasePatch }

// Provision implements Phase.
func (p *PatchPhase) Provision(ctx *Context) error {
	builderDir := ctx.Config.ToolchainBuilderDir()
	srcDir := filepath.Join(builderDir, config.ToolchainSrcDir)
	patchFile := filepath.Join(builderDir, config.ToolchainPatch)

	pt := patcher.New(ctx.Runner)
	status, err := pt.Check(ctx, srcDir, patchFile)
	if err != nil {
		return err
	}

	switch status {
	case patcher.StatusApplied:
		ctx.State.PatchSkipped = true
		LogResourceExists(ctx.Observer, PhasePatch, "source patch", filepath.Base(patchFile))
		return nil
	case patcher.StatusNotApplied:
		if err := pt.Apply(ctx, srcDir, patchFile); err != nil {
			return err
		}
		LogResourceCreated(ctx.Observer, PhasePatch, "source patch", filepath.Base(patchFile))
		return nil
	default:
		return fmt.Errorf("unexpected patch status %s", status)
	}
}

// BuildPhase delegates to the external toolchain build script. The script
// receives the configuration name and install directory as arguments and the
// thread count through the NUM_JOBS variable in its environment. The build is
// opaque and atomic from the pipeline's perspective; any non-zero exit is
// fatal with no retry.
type BuildPhase struct{}

// Name implements Phase.
func (p *BuildPhase) Name() string { return PhaseBuild }

// Provision implements Phase.
func (p *BuildPhase) Provision(ctx *Context) error {
	if err := pathutil.EnsureDir(ctx.Config.InstallPath); err != nil {
		return err
	}

	return ctx.Runner.Run(ctx, execx.Command{
		Name: "bash",
		Args: []string{config.BuildScript, ctx.Config.ConfigName, ctx.Config.InstallPath},
		Dir:  ctx.Config.ToolchainBuilderDir(),
		Env: []string{
			fmt.Sprintf("NUM_JOBS=%d", ctx.Config.Threads),
			fmt.Sprintf("RISCV=%s", ctx.Config.InstallPath),
		},
	})
}
