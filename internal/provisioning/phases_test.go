package provisioning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/platform/pyenv"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// installedResponses marks every package in pkgs as installed on the fake.
func installedResponses(runner *execx.FakeRunner, pkgs []string) {
	for _, pkg := range pkgs {
		runner.Respond("dpkg-query", "-W -f=${Status} "+pkg, "install ok installed", nil)
	}
}

func TestPackagesPhase(t *testing.T) {
	t.Run("nothing missing means zero installer invocations", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		installedResponses(runner, []string{"flex", "bison"})

		ctx := newTestContext(t, runner)
		phase := &PackagesPhase{Packages: []string{"flex", "bison"}}

		require.NoError(t, phase.Provision(ctx))

		assert.Empty(t, runner.CallsTo("sudo"))
		assert.Empty(t, runner.CallsTo("apt-get"))
		assert.True(t, observerOf(t, ctx).hasEvent(EventResourceExists))
	})

	t.Run("only the delta is installed", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		installedResponses(runner, []string{"flex"})
		runner.Respond("dpkg-query", "-W -f=${Status} bison", "", &execx.SubprocessError{ExitCode: 1})

		ctx := newTestContext(t, runner)
		phase := &PackagesPhase{Packages: []string{"flex", "bison"}}

		require.NoError(t, phase.Provision(ctx))

		calls := runner.CallsTo("sudo")
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"apt-get", "install", "-y", "bison"}, calls[0].Args)
		assert.Equal(t, []string{"bison"}, ctx.State.InstalledPackages)
	})

	t.Run("installer failure is fatal", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("dpkg-query", "", "", &execx.SubprocessError{ExitCode: 1})
		runner.Respond("sudo", "apt-get", "", &execx.SubprocessError{ExitCode: 100})

		ctx := newTestContext(t, runner)
		phase := &PackagesPhase{Packages: []string{"bison"}}

		assert.Error(t, phase.Provision(ctx))
	})
}

func TestRepositoryPhase(t *testing.T) {
	runner := execx.NewFakeRunner()
	ctx := newTestContext(t, runner)

	require.NoError(t, (&RepositoryPhase{}).Provision(ctx))

	calls := runner.CallsTo("git")
	require.Len(t, calls, 1)
	assert.Equal(t, ctx.Config.RepoPath, calls[0].Dir)
}

func TestFetchPhase(t *testing.T) {
	runner := execx.NewFakeRunner()
	ctx := newTestContext(t, runner)

	require.NoError(t, (&FetchPhase{}).Provision(ctx))

	calls := runner.CallsTo("bash")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{config.FetchScript}, calls[0].Args)
	assert.Equal(t, ctx.Config.ToolchainBuilderDir(), calls[0].Dir)
}

func TestPatchPhase(t *testing.T) {
	t.Run("applies when not yet applied", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		// Forward dry-run succeeds by default, then the real apply runs.

		ctx := newTestContext(t, runner)
		require.NoError(t, (&PatchPhase{}).Provision(ctx))

		calls := runner.CallsTo("patch")
		require.Len(t, calls, 2)
		assert.Contains(t, calls[0].Args, "--dry-run")
		assert.NotContains(t, calls[1].Args, "--dry-run")
		assert.False(t, ctx.State.PatchSkipped)
	})

	t.Run("rerun after application performs no mutation", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("patch", "-p1 --forward --dry-run", "", &execx.SubprocessError{ExitCode: 1})
		// Reverse dry-run succeeds: the tree already carries the patch.

		ctx := newTestContext(t, runner)
		require.NoError(t, (&PatchPhase{}).Provision(ctx))

		for _, call := range runner.CallsTo("patch") {
			assert.Contains(t, call.Args, "--dry-run")
		}
		assert.True(t, ctx.State.PatchSkipped)
		assert.True(t, observerOf(t, ctx).hasEvent(EventResourceExists))
	})

	t.Run("conflict is fatal", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("patch", "-p1 --forward --dry-run", "", &execx.SubprocessError{ExitCode: 1})
		runner.Respond("patch", "-p1 --reverse --dry-run", "", &execx.SubprocessError{ExitCode: 1})

		ctx := newTestContext(t, runner)
		assert.Error(t, (&PatchPhase{}).Provision(ctx))
	})
}

func TestBuildPhase(t *testing.T) {
	t.Run("creates install dir and delegates with computed parameters", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		ctx := newTestContext(t, runner)
		ctx.Config.Threads = 6

		require.NoError(t, (&BuildPhase{}).Provision(ctx))

		info, err := os.Stat(ctx.Config.InstallPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		calls := runner.CallsTo("bash")
		require.Len(t, calls, 1)
		assert.Equal(t, []string{config.BuildScript, "gcc-13.1.0-BareMetal", ctx.Config.InstallPath}, calls[0].Args)
		assert.Contains(t, calls[0].Env, "NUM_JOBS=6")
		assert.Contains(t, calls[0].Env, "RISCV="+ctx.Config.InstallPath)
	})

	t.Run("build failure is fatal", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("bash", config.BuildScript, "", &execx.SubprocessError{ExitCode: 2})

		ctx := newTestContext(t, runner)
		assert.Error(t, (&BuildPhase{}).Provision(ctx))
	})
}

func TestPythonEnvPhase(t *testing.T) {
	writeManifest := func(t *testing.T, ctx *Context) {
		t.Helper()
		manifest := filepath.Join(ctx.Config.RepoPath, config.RequirementsFile)
		require.NoError(t, os.WriteFile(manifest, []byte("pyyaml\n"), 0o644))
	}

	t.Run("creates venv and installs requirements", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		ctx := newTestContext(t, runner)
		writeManifest(t, ctx)

		require.NoError(t, (&PythonEnvPhase{}).Provision(ctx))

		require.Len(t, runner.CallsTo("python3"), 1)
		assert.True(t, ctx.State.VenvCreated)

		pip := filepath.Join(ctx.Config.VenvPath(), "bin", "pip")
		assert.Len(t, runner.CallsTo(pip), 1)
	})

	t.Run("existing venv is not recreated", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		ctx := newTestContext(t, runner)
		writeManifest(t, ctx)

		venv := pyenv.New(runner, ctx.Config.VenvPath())
		require.NoError(t, os.MkdirAll(venv.Dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(venv.Dir, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644))

		require.NoError(t, (&PythonEnvPhase{}).Provision(ctx))

		assert.Empty(t, runner.CallsTo("python3"))
		assert.False(t, ctx.State.VenvCreated)
		assert.True(t, observerOf(t, ctx).hasEvent(EventResourceExists))
	})

	t.Run("missing manifest is fatal", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		ctx := newTestContext(t, runner)

		err := (&PythonEnvPhase{}).Provision(ctx)
		assert.ErrorIs(t, err, pyenv.ErrMissingManifest)
	})
}

func TestOptionalPhasesSkip(t *testing.T) {
	runner := execx.NewFakeRunner()
	ctx := newTestContext(t, runner)
	ctx.Confirm = FromToggles(false, false, false)

	for _, phase := range []Phase{&DocsPhase{}, &SmokeTestPhase{}, &ShellProfilePhase{}} {
		require.NoError(t, phase.Provision(ctx))
	}

	assert.Equal(t, []string{PhaseDocs, PhaseSmokeTests, PhaseShellProfile}, ctx.State.Skipped)
	assert.Empty(t, runner.Calls, "skipped stages must not touch the system")

	obs := observerOf(t, ctx)
	assert.Equal(t, []EventType{EventPhaseSkipped, EventPhaseSkipped, EventPhaseSkipped}, obs.eventTypes())
}

func TestSmokeTestPhase(t *testing.T) {
	runner := execx.NewFakeRunner()
	ctx := newTestContext(t, runner)
	ctx.Config.Simulators = []string{"veri-testharness", "spike"}
	ctx.Config.Threads = 8

	require.NoError(t, (&SmokeTestPhase{}).Provision(ctx))

	calls := runner.CallsTo("bash")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{config.SmokeTestScript}, calls[0].Args)
	assert.Equal(t, ctx.Config.RepoPath, calls[0].Dir)
	assert.Contains(t, calls[0].Env, "DV_SIMULATORS=veri-testharness,spike")
	assert.Contains(t, calls[0].Env, "NUM_JOBS=8")
	assert.Contains(t, calls[0].Env, fmt.Sprintf("RISCV=%s", ctx.Config.InstallPath))
}

func TestDocsPhase(t *testing.T) {
	runner := execx.NewFakeRunner()
	ctx := newTestContext(t, runner)

	docsDir := filepath.Join(ctx.Config.RepoPath, config.DocsDir)
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	manifest := filepath.Join(ctx.Config.RepoPath, config.DocsRequirementsFile)
	require.NoError(t, os.WriteFile(manifest, []byte("sphinx\n"), 0o644))

	require.NoError(t, (&DocsPhase{}).Provision(ctx))

	pip := filepath.Join(ctx.Config.VenvPath(), "bin", "pip")
	require.Len(t, runner.CallsTo(pip), 1)

	makeCalls := runner.CallsTo("make")
	require.Len(t, makeCalls, 1)
	assert.Equal(t, []string{"html"}, makeCalls[0].Args)
	assert.Equal(t, docsDir, makeCalls[0].Dir)

	require.Len(t, makeCalls[0].Env, 1)
	assert.True(t, strings.HasPrefix(makeCalls[0].Env[0], "PATH="+filepath.Join(ctx.Config.VenvPath(), "bin")))
}

func TestShellProfilePhase(t *testing.T) {
	t.Run("registers once across reruns", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		ctx := newTestContext(t, runner)
		profilePath := filepath.Join(t.TempDir(), ".bashrc")
		phase := &ShellProfilePhase{ProfilePath: profilePath}

		require.NoError(t, phase.Provision(ctx))
		assert.True(t, ctx.State.ProfileModified)

		rerun := newTestContext(t, runner)
		rerun.Confirm = ctx.Confirm
		require.NoError(t, phase.Provision(rerun))
		assert.False(t, rerun.State.ProfileModified)

		data, err := os.ReadFile(profilePath)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(data), "# >>> cva6-setup >>>"))
	})
}
