package provisioning

import (
	"strings"

	"github.com/cva6-tools/cva6-setup/internal/platform/apt"
)

// Phase names, also the keys for scripted stage confirmations.
const (
	PhasePackages     = "packages"
	PhaseRepository   = "repository"
	PhaseFetch        = "fetch"
	PhasePatch        = "patch"
	PhaseBuild        = "build"
	PhasePythonEnv    = "python-env"
	PhaseDocs         = "docs"
	PhaseSmokeTests   = "smoke-tests"
	PhaseShellProfile = "shell-profile"
)

// PackagesPhase installs the missing subset of the required OS packages.
// With nothing missing it performs zero package-manager invocations.
type PackagesPhase struct {
	// Packages overrides the default required set. Nil means apt.RequiredPackages.
	Packages []string
}

// Name implements Phase.
func (p *PackagesPhase) Name() string { return PhasePackages }

// Provision implements Phase.
func (p *PackagesPhase) Provision(ctx *Context) error {
	pkgs := p.Packages
	if pkgs == nil {
		pkgs = apt.RequiredPackages()
	}

	mgr := apt.NewManager(ctx.Runner)
	missing := mgr.Missing(ctx, pkgs)
	if len(missing) == 0 {
		LogResourceExists(ctx.Observer, PhasePackages, "package set", "build dependencies")
		return nil
	}

	ctx.Observer.Printf("[%s] installing %d missing packages: %s",
		PhasePackages, len(missing), strings.Join(missing, " "))

	if err := mgr.Install(ctx, missing); err != nil {
		return err
	}

	ctx.State.InstalledPackages = missing
	LogResourceCreated(ctx.Observer, PhasePackages, "package set", strings.Join(missing, ","))
	return nil
}
