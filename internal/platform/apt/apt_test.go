package apt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

func TestInstalled(t *testing.T) {
	ctx := context.Background()

	t.Run("installed package", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("dpkg-query", "-W -f=${Status} bison", "install ok installed", nil)

		m := NewManager(runner)
		assert.True(t, m.Installed(ctx, "bison"))
	})

	t.Run("removed package", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("dpkg-query", "-W -f=${Status} bison", "deinstall ok config-files", nil)

		m := NewManager(runner)
		assert.False(t, m.Installed(ctx, "bison"))
	})

	t.Run("unknown package", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("dpkg-query", "-W -f=${Status} no-such", "", errors.New("no packages found"))

		m := NewManager(runner)
		assert.False(t, m.Installed(ctx, "no-such"))
	})
}

func TestMissing(t *testing.T) {
	ctx := context.Background()
	runner := execx.NewFakeRunner()
	runner.Respond("dpkg-query", "-W -f=${Status} flex", "install ok installed", nil)
	runner.Respond("dpkg-query", "-W -f=${Status} bison", "", errors.New("no packages found"))
	runner.Respond("dpkg-query", "-W -f=${Status} gawk", "", errors.New("no packages found"))

	m := NewManager(runner)
	missing := m.Missing(ctx, []string{"flex", "bison", "gawk"})
	assert.Equal(t, []string{"bison", "gawk"}, missing)
}

func TestInstall(t *testing.T) {
	ctx := context.Background()

	t.Run("empty delta triggers no invocation", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		m := NewManager(runner)

		require.NoError(t, m.Install(ctx, nil))
		assert.Empty(t, runner.Calls)
	})

	t.Run("single apt-get call for the delta", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		m := NewManager(runner)
		m.Sudo = false

		require.NoError(t, m.Install(ctx, []string{"bison", "gawk"}))

		calls := runner.CallsTo("apt-get")
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"install", "-y", "bison", "gawk"}, calls[0].Args)
	})

	t.Run("sudo prefix by default", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		m := NewManager(runner)

		require.NoError(t, m.Install(ctx, []string{"bison"}))

		calls := runner.CallsTo("sudo")
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"apt-get", "install", "-y", "bison"}, calls[0].Args)
	})

	t.Run("apt-get failure propagates", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("apt-get", "install", "", &execx.SubprocessError{ExitCode: 100})

		m := NewManager(runner)
		m.Sudo = false

		err := m.Install(ctx, []string{"bison"})
		var subErr *execx.SubprocessError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, 100, subErr.ExitCode)
	})
}

func TestRequiredPackages(t *testing.T) {
	pkgs := RequiredPackages()
	assert.NotEmpty(t, pkgs)
	assert.Contains(t, pkgs, "device-tree-compiler")
	assert.Contains(t, pkgs, "python3-venv")
}
