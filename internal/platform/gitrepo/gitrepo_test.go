package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

func TestSyncSubmodules(t *testing.T) {
	ctx := context.Background()

	t.Run("invokes git in the checkout directory", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		repo := New(runner, "/src/cva6")

		require.NoError(t, repo.SyncSubmodules(ctx))

		calls := runner.CallsTo("git")
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"submodule", "update", "--init", "--recursive"}, calls[0].Args)
		assert.Equal(t, "/src/cva6", calls[0].Dir)
	})

	t.Run("propagates git failure", func(t *testing.T) {
		runner := execx.NewFakeRunner()
		runner.Respond("git", "submodule", "", &execx.SubprocessError{ExitCode: 1})

		repo := New(runner, "/src/cva6")
		assert.Error(t, repo.SyncSubmodules(ctx))
	})
}
