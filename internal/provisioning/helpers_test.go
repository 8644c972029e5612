package provisioning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// recordingObserver captures events and log lines for assertions.
type recordingObserver struct {
	Events []Event
	Lines  []string
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.Lines = append(o.Lines, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.Events = append(o.Events, event)
}

func (o *recordingObserver) WithFields(_ map[string]string) Observer {
	return o
}

func (o *recordingObserver) eventTypes() []EventType {
	var types []EventType
	for _, e := range o.Events {
		types = append(types, e.Type)
	}
	return types
}

func (o *recordingObserver) hasEvent(t EventType) bool {
	for _, e := range o.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}

// makeCheckout creates a directory tree that passes checkout validation.
func makeCheckout(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.MarkerSubdir), 0o755))
	return dir
}

// newTestContext builds a provisioning context over a fake runner and a
// fresh fake checkout. All optional stages answer yes unless overridden.
func newTestContext(t *testing.T, runner execx.Runner) *Context {
	t.Helper()

	cfg := &config.Config{
		RepoPath:    makeCheckout(t),
		InstallPath: filepath.Join(t.TempDir(), "riscv"),
		Threads:     4,
		ConfigName:  "gcc-13.1.0-BareMetal",
		Simulators:  config.DefaultSimulators(),
	}

	ctx := NewContext(context.Background(), cfg, runner, FromToggles(true, true, true))
	ctx.Observer = &recordingObserver{}
	return ctx
}

func observerOf(t *testing.T, ctx *Context) *recordingObserver {
	t.Helper()
	obs, ok := ctx.Observer.(*recordingObserver)
	require.True(t, ok)
	return obs
}
