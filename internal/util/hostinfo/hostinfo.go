// Package hostinfo discovers properties of the build host that seed
// configuration defaults: the native gcc version and the CPU count.
package hostinfo

import (
	"context"
	"regexp"
	"runtime"
	"strings"

	"github.com/cva6-tools/cva6-setup/internal/util/execx"
)

// FallbackGCCVersion is used when the host compiler version cannot be
// detected. Detection failure is not fatal; the default toolchain
// configuration still has to carry a version string.
const FallbackGCCVersion = "13.1.0"

var versionRe = regexp.MustCompile(`\d+(\.\d+){0,2}`)

// GCCVersion returns the host gcc version, e.g. "13.1.0".
// It tries -dumpfullversion first (gcc >= 7) and falls back to -dumpversion,
// then to FallbackGCCVersion when no compiler answers.
func GCCVersion(ctx context.Context, runner execx.Runner) string {
	for _, flag := range []string{"-dumpfullversion", "-dumpversion"} {
		out, err := runner.Output(ctx, execx.Command{Name: "gcc", Args: []string{flag}})
		if err != nil {
			continue
		}
		if v := versionRe.FindString(strings.TrimSpace(out)); v != "" {
			return v
		}
	}
	return FallbackGCCVersion
}

// CPUCount returns the number of usable processing units.
func CPUCount() int {
	return runtime.NumCPU()
}
