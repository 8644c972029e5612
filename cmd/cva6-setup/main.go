// Package main is the entry point for the cva6-setup CLI.
//
// cva6-setup provisions a RISC-V GNU toolchain and the verification
// environment for a CVA6 checkout: OS packages, submodules, toolchain
// sources with the baremetal patch, the delegated toolchain build, the
// Python virtual environment, and optionally documentation, smoke tests
// and shell-profile registration. Every stage is idempotent, so the tool
// is safe to rerun after a failure.
//
// Commands: init, apply, doctor, version, completion.
//
// For detailed usage information, run:
//
//	cva6-setup --help
package main

import (
	"fmt"
	"os"

	"github.com/cva6-tools/cva6-setup/cmd/cva6-setup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
