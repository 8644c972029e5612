// Package profile manages the marker-delimited block this tool appends to the
// user's shell profile. The block is written at most once: registration is
// skipped whenever the opening marker is already present, so reruns never
// duplicate or corrupt the profile.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker lines delimiting the managed block.
const (
	BeginMarker = "# >>> cva6-setup >>>"
	EndMarker   = "# <<< cva6-setup <<<"
)

// DefaultPath returns the profile file to edit, ~/.bashrc.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".bashrc"), nil
}

// Block renders the environment block for the given install directory,
// thread count and repository path.
func Block(installDir string, threads int, repoDir string) string {
	var sb strings.Builder
	sb.WriteString(BeginMarker + "\n")
	sb.WriteString(fmt.Sprintf("export RISCV=%q\n", installDir))
	sb.WriteString("export PATH=\"$RISCV/bin:$PATH\"\n")
	sb.WriteString(fmt.Sprintf("export NUM_JOBS=%d\n", threads))
	sb.WriteString(fmt.Sprintf("alias cva6-venv='source %q/.venv/bin/activate'\n", repoDir))
	sb.WriteString(EndMarker + "\n")
	return sb.String()
}

// HasBlock reports whether the profile already contains the managed block.
// A missing profile file counts as no block.
func HasBlock(path string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is the user's own profile
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return strings.Contains(string(data), BeginMarker), nil
}

// Register appends the block to the profile unless it is already present.
// It returns true when the profile was modified.
func Register(path, block string) (bool, error) {
	present, err := HasBlock(path)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304
	if err != nil {
		return false, fmt.Errorf("failed to open profile %s: %w", path, err)
	}
	defer f.Close()

	// Leading newline keeps the block separated from whatever the file ends with.
	if _, err := f.WriteString("\n" + block); err != nil {
		return false, fmt.Errorf("failed to append to profile %s: %w", path, err)
	}
	return true, nil
}
