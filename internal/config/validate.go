package config

import (
	"fmt"
	"path/filepath"

	"github.com/cva6-tools/cva6-setup/internal/util/pathutil"
)

// Normalize expands and canonicalizes the configured paths in place.
// Tilde-expansion happens here, before any validation.
func (c *Config) Normalize() error {
	repo, err := pathutil.Expand(c.RepoPath)
	if err != nil {
		return fmt.Errorf("repository path: %w", err)
	}
	c.RepoPath = repo

	install, err := pathutil.Expand(c.InstallPath)
	if err != nil {
		return fmt.Errorf("install path: %w", err)
	}
	c.InstallPath = install

	if len(c.Simulators) == 0 {
		c.Simulators = DefaultSimulators()
	}
	return nil
}

// Validate checks the configuration against the filesystem. The repository
// must be an existing CVA6 checkout; the install path only needs to be
// creatable (creation is the pipeline's job, not an error here).
func (c *Config) Validate() error {
	if !pathutil.IsDir(c.RepoPath) {
		return fmt.Errorf("%w: repository %s does not exist", ErrInvalidPath, c.RepoPath)
	}
	if marker := filepath.Join(c.RepoPath, MarkerSubdir); !pathutil.IsDir(marker) {
		return fmt.Errorf("%w: %s is not a CVA6 checkout (missing %s)", ErrInvalidPath, c.RepoPath, MarkerSubdir)
	}

	if c.Threads <= 0 {
		return fmt.Errorf("%w: thread count must be a positive integer, got %d", ErrInvalidInput, c.Threads)
	}
	if c.ConfigName == "" {
		return fmt.Errorf("%w: configuration name must not be empty", ErrInvalidInput)
	}
	return nil
}

// ToolchainBuilderDir returns the absolute toolchain-builder directory.
func (c *Config) ToolchainBuilderDir() string {
	return filepath.Join(c.RepoPath, MarkerSubdir)
}

// VenvPath returns the absolute virtual environment directory.
func (c *Config) VenvPath() string {
	return filepath.Join(c.RepoPath, VenvDir)
}
