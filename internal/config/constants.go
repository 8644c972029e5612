package config

// Well-known locations inside a CVA6 checkout. All are relative to RepoPath.
const (
	// DefaultConfigFile is the config file name apply looks for when no
	// --config flag is given.
	DefaultConfigFile = "cva6-setup.yaml"

	// MarkerSubdir confirms a directory is a valid CVA6 checkout.
	MarkerSubdir = "util/toolchain-builder"

	// FetchScript downloads the toolchain sources.
	FetchScript = "get-toolchain.sh"

	// BuildScript builds and installs the toolchain.
	BuildScript = "build-toolchain.sh"

	// ToolchainPatch is the compiler source patch, relative to MarkerSubdir.
	ToolchainPatch = "patches/gcc-baremetal.patch"

	// ToolchainSrcDir is where the fetch script leaves the compiler sources,
	// relative to MarkerSubdir.
	ToolchainSrcDir = "src"

	// VenvDir is the verification virtual environment, relative to RepoPath.
	VenvDir = ".venv"

	// RequirementsFile declares the verification Python dependencies.
	RequirementsFile = "requirements.txt"

	// DocsRequirementsFile declares the documentation toolchain dependencies.
	DocsRequirementsFile = "docs/requirements.txt"

	// DocsDir holds the Sphinx documentation sources.
	DocsDir = "docs"

	// SmokeTestScript runs the post-build regression smoke tests.
	SmokeTestScript = "verif/regress/smoke-tests.sh"
)
