// Package prerequisites checks for the host tools the toolchain build needs
// before any provisioning stage runs.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// BuildTools returns the tools the toolchain fetch/patch/build stages invoke
// directly. Missing entries here are fatal before provisioning starts;
// apt-installable build dependencies are handled by the packages stage instead.
func BuildTools() []Tool {
	return []Tool{
		{Name: "gcc", Required: true, Description: "Host compiler, also seeds the default toolchain configuration name"},
		{Name: "git", Required: true, Description: "Required for submodule initialization and toolchain source fetch"},
		{Name: "make", Required: true, Description: "Drives the delegated toolchain build"},
		{Name: "patch", Required: true, Description: "Applies the toolchain source patch"},
		{Name: "python3", Required: true, Description: "Required for the verification virtual environment"},
	}
}

// PackagedBuildTools returns build tools the packages stage installs via apt.
// They are reported by doctor but never gate provisioning: a missing entry
// here just means the packages stage has work to do.
func PackagedBuildTools() []Tool {
	return []Tool{
		{Name: "g++", Required: false, Description: "C++ compiler for the toolchain build, from build-essential"},
		{Name: "autoconf", Required: false, Description: "Configure-script generator used by the toolchain sources"},
		{Name: "flex", Required: false, Description: "Lexer generator used by the toolchain sources"},
		{Name: "bison", Required: false, Description: "Parser generator used by the toolchain sources"},
	}
}

// OptionalTools returns tools that are useful but not required up front.
func OptionalTools() []Tool {
	return []Tool{
		{Name: "verilator", Required: false, Description: "Needed only when running simulator smoke tests"},
		{Name: "sphinx-build", Required: false, Description: "Installed into the docs virtual environment when absent"},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks all tools: the required set, the apt-provided build tools
// and the optional extras.
func CheckAll() *CheckResults {
	required := BuildTools()
	packaged := PackagedBuildTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(required)+len(packaged)+len(optional))
	all = append(all, required...)
	all = append(all, packaged...)
	all = append(all, optional...)
	return Check(all)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
