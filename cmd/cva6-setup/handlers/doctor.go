package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cva6-tools/cva6-setup/internal/config"
	"github.com/cva6-tools/cva6-setup/internal/platform/apt"
	"github.com/cva6-tools/cva6-setup/internal/platform/patcher"
	"github.com/cva6-tools/cva6-setup/internal/platform/pyenv"
	"github.com/cva6-tools/cva6-setup/internal/ui/tui"
	"github.com/cva6-tools/cva6-setup/internal/util/pathutil"
	"github.com/cva6-tools/cva6-setup/internal/util/prerequisites"
	"github.com/cva6-tools/cva6-setup/internal/util/profile"
)

// DoctorStatus represents the environment diagnostic status.
type DoctorStatus struct {
	GCCVersion string          `json:"gccVersion"`
	CPUCount   int             `json:"cpuCount"`
	Tools      []ToolStatus    `json:"tools"`
	Checkout   *CheckoutStatus `json:"checkout,omitempty"`
}

// ToolStatus represents the availability of a single host tool.
type ToolStatus struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
}

// CheckoutStatus represents the read-only provisioning predicates evaluated
// against a configured checkout.
type CheckoutStatus struct {
	RepoPath        string `json:"repoPath"`
	ValidCheckout   bool   `json:"validCheckout"`
	MissingPackages int    `json:"missingPackages"`
	PatchApplied    bool   `json:"patchApplied"`
	VenvPresent     bool   `json:"venvPresent"`
	ProfileBlock    bool   `json:"profileBlock"`
}

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkAllPrereqs checks required and optional host tools.
	checkAllPrereqs = prerequisites.CheckAll

	// probeCheckout evaluates the per-checkout provisioning predicates.
	probeCheckout = probeCheckoutState
)

// Doctor handles the doctor command.
//
// Pre-config mode: reports host discovery and tool availability only.
// Config mode: additionally evaluates each idempotent stage's precondition
// read-only, so the user can see what a rerun of apply would actually do.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	status := &DoctorStatus{
		GCCVersion: detectGCCVersion(ctx),
		CPUCount:   detectCPUCount(),
	}

	results := checkAllPrereqs()
	for _, r := range results.Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:    r.Tool.Name,
			Found:   r.Found,
			Version: r.Version,
		})
	}

	if path := resolveConfigPath(configPath); path != "" {
		cfg, err := loadConfigFile(path)
		if err != nil {
			// A broken config is itself a finding, not a doctor failure.
			status.Checkout = &CheckoutStatus{RepoPath: path}
		} else {
			status.Checkout = probeCheckout(ctx, cfg)
		}
	}

	if jsonOutput {
		return printDoctorJSON(status)
	}

	if isInteractiveTTY() {
		fmt.Println(tui.RenderDoctor(toReport(status)))
		return nil
	}

	printDoctorPlain(status)
	return nil
}

// resolveConfigPath returns the config file to inspect, or empty when none
// exists. An explicit --config path is used even if missing, so load errors
// surface in the report.
func resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if fileExists(config.DefaultConfigFile) {
		return config.DefaultConfigFile
	}
	return ""
}

// probeCheckoutState evaluates every idempotency predicate without mutating
// anything: package delta, patch dry-run, venv marker and profile block.
func probeCheckoutState(ctx context.Context, cfg *config.Config) *CheckoutStatus {
	runner := newRunner()
	status := &CheckoutStatus{
		RepoPath:      cfg.RepoPath,
		ValidCheckout: true,
	}

	status.MissingPackages = len(apt.NewManager(runner).Missing(ctx, apt.RequiredPackages()))

	srcDir := filepath.Join(cfg.ToolchainBuilderDir(), config.ToolchainSrcDir)
	if pathutil.IsDir(srcDir) {
		patchFile := filepath.Join(cfg.ToolchainBuilderDir(), config.ToolchainPatch)
		if st, _ := patcher.New(runner).Check(ctx, srcDir, patchFile); st == patcher.StatusApplied {
			status.PatchApplied = true
		}
	}

	status.VenvPresent = pyenv.New(runner, cfg.VenvPath()).Exists()

	if path, err := profile.DefaultPath(); err == nil {
		if has, err := profile.HasBlock(path); err == nil {
			status.ProfileBlock = has
		}
	}

	return status
}

// toReport converts the diagnostic status to the TUI rendering model.
func toReport(status *DoctorStatus) tui.DoctorReport {
	report := tui.DoctorReport{
		GCCVersion: status.GCCVersion,
		CPUCount:   status.CPUCount,
	}
	for _, t := range status.Tools {
		report.Tools = append(report.Tools, tui.ToolRow{
			Name:    t.Name,
			Found:   t.Found,
			Version: t.Version,
		})
	}
	if status.Checkout != nil {
		report.Checkout = &tui.CheckoutRows{
			RepoPath:        status.Checkout.RepoPath,
			ValidCheckout:   status.Checkout.ValidCheckout,
			MissingPackages: status.Checkout.MissingPackages,
			PatchApplied:    status.Checkout.PatchApplied,
			VenvPresent:     status.Checkout.VenvPresent,
			ProfileBlock:    status.Checkout.ProfileBlock,
		}
	}
	return report
}

// printDoctorJSON outputs status as JSON.
func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printDoctorPlain outputs status as unstyled text for non-TTY output.
func printDoctorPlain(status *DoctorStatus) {
	fmt.Println("cva6-setup environment")
	fmt.Printf("  gcc %s, %d processing units\n", status.GCCVersion, status.CPUCount)
	fmt.Println()

	fmt.Println("Host Tools")
	fmt.Println(strings.Repeat("-", 30))
	for _, t := range status.Tools {
		printToolLine(t)
	}

	if status.Checkout == nil {
		fmt.Println()
		fmt.Println("No configuration found. Run 'cva6-setup init' first.")
		return
	}

	c := status.Checkout
	fmt.Println()
	fmt.Printf("Checkout %s\n", c.RepoPath)
	fmt.Println(strings.Repeat("-", 30))
	printBoolLine("valid CVA6 checkout", c.ValidCheckout)
	if c.MissingPackages > 0 {
		fmt.Printf("  [!!] OS packages missing (%d)\n", c.MissingPackages)
	} else {
		fmt.Println("  [OK] OS packages installed")
	}
	printBoolLine("toolchain patch applied", c.PatchApplied)
	printBoolLine("virtual environment present", c.VenvPresent)
	printBoolLine("shell profile registered", c.ProfileBlock)
}

func printToolLine(t ToolStatus) {
	if !t.Found {
		fmt.Printf("  [!!] %-12s not found\n", t.Name)
		return
	}
	if t.Version == "" {
		fmt.Printf("  [OK] %s\n", t.Name)
		return
	}
	fmt.Printf("  [OK] %-12s %s\n", t.Name, t.Version)
}

func printBoolLine(label string, ok bool) {
	mark := "[OK]"
	if !ok {
		mark = "[--]"
	}
	fmt.Printf("  %s %s\n", mark, label)
}
