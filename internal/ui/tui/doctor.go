// Package tui renders styled terminal output for the doctor command.
package tui

import (
	"fmt"
	"strings"
)

// DoctorReport is the renderable environment diagnosis.
type DoctorReport struct {
	// Host discovery
	GCCVersion string
	CPUCount   int

	// Tool availability, in display order.
	Tools []ToolRow

	// Provisioning predicates. Nil Checkout means no config was found and
	// the per-checkout rows are omitted.
	Checkout *CheckoutRows
}

// ToolRow is one host tool line.
type ToolRow struct {
	Name    string
	Found   bool
	Version string
}

// CheckoutRows holds the idempotency predicates evaluated read-only
// against a configured checkout.
type CheckoutRows struct {
	RepoPath        string
	ValidCheckout   bool
	MissingPackages int
	PatchApplied    bool
	VenvPresent     bool
	ProfileBlock    bool
}

// RenderDoctor renders the report with lipgloss styling for TTYs.
func RenderDoctor(r DoctorReport) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("cva6-setup environment"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("gcc %s, %d processing units", r.GCCVersion, r.CPUCount)))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Host Tools"))
	sb.WriteString("\n")
	for _, tool := range r.Tools {
		sb.WriteString(renderToolRow(tool))
		sb.WriteString("\n")
	}

	if r.Checkout != nil {
		sb.WriteString(sectionStyle.Render("Checkout " + r.Checkout.RepoPath))
		sb.WriteString("\n")
		sb.WriteString(renderBoolRow("valid CVA6 checkout", r.Checkout.ValidCheckout))
		sb.WriteString(renderCountRow("OS packages missing", r.Checkout.MissingPackages))
		sb.WriteString(renderBoolRow("toolchain patch applied", r.Checkout.PatchApplied))
		sb.WriteString(renderBoolRow("virtual environment present", r.Checkout.VenvPresent))
		sb.WriteString(renderBoolRow("shell profile registered", r.Checkout.ProfileBlock))
	} else {
		sb.WriteString(dimStyle.Render("\nNo configuration found. Run 'cva6-setup init' first."))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderToolRow(tool ToolRow) string {
	mark := readyStyle.Render(checkMark)
	detail := tool.Version
	if !tool.Found {
		mark = failedStyle.Render(crossMark)
		detail = "not found"
	}
	if detail == "" {
		return fmt.Sprintf("  %s %s", mark, tool.Name)
	}
	return fmt.Sprintf("  %s %-12s %s", mark, tool.Name, dimStyle.Render(detail))
}

func renderBoolRow(label string, ok bool) string {
	mark := readyStyle.Render(checkMark)
	if !ok {
		mark = dimStyle.Render(dashMark)
	}
	return fmt.Sprintf("  %s %s\n", mark, label)
}

func renderCountRow(label string, n int) string {
	mark := readyStyle.Render(checkMark)
	detail := ""
	if n > 0 {
		mark = failedStyle.Render(crossMark)
		detail = fmt.Sprintf(" (%d)", n)
	}
	return fmt.Sprintf("  %s %s%s\n", mark, label, detail)
}
