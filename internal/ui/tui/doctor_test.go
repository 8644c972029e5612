package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDoctor(t *testing.T) {
	t.Run("without checkout", func(t *testing.T) {
		out := RenderDoctor(DoctorReport{
			GCCVersion: "13.1.0",
			CPUCount:   8,
			Tools: []ToolRow{
				{Name: "gcc", Found: true, Version: "gcc (Ubuntu) 13.1.0"},
				{Name: "patch", Found: false},
			},
		})

		assert.Contains(t, out, "cva6-setup environment")
		assert.Contains(t, out, "gcc 13.1.0, 8 processing units")
		assert.Contains(t, out, "not found")
		assert.Contains(t, out, "cva6-setup init")
	})

	t.Run("with checkout rows", func(t *testing.T) {
		out := RenderDoctor(DoctorReport{
			GCCVersion: "13.1.0",
			CPUCount:   4,
			Checkout: &CheckoutRows{
				RepoPath:        "/home/user/cva6",
				ValidCheckout:   true,
				MissingPackages: 3,
				PatchApplied:    false,
				VenvPresent:     true,
				ProfileBlock:    false,
			},
		})

		assert.Contains(t, out, "Checkout /home/user/cva6")
		assert.Contains(t, out, "OS packages missing (3)")
		assert.Contains(t, out, "virtual environment present")
		assert.NotContains(t, out, "cva6-setup init")
	})
}
