package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/cva6-tools/cva6-setup/internal/config"
)

// runPathsGroup prompts for the CVA6 checkout and the install target.
func runPathsGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CVA6 Repository").
				Description("Path to your CVA6 checkout (~ is expanded)").
				Placeholder("~/cva6").
				Value(&result.RepoPath).
				Validate(validatePath),
			huh.NewInput().
				Title("Toolchain Install Path").
				Description("Created if it does not exist yet").
				Placeholder("~/riscv").
				Value(&result.InstallPath).
				Validate(validatePath),
		).Title("Installation Paths"),
	).RunWithContext(ctx)
}

// runThreadsGroup prompts for the build parallelism. The form validator
// rejects non-numeric input inline while the prompt is open; once an answer
// is accepted there is no retry, and the non-interactive path (config file)
// treats a bad thread count as a fatal validation error instead.
func runThreadsGroup(ctx context.Context, result *Result, defaults Defaults) error {
	result.UseAllThreads = true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use All Threads?").
				Description(threadDescription(defaults.CPUCount)).
				Value(&result.UseAllThreads),
		).Title("Build Parallelism"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.UseAllThreads {
		result.Threads = defaults.CPUCount
		return nil
	}

	var threadsInput string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Thread Count").
				Description("Positive integer passed to the toolchain build").
				Placeholder("4").
				Value(&threadsInput).
				Validate(validateThreads),
		).Title("Build Parallelism"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.Threads, err = parseThreads(threadsInput)
	return err
}

// runConfigNameGroup prompts for the toolchain configuration name,
// defaulting from the detected host compiler version.
func runConfigNameGroup(ctx context.Context, result *Result, defaults Defaults) error {
	defaultName := config.DefaultConfigName(defaults.GCCVersion)
	result.ConfigName = defaultName

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Toolchain Configuration").
				Description("Leave the default unless you maintain a custom config").
				Placeholder(defaultName).
				Value(&result.ConfigName).
				Validate(validateConfigName),
		).Title("Toolchain Configuration"),
	).RunWithContext(ctx)
}

// runOptionalStagesGroup prompts for the optional pipeline stages.
func runOptionalStagesGroup(ctx context.Context, result *Result) error {
	var simulatorsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Build Documentation?").
				Description("Installs the docs tooling and builds the HTML documentation").
				Value(&result.BuildDocs),
			huh.NewConfirm().
				Title("Run Smoke Tests?").
				Description("Runs a minimal regression after the toolchain build").
				Value(&result.RunSmokeTests),
			huh.NewConfirm().
				Title("Register Shell Environment?").
				Description("Appends a marked block to your shell profile (safe to rerun)").
				Value(&result.RegisterShell),
		).Title("Optional Stages"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if !result.RunSmokeTests {
		return nil
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Smoke Test Simulators").
				Description("Comma-separated list, exported as DV_SIMULATORS").
				Placeholder(strings.Join(config.DefaultSimulators(), ",")).
				Value(&simulatorsInput),
		).Title("Smoke Tests"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if sims := parseSimulators(simulatorsInput); len(sims) > 0 {
		result.Simulators = sims
	}
	return nil
}

func threadDescription(cpus int) string {
	return "Detected " + strconv.Itoa(cpus) + " processing units"
}

// parseThreads converts a validated thread-count answer to an int.
func parseThreads(input string) (int, error) {
	if err := validateThreads(input); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(input))
}

// parseSimulators splits a comma-separated simulator list, dropping empties.
func parseSimulators(input string) []string {
	var sims []string
	for _, part := range strings.Split(input, ",") {
		if s := strings.TrimSpace(part); s != "" {
			sims = append(sims, s)
		}
	}
	return sims
}
