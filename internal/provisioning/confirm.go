package provisioning

import (
	"github.com/charmbracelet/huh"
)

// InteractiveConfirmer prompts on the terminal via huh.
type InteractiveConfirmer struct{}

// Confirm implements Confirmer.
func (InteractiveConfirmer) Confirm(_, question string) (bool, error) {
	var answer bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Value(&answer),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return answer, nil
}

// ScriptedConfirmer replays pre-decided answers, keyed by phase name.
// Used when stage toggles come from the config file or the --yes flag.
type ScriptedConfirmer struct {
	Answers map[string]bool
}

// Confirm implements Confirmer. Phases without a recorded answer are skipped.
func (s ScriptedConfirmer) Confirm(phase, _ string) (bool, error) {
	return s.Answers[phase], nil
}

// FromToggles builds a ScriptedConfirmer from the config stage toggles.
func FromToggles(docs, smokeTests, shellProfile bool) ScriptedConfirmer {
	return ScriptedConfirmer{Answers: map[string]bool{
		PhaseDocs:         docs,
		PhaseSmokeTests:   smokeTests,
		PhaseShellProfile: shellProfile,
	}}
}
