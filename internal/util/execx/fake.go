package execx

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are matched by binary
// name plus a joined prefix of the arguments; unmatched commands succeed with
// empty output. Every invocation is recorded for assertion.
type FakeRunner struct {
	mu        sync.Mutex
	responses []fakeResponse
	Calls     []Command
}

type fakeResponse struct {
	name   string
	prefix string
	output string
	err    error
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// Respond registers a scripted response for commands whose binary matches
// name and whose argument list starts with the given prefix words.
func (f *FakeRunner) Respond(name, argPrefix, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{name: name, prefix: argPrefix, output: output, err: err})
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, cmd Command) error {
	_, err := f.dispatch(cmd)
	return err
}

// Output implements Runner.
func (f *FakeRunner) Output(_ context.Context, cmd Command) (string, error) {
	return f.dispatch(cmd)
}

// CallsTo returns the recorded invocations of the given binary.
func (f *FakeRunner) CallsTo(name string) []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Command
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRunner) dispatch(cmd Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmd)

	joined := strings.Join(cmd.Args, " ")
	for _, r := range f.responses {
		if r.name == cmd.Name && strings.HasPrefix(joined, r.prefix) {
			return r.output, r.err
		}
	}
	return "", nil
}
