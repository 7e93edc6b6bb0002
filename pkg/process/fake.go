package process

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// FakeResult is the canned outcome of a FakeRunner invocation
type FakeResult struct {
	Output []byte
	Err    error
}

// FakeRunner is a Runner returning canned results keyed by the command line.
// Unknown commands fail with exec.ErrNotFound semantics.
type FakeRunner struct {
	mu      sync.Mutex
	Results map[string]FakeResult
	Calls   []Command
}

// NewFakeRunner creates a FakeRunner with no canned results
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Results: make(map[string]FakeResult)}
}

// On registers the result for the given command line
func (f *FakeRunner) On(result FakeResult, name string, args ...string) *FakeRunner {
	f.Results[commandLine(name, args)] = result
	return f
}

func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.record(Command{Name: name, Args: args})
	res, ok := f.Results[commandLine(name, args)]
	if !ok {
		return nil, notFound(name)
	}
	return res.Output, res.Err
}

func (f *FakeRunner) Run(ctx context.Context, c Command) error {
	f.record(c)
	res, ok := f.Results[commandLine(c.Name, c.Args)]
	if !ok {
		return notFound(c.Name)
	}
	if c.Stdout != nil && len(res.Output) > 0 {
		if _, err := c.Stdout.Write(res.Output); err != nil {
			return err
		}
	}
	return res.Err
}

func (f *FakeRunner) record(c Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func notFound(name string) error {
	return commandError(&exec.Error{Name: name, Err: exec.ErrNotFound}, name, nil, "")
}
