// Package process runs external commands on behalf of macro producers and
// the fabric runner. It exists so producers can be tested with a fake
// Runner instead of the real toolchain.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	dynerrors "github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/logging"
)

// Command describes a command with its working directory and streams
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes commands
type Runner interface {
	// Output runs name with args and returns its standard output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs cmd with the streams it carries
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner is the os/exec backed Runner
type ExecRunner struct{}

// NewRunner returns a Runner that executes real processes
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.LogCommand(logging.GetLogger("process"), name, args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, commandError(err, name, args, stderr.String())
	}
	return out, nil
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	logging.LogCommand(logging.GetLogger("process"), c.Name, c.Args)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return commandError(err, c.Name, c.Args, "")
	}
	return nil
}

func commandError(err error, name string, args []string, stderr string) error {
	wrapped := dynerrors.Wrapf(err, dynerrors.ErrCommand, "%s %s failed", name, strings.Join(args, " "))
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		wrapped.WithDetail("stderr", stderr)
	}
	return wrapped
}

// IsNotFound reports whether err means the executable does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
