package link

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/jamesbehr/lnwrap/logging"
)

// SignalExitCode is reported for a child that terminated without an exit
// code, for instance because it was killed by a signal.
const SignalExitCode = -1

var ErrLaunch = errors.New("link: failed to launch process")

// Invocation is a single, fully built child process command line.
type Invocation struct {
	Program string
	Args    []string

	// Dir is the working directory of the child. Empty means inherit.
	Dir string
}

func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Program}, inv.Args...), " ")
}

// Runner executes an invocation and blocks until it completes. A completed
// process yields its exit code and a nil error whatever that code is; the
// error is reserved for processes that never ran and is a *LaunchError.
type Runner interface {
	Run(inv Invocation) (int, error)
}

// LaunchError reports that the child process could not be created.
type LaunchError struct {
	Program string
	Args    []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("link: launch %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunch
}

// ExecRunner runs invocations with os/exec. The program is looked up in PATH
// and the child inherits the environment. Nil streams default to the
// parent's standard streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(inv Invocation) (int, error) {
	cmd := exec.Command(inv.Program, inv.Args...)
	cmd.Dir = inv.Dir

	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return 0, &LaunchError{Program: inv.Program, Args: inv.Args, Err: err}
	}

	// Non-file streams are copied by os/exec. The child has still run to
	// completion when such a copy fails, so the failure is only logged.
	err := cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			logger := logging.GetLogger("link")
			logger.Warn().
				Err(err).
				Str("command", inv.Program).
				Msg("Copying command stream failed")
		}
	}

	return exitCode(cmd.ProcessState), nil
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return SignalExitCode
	}

	// ExitCode is -1 when the process was terminated by a signal.
	code := state.ExitCode()
	if code < 0 {
		return SignalExitCode
	}

	return code
}
