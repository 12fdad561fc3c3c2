// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/pkg/pkgmgr"
)

type (
	// Runner executes package.json scripts through a package manager.
	Runner struct {
		// Stdin is handed to the child. An *os.File is inherited directly.
		Stdin io.Reader
		// Stdout receives the run header and the child's output.
		Stdout io.Writer
		// Stderr receives the failure notice and the child's error output.
		Stderr io.Writer
		// Env is the child's environment; nil inherits the parent's.
		Env []string
	}

	// Result describes how the child process ended.
	Result struct {
		// ExitCode is the child's exit status (1 when it was signaled).
		ExitCode ExitCode
		// Signaled reports that the child was terminated by a signal and
		// therefore has no exit status of its own.
		Signaled bool
	}
)

// New returns a Runner wired to the process's standard streams.
func New() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Success reports whether the child exited with status 0.
func (r *Result) Success() bool { return !r.Signaled && r.ExitCode.IsSuccess() }

// Run prints the "Running: <pm> run <script>" header, spawns the package
// manager and blocks until it exits.
//
// A non-zero exit is reported on Stderr and returned in the Result; it is
// not an error. An error is returned only when the process could not be
// started.
//
// The child is not bound to ctx: an interrupt typed at the terminal reaches
// the child directly, and Run keeps waiting so the exit status can be
// reported.
func (r *Runner) Run(ctx context.Context, pm pkgmgr.PackageManager, script string) (*Result, error) {
	args := pm.RunArgs(script)
	display := pm.String() + " " + strings.Join(args, " ")

	if ok, errs := pm.IsValid(); !ok {
		return nil, issue.WrapWithContext(errs[0], "execute "+display, "")
	}

	select {
	case <-ctx.Done():
		return nil, issue.WrapWithContext(ctx.Err(), "execute "+display, "")
	default:
	}

	fmt.Fprintf(r.Stdout, "Running: %s\n", display)

	cmd := exec.Command(pm.String(), args...) //nolint:gosec,noctx // argv is fixed; ctx must not kill the child
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = r.Env

	result, err := extractResult(cmd.Run())
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("execute " + display).
			WithSuggestion(fmt.Sprintf("Install %s and make sure it is on your PATH", pm)).
			Wrap(err).
			BuildError()
	}

	if !result.Success() {
		fmt.Fprintf(r.Stderr, "Command failed with exit code: %s\n", result.codeString())
	}

	return result, nil
}

// extractResult turns the error returned by exec.Cmd.Run into a Result.
// Only failures to start the process are passed through as errors.
func extractResult(err error) (*Result, error) {
	if err == nil {
		return &Result{}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, err
	}

	code := exitErr.ExitCode()
	if code < 0 {
		return &Result{ExitCode: 1, Signaled: true}, nil
	}

	return &Result{ExitCode: exitCodeFromStatus(code)}, nil
}

// codeString renders the exit status for the failure notice.
func (r *Result) codeString() string {
	if r.Signaled {
		return "none"
	}
	return r.ExitCode.String()
}
