// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/internal/runner"
	"github.com/invowk/nrun/internal/tui"
	"github.com/invowk/nrun/pkg/manifest"
	"github.com/invowk/nrun/pkg/pkgmgr"
)

const (
	msgNoManifest = "Error: There is no package.json in the current directory"
	msgNoScripts  = "Error: There are no scripts in package.json"
)

type (
	// ScriptRunner runs a single script through a package manager.
	// *runner.Runner is the production implementation.
	ScriptRunner interface {
		Run(ctx context.Context, pm pkgmgr.PackageManager, script string) (*runner.Result, error)
	}

	// Options is one nrun invocation.
	Options struct {
		// Dir is the project directory; empty keeps the current directory.
		Dir string
		// Script runs the named script directly instead of opening the picker.
		Script string
		// List prints the candidate rows instead of running anything.
		List bool
		// PropagateExitCode makes Launch return the script's own exit code.
		PropagateExitCode bool
	}

	// Launcher runs the pipeline. Zero-value fields fall back to the
	// terminal picker, the process runner, the standard streams and a
	// discarding logger.
	Launcher struct {
		Picker tui.Picker
		Runner ScriptRunner
		Stdout io.Writer
		Stderr io.Writer
		Logger *log.Logger
	}
)

// Launch runs one invocation and returns the exit code nrun should exit
// with. Errors are fatal and always carry operation context.
func (l *Launcher) Launch(ctx context.Context, opts Options) (runner.ExitCode, error) {
	l.defaults()

	if err := BindWorkdir(opts.Dir); err != nil {
		return 0, err
	}
	l.Logger.Debug("working directory bound", "dir", opts.Dir)

	m, err := manifest.Read("")
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			fmt.Fprintln(l.Stderr, msgNoManifest)
			return 0, nil
		}
		return 0, err
	}

	scripts := m.Scripts()
	l.Logger.Debug("manifest read", "path", m.Path(), "scripts", len(scripts))
	if len(scripts) == 0 {
		fmt.Fprintln(l.Stderr, msgNoScripts)
		return 0, nil
	}

	if opts.List {
		for _, row := range scripts.Rows() {
			fmt.Fprintln(l.Stdout, row)
		}
		return 0, nil
	}

	pm := pkgmgr.Detect("")
	l.Logger.Debug("package manager resolved", "pm", pm)

	script, ok, err := l.selectScript(ctx, m, scripts, opts.Script)
	if err != nil || !ok {
		return 0, err
	}
	l.Logger.Debug("script selected", "name", script.Name, "command", script.Command)

	result, err := l.Runner.Run(ctx, pm, script.Name)
	if err != nil {
		return 0, err
	}
	l.Logger.Debug("script finished", "exit_code", result.ExitCode, "signaled", result.Signaled)

	if opts.PropagateExitCode && !result.Success() {
		return result.ExitCode, nil
	}
	return 0, nil
}

// selectScript resolves the script to run, either by name or through the
// picker. ok is false when the user made no selection.
func (l *Launcher) selectScript(ctx context.Context, m *manifest.Manifest, scripts manifest.Scripts, name string) (manifest.Script, bool, error) {
	if name != "" {
		script, found := scripts.Lookup(name)
		if !found {
			return manifest.Script{}, false, issue.NewErrorContext().
				WithOperation("find script").
				WithResource(name).
				WithSuggestion("Available scripts: "+strings.Join(scripts.Names(), ", ")).
				WithSuggestion("Run 'nrun --list' to see the scripts in package.json").
				Wrap(fmt.Errorf("no script named %q in %s", name, m.Path())).
				BuildError()
		}
		return script, true, nil
	}

	row, ok, err := l.Picker.Pick(ctx, tui.PickRequest{Title: m.Name(), Rows: scripts.Rows()})
	if err != nil {
		ec := issue.NewErrorContext().WithOperation("start script picker")
		if errors.Is(err, tui.ErrNoTTY) {
			ec.WithSuggestion("Run nrun from an interactive terminal").
				WithSuggestion("Pass the script name as an argument, e.g. 'nrun build'")
		}
		return manifest.Script{}, false, ec.Wrap(err).BuildError()
	}
	if !ok {
		l.Logger.Debug("no script selected")
		return manifest.Script{}, false, nil
	}

	// Rows are unique per script; the name split only matters for rows the
	// picker did not get from us.
	if script, found := scripts.ByRow(row); found {
		return script, true, nil
	}
	return manifest.Script{Name: manifest.NameFromRow(row)}, true, nil
}

func (l *Launcher) defaults() {
	if l.Stdout == nil {
		l.Stdout = os.Stdout
	}
	if l.Stderr == nil {
		l.Stderr = os.Stderr
	}
	if l.Logger == nil {
		l.Logger = log.New(io.Discard)
	}
	if l.Picker == nil {
		l.Picker = tui.NewFuzzyPicker(tui.DefaultConfig())
	}
	if l.Runner == nil {
		l.Runner = &runner.Runner{Stdin: os.Stdin, Stdout: l.Stdout, Stderr: l.Stderr}
	}
}
