// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/nrun/internal/app/launch"
	"github.com/invowk/nrun/internal/config"
	"github.com/invowk/nrun/internal/runner"
	"github.com/invowk/nrun/internal/tui"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; the root command delegates to it.
	App struct {
		Config ConfigProvider
		Picker tui.Picker
		Runner launch.ScriptRunner
		stdin  *os.File
		stdout io.Writer
		stderr io.Writer

		// verbose is resolved per invocation from --verbose and ui.verbose.
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults; the picker and runner
	// defaults are built per invocation from the loaded configuration.
	Dependencies struct {
		Config ConfigProvider
		Picker tui.Picker
		Runner launch.ScriptRunner
		Stdin  *os.File
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// invocation holds the parsed command line of one run.
	invocation struct {
		path              string
		list              bool
		propagateExitCode bool
		verbose           bool
		configPath        string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Picker: deps.Picker,
		Runner: deps.Runner,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// run executes one invocation. A non-zero exit code without an error is
// returned as a silent *ExitError.
func (a *App) run(ctx context.Context, inv invocation, script string) error {
	cfg := a.loadConfig(ctx, inv.configPath)
	a.verbose = inv.verbose || cfg.UI.Verbose

	logger := newLogger(a.stderr, a.verbose)
	if cfg.Source != "" {
		logger.Debug("config loaded", "path", cfg.Source)
	}

	launcher := &launch.Launcher{
		Picker: a.picker(cfg),
		Runner: a.runner(),
		Stdout: a.stdout,
		Stderr: a.stderr,
		Logger: logger,
	}

	code, err := launcher.Launch(ctx, launch.Options{
		Dir:               inv.path,
		Script:            script,
		List:              inv.list,
		PropagateExitCode: inv.propagateExitCode || cfg.PropagateExitCode,
	})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// loadConfig loads the configuration, falling back to defaults with a
// warning when the file cannot be used.
func (a *App) loadConfig(ctx context.Context, configPath string) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning:")+" "+formatErrorForDisplay(err, false)+" (using defaults)")
		return config.DefaultConfig()
	}
	return cfg
}

func (a *App) picker(cfg *config.Config) tui.Picker {
	if a.Picker != nil {
		return a.Picker
	}
	return tui.NewFuzzyPicker(tui.Config{
		HeightPercent: cfg.UI.Height,
		Reverse:       cfg.UI.Reverse,
		Input:         a.stdin,
		Output:        a.stderr,
	})
}

func (a *App) runner() launch.ScriptRunner {
	if a.Runner != nil {
		return a.Runner
	}
	return &runner.Runner{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}
}

// newLogger returns the diagnostic logger. Only warnings are shown unless
// verbose output was requested.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "nrun",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
