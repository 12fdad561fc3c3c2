// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/pkg/manifest"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the nrun command bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var inv invocation

	rootCmd := &cobra.Command{
		Use:   "nrun [script]",
		Short: "Fuzzy-pick and run package.json scripts",
		Long: TitleStyle.Render("nrun") + SubtitleStyle.Render(" - fuzzy-pick and run package.json scripts") + `

nrun lists the scripts of the package.json in the current directory,
lets you fuzzy-search them and runs the one you pick with pnpm when a
pnpm-lock.yaml is present, or npm otherwise.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("nrun") + `                    Pick a script interactively
  ` + CmdStyle.Render("nrun build") + `              Run the 'build' script directly
  ` + CmdStyle.Render("nrun -p ./web") + `           Use the project in ./web
  ` + CmdStyle.Render("nrun --list") + `             Print the available scripts`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScripts(&inv),
		RunE: func(cmd *cobra.Command, args []string) error {
			script := ""
			if len(args) > 0 {
				script = args[0]
			}
			return app.run(cmd.Context(), inv, script)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&inv.path, "path", "p", "", "project directory containing package.json")
	flags.BoolVarP(&inv.list, "list", "l", false, "print the available scripts and exit")
	flags.BoolVar(&inv.propagateExitCode, "propagate-exit-code", false, "exit with the script's exit code")
	flags.BoolVarP(&inv.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&inv.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/nrun/config.cue)")

	_ = rootCmd.MarkFlagDirname("path")
	_ = rootCmd.MarkFlagFilename("config", "cue")

	return rootCmd
}

// completeScripts completes the script argument with the names in package.json.
func completeScripts(inv *invocation) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		m, err := manifest.Read(inv.path)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, script := range m.Scripts() {
			if strings.HasPrefix(script.Name, toComplete) {
				completions = append(completions, script.Name+"\t"+script.Command)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs nrun with the process arguments and returns its exit code.
func Main() int {
	return execute(context.Background(), NewApp(Dependencies{}), nil)
}

// Execute runs nrun and exits the process. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// execute runs the root command and maps its error to an exit code. A nil
// args uses os.Args.
func execute(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	if args != nil {
		rootCmd.SetArgs(args)
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.renderError),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}

// renderError prints a fatal error as "Error: <message>". Silent exit
// errors print nothing.
func (a *App) renderError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, a.verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
