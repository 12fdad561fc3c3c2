// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// nrun runs in-process through testscript.RunMain. npm and pnpm are
// replaced by a fake package manager that prints its argv, echoes stdin
// when asked to, and exits with $FAKE_PM_EXIT.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	cmd "github.com/invowk/nrun/cmd/nrun"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"nrun": cmd.Main,
		"npm":  fakePackageManager,
		"pnpm": fakePackageManager,
	}))
}

// fakePackageManager stands in for npm and pnpm.
func fakePackageManager() int {
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	fmt.Printf("fake %s argv: %s\n", name, strings.Join(os.Args[1:], " "))

	if os.Getenv("FAKE_PM_STDIN") != "" {
		data, _ := io.ReadAll(os.Stdin)
		fmt.Printf("fake %s stdin: %s", name, data)
	}
	if os.Getenv("FAKE_PM_STDERR") != "" {
		fmt.Fprintln(os.Stderr, "fake "+name+" stderr")
	}

	code, err := strconv.Atoi(os.Getenv("FAKE_PM_EXIT"))
	if err != nil {
		return 0
	}
	return code
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep the user's config out of the tests.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
