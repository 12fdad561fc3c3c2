// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/internal/runner"
	"github.com/invowk/nrun/internal/testutil"
	"github.com/invowk/nrun/internal/tui"
	"github.com/invowk/nrun/pkg/pkgmgr"
)

// Launch changes the process working directory, so these tests do not run
// in parallel.

const sampleManifest = `{
  "name": "demo-app",
  "scripts": {
    "dev": "vite",
    "build": "tsc && vite build",
    "test": "vitest run"
  }
}`

type (
	// stubPicker selects the row at index Select, or cancels when Select is negative.
	stubPicker struct {
		Select int
		Err    error

		calls int
		req   tui.PickRequest
	}

	runCall struct {
		pm     pkgmgr.PackageManager
		script string
	}

	fakeRunner struct {
		exitCode runner.ExitCode
		err      error
		calls    []runCall
	}
)

func (p *stubPicker) Pick(_ context.Context, req tui.PickRequest) (string, bool, error) {
	p.calls++
	p.req = req
	if p.Err != nil {
		return "", false, p.Err
	}
	if p.Select < 0 {
		return "", false, nil
	}
	return req.Rows[p.Select], true, nil
}

func (r *fakeRunner) Run(_ context.Context, pm pkgmgr.PackageManager, script string) (*runner.Result, error) {
	r.calls = append(r.calls, runCall{pm: pm, script: script})
	if r.err != nil {
		return nil, r.err
	}
	return &runner.Result{ExitCode: r.exitCode}, nil
}

type harness struct {
	launcher *Launcher
	picker   *stubPicker
	runner   *fakeRunner
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))

	h := &harness{
		picker: &stubPicker{},
		runner: &fakeRunner{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	h.launcher = &Launcher{Picker: h.picker, Runner: h.runner, Stdout: h.stdout, Stderr: h.stderr}
	return h
}

func TestLaunch_NoManifest(t *testing.T) {
	h := newHarness(t)

	code, err := h.launcher.Launch(context.Background(), Options{})
	if err != nil || code != 0 {
		t.Fatalf("Launch() = %d, %v; want 0, nil", code, err)
	}
	if got := h.stderr.String(); got != "Error: There is no package.json in the current directory\n" {
		t.Errorf("stderr = %q", got)
	}
	if h.picker.calls != 0 || len(h.runner.calls) != 0 {
		t.Error("nothing should be picked or run without a manifest")
	}
}

func TestLaunch_NoScripts(t *testing.T) {
	tests := map[string]string{
		"missing scripts":    `{"name": "x"}`,
		"empty scripts":      `{"scripts": {}}`,
		"scripts not object": `{"scripts": ["build"]}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			testutil.WriteManifest(t, ".", content)

			code, err := h.launcher.Launch(context.Background(), Options{})
			if err != nil || code != 0 {
				t.Fatalf("Launch() = %d, %v; want 0, nil", code, err)
			}
			if got := h.stderr.String(); got != "Error: There are no scripts in package.json\n" {
				t.Errorf("stderr = %q", got)
			}
			if h.picker.calls != 0 {
				t.Error("picker should not be shown")
			}
		})
	}
}

func TestLaunch_MalformedManifest(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", `{"scripts": {`)

	_, err := h.launcher.Launch(context.Background(), Options{})
	if err == nil {
		t.Fatal("Launch() should fail on malformed JSON")
	}
	if !strings.Contains(err.Error(), "package.json") {
		t.Errorf("error %q should name package.json", err)
	}
	if h.picker.calls != 0 {
		t.Error("picker should not be shown")
	}
}

func TestLaunch_PickAndRun(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)
	h.picker.Select = 1

	code, err := h.launcher.Launch(context.Background(), Options{})
	if err != nil || code != 0 {
		t.Fatalf("Launch() = %d, %v; want 0, nil", code, err)
	}

	wantRows := []string{"dev = vite", "build = tsc && vite build", "test = vitest run"}
	if strings.Join(h.picker.req.Rows, "|") != strings.Join(wantRows, "|") {
		t.Errorf("rows = %q, want %q", h.picker.req.Rows, wantRows)
	}
	if h.picker.req.Title != "demo-app" {
		t.Errorf("title = %q, want demo-app", h.picker.req.Title)
	}

	want := []runCall{{pm: pkgmgr.Npm, script: "build"}}
	if len(h.runner.calls) != 1 || h.runner.calls[0] != want[0] {
		t.Errorf("runner calls = %+v, want %+v", h.runner.calls, want)
	}
}

func TestLaunch_PnpmLockfile(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)
	testutil.WritePnpmLockfile(t, ".")

	if _, err := h.launcher.Launch(context.Background(), Options{}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(h.runner.calls) != 1 || h.runner.calls[0].pm != pkgmgr.Pnpm {
		t.Errorf("runner calls = %+v, want pnpm", h.runner.calls)
	}
}

func TestLaunch_Cancelled(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)
	h.picker.Select = -1

	code, err := h.launcher.Launch(context.Background(), Options{})
	if err != nil || code != 0 {
		t.Fatalf("Launch() = %d, %v; want 0, nil", code, err)
	}
	if len(h.runner.calls) != 0 {
		t.Error("nothing should run after cancellation")
	}
	if h.stdout.Len() != 0 || h.stderr.Len() != 0 {
		t.Errorf("cancellation should be silent, got stdout=%q stderr=%q", h.stdout, h.stderr)
	}
}

func TestLaunch_PickerFailure(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)
	h.picker.Err = tui.ErrNoTTY

	_, err := h.launcher.Launch(context.Background(), Options{})
	if !errors.Is(err, tui.ErrNoTTY) {
		t.Fatalf("Launch() error = %v, want ErrNoTTY", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Operation != "start script picker" {
		t.Errorf("error should carry the picker operation, got %v", err)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("a missing terminal should come with suggestions")
	}
	if len(h.runner.calls) != 0 {
		t.Error("nothing should run when the picker fails")
	}
}

func TestLaunch_ExitCodePolicy(t *testing.T) {
	tests := []struct {
		name      string
		propagate bool
		want      runner.ExitCode
	}{
		{"not propagated", false, 0},
		{"propagated", true, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			testutil.WriteManifest(t, ".", sampleManifest)
			h.runner.exitCode = 7

			code, err := h.launcher.Launch(context.Background(), Options{PropagateExitCode: tt.propagate})
			if err != nil {
				t.Fatalf("Launch() error = %v", err)
			}
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestLaunch_RunnerFailure(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)
	h.runner.err = errors.New("spawn failed")

	if _, err := h.launcher.Launch(context.Background(), Options{}); err == nil {
		t.Fatal("Launch() should surface spawn failures")
	}
}

func TestLaunch_List(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)

	code, err := h.launcher.Launch(context.Background(), Options{List: true})
	if err != nil || code != 0 {
		t.Fatalf("Launch() = %d, %v; want 0, nil", code, err)
	}

	want := "dev = vite\nbuild = tsc && vite build\ntest = vitest run\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout, want)
	}
	if h.picker.calls != 0 || len(h.runner.calls) != 0 {
		t.Error("--list should neither pick nor run")
	}
}

func TestLaunch_ScriptByName(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)

	if _, err := h.launcher.Launch(context.Background(), Options{Script: "test"}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if h.picker.calls != 0 {
		t.Error("picker should be skipped when a script is named")
	}
	if len(h.runner.calls) != 1 || h.runner.calls[0].script != "test" {
		t.Errorf("runner calls = %+v", h.runner.calls)
	}
}

func TestLaunch_UnknownScript(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", sampleManifest)

	_, err := h.launcher.Launch(context.Background(), Options{Script: "deploy"})

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Launch() error = %v, want *issue.ActionableError", err)
	}
	if ae.Operation != "find script" || ae.Resource != "deploy" {
		t.Errorf("error context = %q / %q", ae.Operation, ae.Resource)
	}
	if !slices.Contains(ae.Suggestions, "Available scripts: dev, build, test") {
		t.Errorf("suggestions %q should list the available scripts", ae.Suggestions)
	}
	if len(h.runner.calls) != 0 {
		t.Error("nothing should run for an unknown script")
	}
}

func TestLaunch_Dir(t *testing.T) {
	project := filepath.Join(t.TempDir(), "project")
	testutil.WriteManifest(t, project, sampleManifest)
	h := newHarness(t)

	if _, err := h.launcher.Launch(context.Background(), Options{Dir: project, List: true}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "dev = vite\n") {
		t.Errorf("stdout = %q", h.stdout)
	}
}

func TestLaunch_NameWithEquals(t *testing.T) {
	h := newHarness(t)
	testutil.WriteManifest(t, ".", `{"scripts": {"a=b": "echo"}}`)

	if _, err := h.launcher.Launch(context.Background(), Options{}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(h.runner.calls) != 1 || h.runner.calls[0].script != "a=b" {
		t.Errorf("runner calls = %+v, want script a=b", h.runner.calls)
	}
}
