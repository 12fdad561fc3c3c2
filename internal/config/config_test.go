// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/internal/tui"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.UI.Height != 50 {
		t.Errorf("expected default height to be 50, got %d", cfg.UI.Height)
	}
	if !cfg.UI.Reverse {
		t.Error("expected reverse layout by default")
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.PropagateExitCode {
		t.Error("expected exit codes not to be propagated by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("HOME", "/tmp/home")
	t.Setenv("AppData", "/tmp/appdata")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want a directory named %q", dir, AppName)
	}

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("ConfigFilePath() = %q", path)
	}
}

func TestLoad_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("HOME", home)
	t.Setenv("AppData", filepath.Join(home, "AppData"))

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("ui: height: 70\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Height != 70 {
		t.Errorf("UI.Height = %d, want 70", cfg.UI.Height)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *DefaultConfig())
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
ui: {
	height:  30
	verbose: true
}
propagate_exit_code: true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UI.Height != 30 {
		t.Errorf("UI.Height = %d, want 30", cfg.UI.Height)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
	if !cfg.UI.Reverse {
		t.Error("UI.Reverse should keep its default when unset")
	}
	if !cfg.PropagateExitCode {
		t.Error("PropagateExitCode should be true")
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte("ui: reverse: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Reverse {
		t.Error("UI.Reverse should be false")
	}
	if cfg.UI.Height != tui.DefaultHeightPercent {
		t.Errorf("UI.Height = %d, want default", cfg.UI.Height)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Resource != path {
		t.Errorf("Resource = %q, want %q", ae.Resource, path)
	}
	if !errors.Is(err, errConfigNotFound) {
		t.Errorf("error should wrap errConfigNotFound, got %v", err)
	}
	if n := strings.Count(err.Error(), path); n != 1 {
		t.Errorf("error %q names the path %d times, want once", err, n)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"height too small", "ui: height: 5\n", "ui.height"},
		{"height too large", "ui: height: 101\n", "ui.height"},
		{"height not an int", "ui: height: \"half\"\n", "ui.height"},
		{"unknown key", "colour: \"red\"\n", "colour"},
		{"wrong type", "propagate_exit_code: \"yes\"\n", "propagate_exit_code"},
		{"syntax error", "ui: {\n", "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() should reject the config")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
			if n := strings.Count(err.Error(), path); n != 1 {
				t.Errorf("error %q names %s %d times, want once", err, path, n)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		height  int
		wantErr bool
	}{
		{"minimum", tui.MinHeightPercent, false},
		{"default", tui.DefaultHeightPercent, false},
		{"maximum", tui.MaxHeightPercent, false},
		{"zero", 0, true},
		{"below minimum", tui.MinHeightPercent - 1, true},
		{"above maximum", tui.MaxHeightPercent + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.UI.Height = tt.height
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
			var cfgErr *InvalidConfigError
			if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 1 {
				t.Fatalf("expected one field error, got %v", err)
			}
			if !errors.Is(cfgErr.FieldErrors[0], ErrInvalidUIConfig) {
				t.Errorf("field error should wrap ErrInvalidUIConfig, got %v", cfgErr.FieldErrors[0])
			}
			if !errors.Is(err, tui.ErrInvalidHeightPercent) {
				t.Errorf("error should reach tui.ErrInvalidHeightPercent, got %v", err)
			}
			var heightErr *tui.InvalidHeightPercentError
			if !errors.As(err, &heightErr) || heightErr.Value != tt.height {
				t.Errorf("error should carry the rejected height %d, got %v", tt.height, err)
			}
		})
	}
}
