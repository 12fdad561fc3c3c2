// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "nrun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	schemaDefinition = "#Config"
)

//go:embed config_schema.cue
var configSchema string

var errConfigNotFound = errors.New("config file not found")

// ConfigDir returns the nrun configuration directory: $XDG_CONFIG_HOME/nrun
// (defaulting to ~/.config/nrun) on Linux, ~/Library/Application Support/nrun
// on macOS and %AppData%\nrun on Windows.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// ConfigFilePath returns the default config file location.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return configFileIn(dir), nil
}

func configFileIn(dir string) string {
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions layers an optional CUE config file over the defaults.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("ui.height", defaults.UI.Height)
	v.SetDefault("ui.reverse", defaults.UI.Reverse)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("propagate_exit_code", defaults.PropagateExitCode)

	resolvedPath := ""

	// An explicit --config file must exist.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(errConfigNotFound).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath := configFileIn(opts.ConfigDirPath)
		if opts.ConfigDirPath == "" {
			path, err := ConfigFilePath()
			if err != nil {
				return nil, err
			}
			cuePath = path
		}

		if fileExists(cuePath) {
			resolvedPath = cuePath
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Allowed keys: ui.height (10-100), ui.reverse, ui.verbose, propagate_exit_code").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.WrapWithContext(err, "validate configuration", resolvedPath)
	}
	cfg.Source = resolvedPath

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// the keys it sets into Viper, leaving the remaining defaults in place.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeWithSchema(configSchema, data, schemaDefinition, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
