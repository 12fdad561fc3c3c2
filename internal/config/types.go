// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/invowk/nrun/internal/tui"
)

var (
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the application configuration.
	Config struct {
		// UI configures the script picker and console output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// PropagateExitCode makes nrun exit with the script's exit code
		// instead of always exiting 0 after the script ran.
		PropagateExitCode bool `json:"propagate_exit_code" mapstructure:"propagate_exit_code"`

		// Source is the file the configuration was loaded from; empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Height is the picker height in percent of the terminal, within
		// [tui.MinHeightPercent, tui.MaxHeightPercent].
		Height int `json:"height" mapstructure:"height"`
		// Reverse lists matches top-to-bottom under the prompt.
		Reverse bool `json:"reverse" mapstructure:"reverse"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Height:  tui.DefaultHeightPercent,
			Reverse: true,
			Verbose: false,
		},
		PropagateExitCode: false,
	}
}

// Validate returns nil if the UI configuration is usable.
func (u UIConfig) Validate() error {
	var errs []error
	if err := tui.ValidateHeightPercent(u.Height); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidUIConfigError{FieldErrors: errs}
	}
	return nil
}

// Validate returns nil if every section of the configuration is valid.
func (c Config) Validate() error {
	var errs []error
	if err := c.UI.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidUIConfig and the field errors for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUIConfig}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
