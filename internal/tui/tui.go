// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	// DefaultHeightPercent is the share of the terminal height the picker uses.
	DefaultHeightPercent = 50
	// MinHeightPercent is the smallest accepted height share.
	MinHeightPercent = 10
	// MaxHeightPercent switches the picker to the alternate screen.
	MaxHeightPercent = 100
)

var (
	// ErrNoTTY is returned when the picker's input is not a terminal.
	ErrNoTTY = errors.New("stdin is not a terminal")
	// ErrInvalidHeightPercent is the sentinel error wrapped by InvalidHeightPercentError.
	ErrInvalidHeightPercent = errors.New("invalid picker height")
)

type (
	// Config holds the picker's presentation settings.
	Config struct {
		// HeightPercent is the share of the terminal height to occupy (10-100).
		HeightPercent int
		// Reverse lists matches top-to-bottom below the prompt. When false the
		// prompt sits at the bottom with the best match right above it.
		Reverse bool
		// Input is the terminal the picker reads keys from.
		Input *os.File
		// Output is where the picker renders. It defaults to stderr so stdout
		// only carries the run header and the script's output.
		Output io.Writer
	}

	// InvalidHeightPercentError is returned when a height share is out of range.
	InvalidHeightPercentError struct {
		Value int
	}
)

// DefaultConfig returns the default picker configuration: half the terminal
// height, reverse layout, reading from stdin and rendering on stderr.
func DefaultConfig() Config {
	return Config{
		HeightPercent: DefaultHeightPercent,
		Reverse:       true,
		Input:         os.Stdin,
		Output:        os.Stderr,
	}
}

// ValidateHeightPercent checks that pct is within [MinHeightPercent, MaxHeightPercent].
func ValidateHeightPercent(pct int) error {
	if pct < MinHeightPercent || pct > MaxHeightPercent {
		return &InvalidHeightPercentError{Value: pct}
	}
	return nil
}

// Error implements the error interface for InvalidHeightPercentError.
func (e *InvalidHeightPercentError) Error() string {
	return fmt.Sprintf("invalid picker height %d%%: must be between %d and %d", e.Value, MinHeightPercent, MaxHeightPercent)
}

// Unwrap returns ErrInvalidHeightPercent for errors.Is() compatibility.
func (e *InvalidHeightPercentError) Unwrap() error { return ErrInvalidHeightPercent }

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
