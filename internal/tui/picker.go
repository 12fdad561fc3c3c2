// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	// PickRequest is what a Picker presents to the user.
	PickRequest struct {
		// Title is shown above the prompt; empty hides the title line.
		Title string
		// Rows are the candidate rows, in display order.
		Rows []string
	}

	// Picker presents candidate rows and returns the one the user chose.
	//
	// ok is false when nothing was chosen (the user cancelled). Cancellation
	// is not an error; err is reserved for failures to run the picker.
	Picker interface {
		Pick(ctx context.Context, req PickRequest) (row string, ok bool, err error)
	}

	// FuzzyPicker is the interactive terminal Picker.
	FuzzyPicker struct {
		cfg Config
	}
)

// NewFuzzyPicker creates a terminal picker. Zero Input/Output fields fall
// back to stdin/stderr.
func NewFuzzyPicker(cfg Config) *FuzzyPicker {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &FuzzyPicker{cfg: cfg}
}

// Pick runs the picker until the user confirms a row or cancels.
// Bubble Tea restores the terminal on every exit path.
func (p *FuzzyPicker) Pick(ctx context.Context, req PickRequest) (string, bool, error) {
	if len(req.Rows) == 0 {
		return "", false, nil
	}
	if !isTerminal(p.cfg.Input) {
		return "", false, ErrNoTTY
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(p.cfg.Input),
		tea.WithOutput(p.cfg.Output),
	}
	if p.cfg.HeightPercent >= MaxHeightPercent {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newPickerModel(req.Title, req.Rows, p.cfg), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.cancelled || m.chosen == "" {
		return "", false, nil
	}
	return m.chosen, true, nil
}
