// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive script picker.
//
// The picker is a Bubble Tea program: a Bubbles text input on top of a
// Bubbles list whose filter ranks rows with sahilm/fuzzy. It
// renders inline, occupying a configurable share of the terminal height,
// and hands back either the chosen row or "no selection".
package tui
