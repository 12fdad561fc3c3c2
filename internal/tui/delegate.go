// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// rowItem is one candidate row in the picker list.
	rowItem string

	// rowDelegate renders a row on a single line with the characters matched
	// by the query highlighted.
	rowDelegate struct{}
)

func (r rowItem) FilterValue() string { return string(r) }

func (rowDelegate) Height() int { return 1 }

func (rowDelegate) Spacing() int { return 0 }

func (rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(rowItem)
	if !ok {
		return
	}

	line := renderRow(string(row), m.MatchesForItem(index), index == m.Index())
	if width := m.Width(); width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	fmt.Fprint(w, line)
}

// renderRow draws row behind the cursor marker. matched holds rune positions.
// Control characters are shown escaped so a row always occupies one line;
// the row itself is left untouched.
func renderRow(row string, matched []int, selected bool) string {
	highlight := make(map[int]bool, len(matched))
	for _, pos := range matched {
		highlight[pos] = true
	}

	var b strings.Builder
	if selected {
		b.WriteString(cursorStyle.Render("▌ "))
	} else {
		b.WriteString("  ")
	}

	pos := 0
	for _, r := range row {
		s := displayRune(r)
		switch {
		case highlight[pos]:
			b.WriteString(matchStyle.Render(s))
		case selected:
			b.WriteString(selectedRowStyle.Render(s))
		default:
			b.WriteString(s)
		}
		pos++
	}
	return b.String()
}

// displayRune returns the printable form of r.
func displayRune(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	if unicode.IsControl(r) {
		return fmt.Sprintf(`\x%02x`, r)
	}
	return string(r)
}
