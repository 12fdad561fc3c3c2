// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// defaultVisibleRows is used until the terminal reports its size.
const defaultVisibleRows = 10

// pickerModel is the bubbletea model behind FuzzyPicker.
//
// The list owns the matches, the cursor and paging. Keys never reach it
// directly: every printable key edits the query, which is fed back through
// list.SetFilterText.
type pickerModel struct {
	title         string
	total         int
	input         textinput.Model
	query         string
	list          list.Model
	heightPercent int
	reverse       bool

	chosen    string
	done      bool
	cancelled bool
}

func newPickerModel(title string, rows []string, cfg Config) pickerModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("> ")
	ti.Placeholder = "type to filter"
	ti.Focus()

	heightPercent := cfg.HeightPercent
	if heightPercent == 0 {
		heightPercent = DefaultHeightPercent
	}

	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = rowItem(row)
	}

	l := list.New(items, rowDelegate{}, 0, min(len(rows), defaultVisibleRows))
	l.Filter = fuzzyFilter
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("match", "matches")
	l.Styles.NoItems = countStyle
	l.DisableQuitKeybindings()

	return pickerModel{
		title:         title,
		total:         len(rows),
		input:         ti,
		list:          l,
		heightPercent: heightPercent,
		reverse:       cfg.Reverse,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, m.listHeight(msg.Height))
		m.input.Width = max(0, msg.Width-4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			row, ok := m.list.SelectedItem().(rowItem)
			if !ok {
				return m, nil
			}
			m.chosen = string(row)
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			m.moveUp()
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			m.moveDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.list.SetFilterText(q)
	}
	return m, cmd
}

// listHeight derives the number of visible rows from the terminal height.
func (m pickerModel) listHeight(termHeight int) int {
	lines := termHeight * m.heightPercent / 100
	lines-- // prompt
	if m.title != "" {
		lines--
	}
	return max(1, lines)
}

// moveUp moves the highlight one row up on screen. In the reverse layout the
// best match is at the top; otherwise it sits at the bottom, next to the prompt.
func (m *pickerModel) moveUp() {
	if m.reverse {
		m.list.CursorUp()
	} else {
		m.list.CursorDown()
	}
}

func (m *pickerModel) moveDown() {
	if m.reverse {
		m.list.CursorDown()
	} else {
		m.list.CursorUp()
	}
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	prompt := m.input.View() + "  " + countStyle.Render(fmt.Sprintf("%d/%d", len(m.list.VisibleItems()), m.total))
	rows := strings.Split(m.list.View(), "\n")

	var lines []string
	if m.title != "" {
		lines = append(lines, titleStyle.Render(m.title))
	}
	if m.reverse {
		lines = append(lines, prompt)
		lines = append(lines, rows...)
	} else {
		// The list renders best match first; the bottom-anchored layout
		// flips it so the best match sits right above the prompt.
		slices.Reverse(rows)
		lines = append(lines, rows...)
		lines = append(lines, prompt)
	}
	return strings.Join(lines, "\n")
}
