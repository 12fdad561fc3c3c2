// SPDX-License-Identifier: MPL-2.0

package manifest

import "strings"

// rowSeparator joins a script name and its command in a candidate row.
const rowSeparator = " = "

type (
	// Script is one entry of the package.json "scripts" object.
	Script struct {
		// Name is the key under "scripts"; it is what the package manager runs.
		Name string
		// Command is the script body, or "" when the value is not a string.
		Command string
	}

	// Scripts is an ordered list of script entries.
	Scripts []Script
)

// Row renders the candidate row shown in the picker: "{name} = {command}".
func (s Script) Row() string {
	return s.Name + rowSeparator + s.Command
}

// Rows renders one candidate row per script, preserving order.
func (s Scripts) Rows() []string {
	rows := make([]string, len(s))
	for i, script := range s {
		rows[i] = script.Row()
	}
	return rows
}

// Names returns the script names in order.
func (s Scripts) Names() []string {
	names := make([]string, len(s))
	for i, script := range s {
		names[i] = script.Name
	}
	return names
}

// Lookup returns the script with exactly the given name.
func (s Scripts) Lookup(name string) (Script, bool) {
	for _, script := range s {
		if script.Name == name {
			return script, true
		}
	}
	return Script{}, false
}

// ByRow returns the script whose candidate row is exactly row.
func (s Scripts) ByRow(row string) (Script, bool) {
	for _, script := range s {
		if script.Row() == row {
			return script, true
		}
	}
	return Script{}, false
}

// NameFromRow extracts the script name from a candidate row: the text
// before the first "=", with surrounding whitespace trimmed.
func NameFromRow(row string) string {
	name, _, _ := strings.Cut(row, "=")
	return strings.TrimSpace(name)
}
