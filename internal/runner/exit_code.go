// SPDX-License-Identifier: MPL-2.0

package runner

import "strconv"

// ExitCode is the status a script run ended with. It always fits a POSIX
// exit status, so it can be handed to os.Exit unchanged.
type ExitCode int

// maxExitCode is the largest status a POSIX process can report.
const maxExitCode = 255

// exitCodeFromStatus maps a wait status to an ExitCode. Statuses that do not
// fit (Windows NTSTATUS values, or -1 for a signaled child) become 1.
func exitCodeFromStatus(status int) ExitCode {
	if status < 0 || status > maxExitCode {
		return 1
	}
	return ExitCode(status)
}

// IsSuccess reports whether the code is 0.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
