// SPDX-License-Identifier: MPL-2.0

// Package runner spawns the package manager that executes a package.json
// script. The child inherits the parent's standard streams and environment;
// no shell is involved, so the script name reaches the package manager as a
// single argument.
package runner
