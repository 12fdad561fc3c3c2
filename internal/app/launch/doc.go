// SPDX-License-Identifier: MPL-2.0

// Package launch wires the nrun pipeline together: bind the working
// directory, read package.json, resolve the package manager, pick a script
// and run it.
//
// Launch returns the exit code nrun should terminate with. The "no
// package.json", "no scripts" and "nothing selected" outcomes are not
// errors; they print their diagnostic (if any) and yield exit code 0.
package launch
