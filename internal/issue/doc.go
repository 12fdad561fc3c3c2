// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Every fatal error nrun reports carries the operation that was attempted,
// the resource involved (a path, a script, a binary) and the underlying
// cause, so the message printed on stderr reads as a complete cause chain.
package issue
