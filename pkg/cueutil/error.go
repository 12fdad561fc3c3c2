// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize is the largest input accepted by the parsers (5 MiB).
const DefaultMaxFileSize int64 = 5 << 20

// pathError is a CUE error rendered with JSON-path prefixes. It unwraps to
// the CUE error it was built from.
type pathError struct {
	msg string
	err error
}

func (e *pathError) Error() string { return e.msg }

func (e *pathError) Unwrap() error { return e.err }

// FormatError renders a CUE error with JSON path prefixes. The result does
// not name the file; callers attach it as the error's resource.
//
// Examples:
//   - ui.height: invalid value 5 (out of bound >=10)
//   - propagate_exit_code: conflicting values true and "yes"
//
// Errors that do not come from CUE are returned unchanged.
func FormatError(err error) error {
	if err == nil {
		return nil
	}

	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return err
	}

	var lines []string
	for _, e := range cueerrors.Errors(err) {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return &pathError{msg: lines[0], err: err}
	}
	return &pathError{msg: "validation failed:\n  " + strings.Join(lines, "\n  "), err: err}
}

// syntaxError renders a JSON syntax error from cuejson.Extract as
// "line L, column C: <reason>", dropping the file name CUE puts in front.
func syntaxError(err error, filename string) error {
	msg := strings.TrimPrefix(err.Error(), fmt.Sprintf("invalid JSON for file %q: ", filename))
	if pos := cueerrors.Positions(err); len(pos) > 0 && pos[0].IsValid() {
		msg = fmt.Sprintf("line %d, column %d: %s", pos[0].Line(), pos[0].Column(), msg)
	}
	return &pathError{msg: msg, err: err}
}

// formatPath converts a CUE error path (e.g., ["ui", "height"] or
// ["items", "0"]) to JSON-path notation ("ui.height", "items[0]").
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum %d bytes", len(data), maxSize)
	}
	return nil
}
