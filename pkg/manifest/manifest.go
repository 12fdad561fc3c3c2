// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/invowk/nrun/internal/issue"
	"github.com/invowk/nrun/pkg/cueutil"

	"cuelang.org/go/cue"
)

// FileName is the manifest file looked up in the project directory.
const FileName = "package.json"

// ErrNotFound is returned by Read when the directory has no package.json.
var ErrNotFound = errors.New("no package.json in directory")

// Manifest is a parsed package.json document.
type Manifest struct {
	path  string
	value cue.Value
}

// Read loads and parses package.json from dir. An empty dir means the
// current working directory.
//
// A missing file yields ErrNotFound; any other read failure and malformed
// JSON are returned as *issue.ActionableError.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		// The resource already names the file.
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, issue.NewErrorContext().
			WithOperation("read " + FileName).
			WithResource(resource(path)).
			WithSuggestion("Check that the file is readable").
			Wrap(err).
			BuildError()
	}

	return Parse(path, data)
}

// Parse parses the contents of a package.json file. path is used for
// error messages only.
//
// A key repeated within one object keeps its first position and its last
// value. Files larger than cueutil.DefaultMaxFileSize are rejected.
func Parse(path string, data []byte) (*Manifest, error) {
	v, err := cueutil.ParseJSON(data, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse " + FileName).
			WithResource(resource(path)).
			WithSuggestion("Check the file for JSON syntax errors").
			Wrap(err).
			BuildError()
	}
	return &Manifest{path: path, value: v}, nil
}

// resource returns the path to show next to an operation on the manifest,
// or "" when the operation already names it.
func resource(path string) string {
	if path == FileName {
		return ""
	}
	return path
}

// Path returns the file the manifest was read from.
func (m *Manifest) Path() string { return m.path }

// Name returns the package name, or "" when it is absent or not a string.
func (m *Manifest) Name() string {
	name, err := m.value.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return ""
	}
	return name
}

// Scripts returns the entries of the "scripts" object in document order.
//
// A missing "scripts" key, or one whose value is not an object, yields an
// empty list. Values that are not strings produce an empty command; no
// entry is dropped, sorted or deduplicated.
func (m *Manifest) Scripts() Scripts {
	v := m.value.LookupPath(cue.MakePath(cue.Str("scripts")))
	if !v.Exists() || v.Kind() != cue.StructKind {
		return nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil
	}

	var scripts Scripts
	for iter.Next() {
		var command string
		if fv := iter.Value(); fv.Kind() == cue.StringKind {
			command, _ = fv.String()
		}
		scripts = append(scripts, Script{
			Name:    iter.Selector().Unquoted(),
			Command: command,
		})
	}
	return scripts
}
