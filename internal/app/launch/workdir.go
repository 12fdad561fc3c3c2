// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/invowk/nrun/internal/issue"
)

// BindWorkdir makes dir the process working directory. An empty dir keeps
// the inherited one.
//
// The change is process-wide and must happen before package.json or the
// lockfile are looked up.
func BindWorkdir(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		err = errors.New("not a directory")
	}
	if err == nil {
		err = os.Chdir(dir)
	}
	if err == nil {
		return nil
	}

	// The resource already names the path.
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	return issue.NewErrorContext().
		WithOperation("change directory").
		WithResource(dir).
		WithSuggestion(fmt.Sprintf("Check that %q exists and is a directory you can access", dir)).
		Wrap(err).
		BuildError()
}
