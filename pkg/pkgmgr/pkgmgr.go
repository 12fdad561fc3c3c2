// SPDX-License-Identifier: MPL-2.0

// Package pkgmgr resolves which JavaScript package manager owns a project.
package pkgmgr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Npm is the default package manager.
	Npm PackageManager = "npm"
	// Pnpm is selected when a pnpm lockfile is present.
	Pnpm PackageManager = "pnpm"

	// PnpmLockfile is the lockfile whose presence selects Pnpm.
	PnpmLockfile = "pnpm-lock.yaml"
)

// ErrInvalidPackageManager is the sentinel error wrapped by InvalidPackageManagerError.
var ErrInvalidPackageManager = errors.New("invalid package manager")

type (
	// PackageManager names the executable that runs package.json scripts.
	PackageManager string

	// InvalidPackageManagerError is returned when a PackageManager value is not recognized.
	// It wraps ErrInvalidPackageManager for errors.Is() compatibility.
	InvalidPackageManagerError struct {
		Value PackageManager
	}
)

// Detect inspects dir for lockfiles and returns the package manager to use.
// Only the presence of pnpm-lock.yaml is considered; file contents are never
// read and any other lockfile leaves the npm default in place. An empty dir
// means the current working directory.
func Detect(dir string) PackageManager {
	if _, err := os.Stat(filepath.Join(dir, PnpmLockfile)); err == nil {
		return Pnpm
	}
	return Npm
}

// String returns the executable name.
func (p PackageManager) String() string { return string(p) }

// RunArgs returns the arguments that make the package manager run a script.
func (p PackageManager) RunArgs(script string) []string {
	return []string{"run", script}
}

// IsValid returns whether the PackageManager is one of the known values.
func (p PackageManager) IsValid() (bool, []error) {
	switch p {
	case Npm, Pnpm:
		return true, nil
	default:
		return false, []error{&InvalidPackageManagerError{Value: p}}
	}
}

// Error implements the error interface for InvalidPackageManagerError.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q (valid: %s, %s)", e.Value, Npm, Pnpm)
}

// Unwrap returns ErrInvalidPackageManager for errors.Is() compatibility.
func (e *InvalidPackageManagerError) Unwrap() error { return ErrInvalidPackageManager }
