// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the nrun command line interface.
//
// The root command reads package.json in the working directory (or --path),
// offers its scripts in a fuzzy picker and runs the selected one through npm
// or pnpm. A script name given as an argument skips the picker.
package cmd
