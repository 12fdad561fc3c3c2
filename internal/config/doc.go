// SPDX-License-Identifier: MPL-2.0

// Package config handles nrun configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the platform config directory
// ($XDG_CONFIG_HOME/nrun/config.cue on Linux, ~/Library/Application Support/nrun/config.cue
// on macOS, %AppData%\nrun\config.cue on Windows) or from an explicit file. Every key is
// optional; missing keys keep their defaults.
//
// Configuration is validated against an embedded CUE schema (config_schema.cue) so that
// typos and out-of-range values are reported with their path in the file.
package config
