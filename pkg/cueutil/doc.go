// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// nrun uses CUE for two inputs:
//
//   - package.json, decoded through CUE's JSON front end so that object
//     fields keep the order in which they appear in the document
//   - the optional config.cue file, validated against an embedded schema
//
// Both paths share the size guard and the error formatting defined here.
package cueutil
