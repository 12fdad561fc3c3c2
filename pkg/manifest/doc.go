// SPDX-License-Identifier: MPL-2.0

// Package manifest reads package.json and projects its "scripts" object into
// the ordered list of script entries nrun offers to the user.
//
// Only the "scripts" key (and "name", for display) is consulted. Script
// entries keep the order in which they appear in the document.
package manifest
