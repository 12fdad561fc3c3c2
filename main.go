// SPDX-License-Identifier: MPL-2.0

// nrun is an interactive launcher for package.json scripts.
package main

import cmd "github.com/invowk/nrun/cmd/nrun"

func main() {
	cmd.Execute()
}
