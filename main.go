// SPDX-License-Identifier: MPL-2.0

// bundlekit inspects and validates Fibyos bundle directories.
package main

import cmd "github.com/fibyos/bundlekit/cmd/bundlekit"

func main() {
	cmd.Execute()
}
