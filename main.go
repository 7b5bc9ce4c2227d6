// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/fmtbridge/fmtbridge/cmd/fmtbridge"

func main() {
	cmd.Execute()
}
