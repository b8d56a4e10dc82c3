// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command scanctl runs scanmail operations from a terminal.
package main

import "github.com/danielhkuo/scanmail/cmd/scanctl/cmd"

func main() {
	cmd.Execute()
}
