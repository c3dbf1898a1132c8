// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command vivid is the project runner (spec.md §6): `vivid <project-dir>`
// loads project-dir/chain.go as the graph-builder source, wires a
// headless session (no concrete GPU/audio device binding — that stays
// a host concern, §1 Non-goals), and drives it until interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/vividgraph/vivid/cmd/vivid/cmd"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code spec.md §6 defines: 0 success
// (clean shutdown), 1 compilation/init failure, 2 a runtime panic
// recovered from an operator's Process.
func run() int {
	code, err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vivid:", err)
	}
	return code
}
