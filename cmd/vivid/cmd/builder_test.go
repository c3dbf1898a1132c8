// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vividgraph/vivid/reload"
)

const sourceV1 = `
package main

func Setup(chain any) error { return nil }
func Update(chain any) error { return nil }
`

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileGraphBuilderLoadOnceThenRun(t *testing.T) {
	path := writeTempSource(t, sourceV1)
	g := &fileGraphBuilder{path: path}
	if err := g.loadOnce(); err != nil {
		t.Fatalf("loadOnce: %v", err)
	}
	if err := g.Setup(nil, nil); err != nil {
		t.Errorf("Setup: %v", err)
	}
	if err := g.Update(nil, nil); err != nil {
		t.Errorf("Update: %v", err)
	}
}

func TestFileGraphBuilderUnloadedIsNoop(t *testing.T) {
	g := &fileGraphBuilder{path: "/nonexistent"}
	if err := g.Setup(nil, nil); err != nil {
		t.Errorf("expected Setup to no-op before any load, got %v", err)
	}
	if err := g.Update(nil, nil); err != nil {
		t.Errorf("expected Update to no-op before any load, got %v", err)
	}
}

func TestFileGraphBuilderReplaceWithSwapsBehaviour(t *testing.T) {
	g := &fileGraphBuilder{}
	calls := 0
	g.ReplaceWith(reload.Builder{
		Setup: func(any) error { calls++; return nil },
		Update: func(any) error { return nil },
	})
	if err := g.Setup(nil, nil); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected the replaced Setup to run, got %d calls", calls)
	}
}
