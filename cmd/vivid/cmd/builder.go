// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package cmd

import (
	"os"
	"sync"

	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/reload"
)

// fileGraphBuilder adapts an interpreted reload.Builder (compiled from
// a project's chain.go) to the vivid.GraphBuilder interface the
// Engine drives every frame. It implements the engine's internal
// reloadableBuilder contract so a HotReloadController rebuild swaps
// in the freshly interpreted Setup/Update pair instead of leaving the
// engine running against the one loaded at startup.
type fileGraphBuilder struct {
	path string

	mu sync.RWMutex
	b  reload.Builder
}

// loadOnce reads and interprets path, populating the builder used
// until the first hot-reload rebuild replaces it.
func (g *fileGraphBuilder) loadOnce() error {
	src, err := os.ReadFile(g.path)
	if err != nil {
		return err
	}
	b, err := reload.Compile(src)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.b = b
	g.mu.Unlock()
	return nil
}

// ReplaceWith installs a freshly compiled Builder, called by the
// engine after a successful hot-reload rebuild.
func (g *fileGraphBuilder) ReplaceWith(b reload.Builder) {
	g.mu.Lock()
	g.b = b
	g.mu.Unlock()
}

func (g *fileGraphBuilder) Setup(_ *vivid.Context, chain *vivid.Chain) error {
	g.mu.RLock()
	setup := g.b.Setup
	g.mu.RUnlock()
	if setup == nil {
		return nil
	}
	return setup(chain)
}

func (g *fileGraphBuilder) Update(_ *vivid.Context, chain *vivid.Chain) error {
	g.mu.RLock()
	update := g.b.Update
	g.mu.RUnlock()
	if update == nil {
		return nil
	}
	return update(chain)
}
