// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// context.go implements C1: the per-frame environment every operator sees.
// It is deliberately thin — a struct of values sampled once per frame by
// the host, read-only for the rest of the frame — the same role the
// teacher engine's State/Input pair plays for its Director callback.

import (
	"context"
	"log/slog"
	"time"

	"github.com/vividgraph/vivid/asset"
	"github.com/vividgraph/vivid/render"
)

// Context is the environment passed to every Operator's Init and Process.
// Its fields are valid only for the frame or audio block during which
// they were sampled; spec.md §4.1 forbids operators from reading it
// outside that window.
type Context struct {
	// Time is wall time sampled at beginFrame; Dt is the elapsed time
	// since the previous beginFrame.
	Time time.Time
	Dt   time.Duration

	// FrameIndex counts graphics frames. It is 0 before the first
	// beginFrame, which increments it, so the first frame sees 1.
	FrameIndex uint64

	// Input is the snapshot sampled at beginFrame; see input.go.
	Input Input

	// Width and Height are the current presentation surface size.
	Width, Height int

	// GPU is the host-supplied backend; nil for chains with no visual
	// output (audio-only sessions).
	GPU render.Backend

	// Assets resolves and loads shader/resource files on behalf of
	// operators; see asset.Loader.
	Assets *asset.Loader

	// Debug carries named scratch values the inspector overlay or a
	// leaf operator may want to publish for the current frame
	// (spec.md §4.8 visualization registry reads these by convention).
	Debug map[string]float64

	// Recording and Capturing let a host ask operators to behave
	// differently for one frame (e.g. skip interactive-only effects)
	// without plumbing a separate parameter through every leaf.
	Recording bool
	Capturing bool

	// Log is the structured logger operators may use at Debug level;
	// never written to on the audio thread.
	Log *slog.Logger

	// done is cancelled when the owning Chain is torn down. It bounds
	// long asset fetches and the editor bridge's network reads; it is
	// never consulted inside Process, consistent with spec.md §5's "no
	// suspension points in the engine core" rule.
	done context.Context
}

// Done returns the context.Context that is cancelled when the owning
// session shuts down. Intended for AssetLoader fetches and the editor
// bridge, not for per-frame operator logic.
func (c *Context) Done() context.Context {
	if c.done == nil {
		return context.Background()
	}
	return c.done
}

// newContext creates a Context bound to done, ready for beginFrame to
// populate each frame.
func newContext(done context.Context, gpu render.Backend, assets *asset.Loader, log *slog.Logger) *Context {
	return &Context{
		GPU:    gpu,
		Assets: assets,
		Log:    log,
		Debug:  make(map[string]float64),
		done:   done,
	}
}

// beginFrame samples time, input, and window size for the next frame.
// Called once by the host before the user's update entry point runs
// (spec.md §2 step 1).
func (c *Context) beginFrame(now time.Time, in Input, width, height int) {
	if c.Time.IsZero() {
		c.Dt = 0
	} else {
		c.Dt = now.Sub(c.Time)
	}
	c.Time = now
	c.Input = in
	c.Width, c.Height = width, height
	c.FrameIndex++
	for k := range c.Debug {
		delete(c.Debug, k)
	}
}
