// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// state.go exposes host-facing display/window state, adapted from the
// teacher's own state.go: same refreshed-each-frame shape, narrowed
// from a full 3D app's window/culling/blend flags to the handful a
// creative-coding host still needs from the engine (window geometry,
// cursor visibility, audio mute) now that rendering state itself lives
// behind the render.Backend seam.
type RunState struct {
	X, Y, W, H int  // Window lower-left corner and size in pixels.
	Cursor     bool // True when the cursor is visible.
	FullScreen bool // True when the window is full screen.
	Muted      bool // True when the audio output is muted.
}

// Screen is a convenience accessor returning the current window
// geometry as a tuple.
func (s *RunState) Screen() (x, y, w, h int) { return s.X, s.Y, s.W, s.H }

func (s *RunState) setScreen(x, y, w, h int) { s.X, s.Y, s.W, s.H = x, y, w, h }
