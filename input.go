// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// Input is the per-frame snapshot of user input state the host samples
// once at Context.beginFrame and hands to operators read-only for the
// rest of the frame. It is deliberately small — windowing and device
// polling are host plumbing (spec.md §1) — and modeled on the key/mouse
// shape the teacher engine's device.Pressed type used before Vivid
// narrowed that concern out of the engine core.
type Input struct {
	Down       map[string]int // key/button name -> ticks held, RELEASED if just released.
	Mx, My     int             // mouse position this frame.
	PrevX      int             // previous-frame mouse x, for computing deltas.
	PrevY      int             // previous-frame mouse y.
	Scroll     float64         // scroll wheel delta this frame.
	Resized    bool            // true the frame the window size changed.
}

// RELEASED marks a key/button that transitioned to up this frame. Total
// ticks held is Down[name] minus RELEASED, matching the teacher's own
// convention (device.KEY_RELEASED) for distinguishing "just released" from
// "never pressed".
const RELEASED = -1 << 30
