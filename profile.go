// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// profile.go consolidates per-frame timing data, adapted from the
// teacher's own profile.go: same reset-each-update accumulator shape,
// generalized from render/model counts to the operator-graph's own
// skip/cook counters, and logged through slog instead of fmt.Printf
// per the ambient logging convention.
import (
	"log/slog"
	"time"
)

// Profile collects timing and scheduler counters for the most recent
// frame. Applications are expected to track and smooth these values
// over a number of frames rather than read them as an instantaneous
// measurement.
type Profile struct {
	Update  time.Duration // Time spent in the last Engine.Run call.
	Skipped int           // Operators skipped (NeedsCook false) last frame.
	Renders int           // Frames completed since the engine was created.
}

// Zero resets the per-frame counters. Renders is cumulative and is
// not reset by this call.
func (p *Profile) Zero() {
	p.Update, p.Skipped = 0, 0
}

// Log emits the current profile at Debug level through log, the
// ambient-stack replacement for the teacher's console Dump.
func (p *Profile) Log(log *slog.Logger) {
	log.Debug("frame profile",
		"update_ms", float64(p.Update.Microseconds())/1000.0,
		"skipped", p.Skipped,
		"renders", p.Renders,
	)
}
