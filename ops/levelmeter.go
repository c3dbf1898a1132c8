// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"math"

	"github.com/vividgraph/vivid"
)

// LevelMeter is an AudioValue analyzer: it consumes one Audio input
// and exposes its last block's RMS level as a Value-kind reading,
// for parameter modulation or the editor bridge's meter display.
type LevelMeter struct {
	*vivid.Base
	rms float32
}

func NewLevelMeter() *LevelMeter {
	return &LevelMeter{Base: vivid.NewBase("LevelMeter", vivid.KindAudioValue, func(in *vivid.InputTable) {
		in.Declare("in", vivid.KindAudio)
	})}
}

func (l *LevelMeter) Init(ctx *vivid.Context) error { return nil }
func (l *LevelMeter) Cleanup()                      {}

func (l *LevelMeter) Process(ctx *vivid.Context) error {
	src, ok := l.In().Get("in")
	if !ok {
		l.rms = 0
		l.MarkCookedClean()
		return nil
	}
	in := src.(interface{ Buffer() []float32 }).Buffer()
	var sumSquares float64
	for _, s := range in {
		sumSquares += float64(s) * float64(s)
	}
	if len(in) > 0 {
		l.rms = float32(math.Sqrt(sumSquares / float64(len(in))))
	}
	l.MarkCookedClean()
	return nil
}

// RMS returns the most recently computed root-mean-square level.
func (l *LevelMeter) RMS() float32 { return l.rms }
