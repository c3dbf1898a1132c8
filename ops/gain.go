// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/param"
)

// Gain scales a single Audio input by a registered "level" parameter.
type Gain struct {
	*vivid.Base
}

// NewGain returns a Gain with an unconnected "in" slot; wire it
// through a Chain's Resolve/InputTable.SetInputName.
func NewGain() *Gain {
	g := &Gain{Base: vivid.NewBase("Gain", vivid.KindAudio, func(in *vivid.InputTable) {
		in.Declare("in", vivid.KindAudio)
	})}
	g.RegisterParam(param.New("level", param.Float).Range(0, 4).Default(1).Build())
	return g
}

func (g *Gain) Init(ctx *vivid.Context) error { return nil }
func (g *Gain) Cleanup()                      {}

func (g *Gain) Process(ctx *vivid.Context) error {
	levelV, _ := g.GetParam("level")
	level := levelV[0]

	out := g.Buffer()
	src, ok := g.In().Get("in")
	if !ok {
		for i := range out {
			out[i] = 0
		}
		g.MarkCookedClean()
		return nil
	}
	in := src.(interface{ Buffer() []float32 }).Buffer()
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	for i := 0; i < n; i++ {
		out[i] = in[i] * level
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	g.MarkCookedClean()
	return nil
}
