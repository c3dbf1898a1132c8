// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"fmt"

	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/param"
)

// Mixer sums N named Audio inputs into one output. The input count is
// fixed at construction, since spec.md's Chain wires inputs by name
// at build time (no dynamic arity changes mid-session).
type Mixer struct {
	*vivid.Base
	n int
}

// NewMixer returns a Mixer with inputs named "in0".."in{n-1}".
func NewMixer(n int) *Mixer {
	m := &Mixer{n: n}
	m.Base = vivid.NewBase("Mixer", vivid.KindAudio, func(in *vivid.InputTable) {
		for i := 0; i < n; i++ {
			in.Declare(fmt.Sprintf("in%d", i), vivid.KindAudio)
		}
	})
	m.RegisterParam(param.New("level", param.Float).Range(0, 2).Default(1).Build())
	return m
}

func (m *Mixer) Init(ctx *vivid.Context) error { return nil }
func (m *Mixer) Cleanup()                      {}

func (m *Mixer) Process(ctx *vivid.Context) error {
	levelV, _ := m.GetParam("level")
	level := levelV[0]

	out := m.Buffer()
	for i := range out {
		out[i] = 0
	}
	for i := 0; i < m.n; i++ {
		src, ok := m.In().Get(fmt.Sprintf("in%d", i))
		if !ok {
			continue
		}
		in := src.(interface{ Buffer() []float32 }).Buffer()
		n := len(out)
		if len(in) < n {
			n = len(in)
		}
		for j := 0; j < n; j++ {
			out[j] += in[j] * level
		}
	}
	m.MarkCookedClean()
	return nil
}
