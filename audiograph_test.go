// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import (
	"testing"

	"github.com/vividgraph/vivid/audio"
)

type eventCountingOp struct {
	*Base
	events   int
	cooked   int
}

func newEventCountingOp(name string) *eventCountingOp {
	o := &eventCountingOp{}
	o.Base = NewBase(name, KindAudio, nil)
	return o
}

func (o *eventCountingOp) Init(ctx *Context) error    { return nil }
func (o *eventCountingOp) Process(ctx *Context) error { o.cooked++; o.MarkCookedClean(); return nil }
func (o *eventCountingOp) Cleanup()                   {}
func (o *eventCountingOp) HandleEvent(ev audio.Event)  { o.events++ }

func TestAudioGraphRebuildOnlyIncludesAudioKinds(t *testing.T) {
	c := NewChain("a")
	osc := newEventCountingOp("osc")
	visual := newStubOp("visual", KindTexture, "")
	c.Add("osc", osc)
	c.Add("visual", visual)
	c.SetAudioOutput("osc")
	c.Resolve()

	bus := NewEventBus(16)
	g := NewAudioGraph(48000, 256, bus)
	g.Rebuild(c)

	if g.OperatorIndex("osc") != 0 {
		t.Errorf("expected osc at index 0, got %d", g.OperatorIndex("osc"))
	}
	if g.OperatorIndex("visual") != -1 {
		t.Errorf("expected the texture operator to be excluded from the audio subgraph")
	}
}

func TestAudioGraphProcessDeliversEventsAndCooksOperators(t *testing.T) {
	c := NewChain("a")
	osc := newEventCountingOp("osc")
	c.Add("osc", osc)
	c.SetAudioOutput("osc")
	c.Resolve()

	bus := NewEventBus(16)
	g := NewAudioGraph(48000, 256, bus)
	g.Rebuild(c)
	bus.Push(audio.Event{Kind: audio.NoteOn, TargetOperatorID: 0})

	ctx := newContext(nil, nil, nil, nil)
	g.Process(c, ctx, 128)

	if osc.events != 1 {
		t.Errorf("expected 1 delivered event, got %d", osc.events)
	}
	if osc.cooked != 1 {
		t.Errorf("expected the operator to cook once, got %d", osc.cooked)
	}
}
