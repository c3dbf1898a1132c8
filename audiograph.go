// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// audiograph.go implements C5: a parallel scheduler restricted to the
// Audio/AudioValue/Value-kind subgraph feeding the chain's selected
// audio output, run once per audio callback invocation on the audio
// thread. Its block-quantized event application and pre-sized output
// buffers follow spec.md §4.5 exactly; the separation from Chain's own
// visual scheduler mirrors the teacher engine's split between its
// per-frame scene update and its independent audio.Audio callback.
import (
	"github.com/vividgraph/vivid/audio"
)

// AudioGraph owns the execution order and output buffers for the
// audio-kind subgraph of one Chain. Rebuild it whenever the chain's
// topology changes (the host calls Rebuild after Chain.Resolve).
type AudioGraph struct {
	sampleRate int
	blockSize  int

	order []string

	audioOutput string
	bus         *EventBus

	eventScratch []audio.Event
}

// NewAudioGraph returns a graph fixed to sampleRate and blockSize for
// the session's lifetime, draining events from bus.
func NewAudioGraph(sampleRate, blockSize int, bus *EventBus) *AudioGraph {
	return &AudioGraph{
		sampleRate:   sampleRate,
		blockSize:    blockSize,
		bus:          bus,
		eventScratch: make([]audio.Event, 64),
	}
}

// Rebuild recomputes the audio-kind execution order from chain,
// restricted to operators whose OutputKind is Audio, AudioValue, or
// Value and reachable from chain's audio output selector. Call this
// after every topology change, from the main thread, before audio
// resumes (spec.md's hot-reload step 7).
func (g *AudioGraph) Rebuild(chain *Chain) {
	g.audioOutput = chain.AudioOutput()
	reachable := chain.reachableFrom(g.audioOutput)

	isAudioKind := func(name string) bool {
		op, ok := chain.operators[name]
		if !ok {
			return false
		}
		switch op.OutputKind() {
		case KindAudio, KindAudioValue, KindValue:
			return true
		default:
			return false
		}
	}

	indegree := make(map[string]int, len(reachable))
	successors := make(map[string][]string, len(reachable))
	for name := range reachable {
		if isAudioKind(name) {
			indegree[name] = 0
		}
	}
	for name := range indegree {
		op := chain.operators[name]
		for _, up := range op.Inputs() {
			upName := chain.nameOf(up)
			if _, ok := indegree[upName]; !ok {
				continue
			}
			indegree[name]++
			successors[upName] = append(successors[upName], name)
		}
	}

	var queue []string
	for _, name := range chain.order {
		if _, ok := indegree[name]; ok && indegree[name] == 0 {
			queue = append(queue, name)
		}
	}
	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, succ := range successors[name] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	g.order = order
	for _, name := range order {
		op := chain.operators[name]
		if sizer, ok := op.(interface{ SetBufferSize(int) }); ok {
			sizer.SetBufferSize(g.blockSize)
		}
	}
}

// SampleRate and BlockSize return the session-fixed audio parameters.
func (g *AudioGraph) SampleRate() int { return g.sampleRate }
func (g *AudioGraph) BlockSize() int  { return g.blockSize }

// Process runs one audio block: drains pending events from the bus
// and applies them at the start of the block (block-quantized, never
// sample-accurate within a block, per spec.md §4.5), walks the audio
// execution order calling Process on each operator for numFrames
// frames, then copies the output selector's buffer into out.
//
// Must only be called from the audio callback thread. Never
// allocates on the steady-state path: event scratch is sized by
// NewAudioGraph and output buffers by Rebuild, both on the main thread.
func (g *AudioGraph) Process(chain *Chain, ctx *Context, numFrames int) (out []float32) {
	events := g.bus.Drain(g.eventScratch)
	for _, ev := range events {
		if ev.TargetOperatorID < 0 || ev.TargetOperatorID >= len(g.order) {
			continue
		}
		name := g.order[ev.TargetOperatorID]
		op, ok := chain.operators[name]
		if !ok {
			continue
		}
		if handler, ok := op.(interface {
			HandleEvent(audio.Event)
		}); ok {
			handler.HandleEvent(ev)
		}
	}

	for _, name := range g.order {
		op := chain.operators[name]
		if op.NeedsCook(ctx) {
			_ = op.Process(ctx)
		}
	}

	if g.audioOutput == "" {
		return nil
	}
	op, ok := chain.operators[g.audioOutput]
	if !ok {
		return nil
	}
	bufferer, ok := op.(interface{ Buffer() []float32 })
	if !ok {
		return nil
	}
	buf := bufferer.Buffer()
	if numFrames > len(buf) {
		numFrames = len(buf)
	}
	return buf[:numFrames]
}

// OperatorIndex returns the position of name in the current audio
// execution order, the value an EventBus producer should set as an
// audio.Event's TargetOperatorID, or -1 if name is not part of the
// audio subgraph.
func (g *AudioGraph) OperatorIndex(name string) int {
	for i, n := range g.order {
		if n == name {
			return i
		}
	}
	return -1
}
