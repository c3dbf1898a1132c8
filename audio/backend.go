// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package audio declares the boundary between the engine's audio graph and
// the real-time callback thread a host owns. Vivid never opens a sound
// device itself (spec.md §1 Non-goals); it exposes a pull function the
// host's callback invokes, the same division of labour the teacher
// engine's audio.Audio interface draws between vu and the sound card.
package audio

// Backend describes the device the audio callback thread is driven by.
// SampleRate and BlockSize are fixed for a session; Pull is called once
// per audio callback invocation with an interleaved stereo buffer sized
// for BlockSize() frames (or fewer, for a short final block).
type Backend interface {
	SampleRate() int
	BlockSize() int
	Pull(out []float32, numFrames int)
}

// NoBackend discards pulled audio. It lets a host or test run the engine
// without an audio device, mirroring the teacher's audio.NoAudio mock.
type NoBackend struct {
	Rate, Block int
}

func (b *NoBackend) SampleRate() int { return b.Rate }
func (b *NoBackend) BlockSize() int  { return b.Block }
func (b *NoBackend) Pull(out []float32, numFrames int) {
	for i := range out {
		out[i] = 0
	}
}

// EventKind classifies an AudioEvent.
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
	Trigger
	ParamChange
	Reset
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case Trigger:
		return "Trigger"
	case ParamChange:
		return "ParamChange"
	case Reset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Event is a value record carried from the main thread to the audio
// thread through an EventBus. TargetOperatorID is an index into the
// audio-subgraph's execution order, not a chain-wide name lookup, so the
// audio thread never touches the name-keyed map the main thread owns.
type Event struct {
	Kind             EventKind
	TargetOperatorID int
	ParamID          int
	Value1, Value2   float32
}
