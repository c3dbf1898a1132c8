// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"math"

	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/audio"
	"github.com/vividgraph/vivid/param"
)

// Waveform selects an Oscillator's output shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

// Oscillator is an Audio-kind source producing one of the four
// classic waveforms from a phase accumulator, the same
// frequency-to-phase-increment math and wrap-at-2π bookkeeping as the
// retrieved IntuitionAmiga-IntuitionEngine audio_chip.go channel
// generator, simplified to a single channel with no sweep/envelope.
type Oscillator struct {
	*vivid.Base
	waveform   Waveform
	phase      float32
	sampleRate int
}

// NewOscillator returns an Oscillator generating waveform at
// sampleRate. "frequency" (Hz) and "amplitude" (0-1) are registered
// parameters.
func NewOscillator(waveform Waveform, sampleRate int) *Oscillator {
	o := &Oscillator{
		Base:       vivid.NewBase("Oscillator", vivid.KindAudio, nil),
		waveform:   waveform,
		sampleRate: sampleRate,
	}
	o.RegisterParam(param.New("frequency", param.Float).Range(0, 20000).Default(440).Build())
	o.RegisterParam(param.New("amplitude", param.Float).Range(0, 1).Default(0.5).Build())
	return o
}

func (o *Oscillator) Init(ctx *vivid.Context) error { return nil }

func (o *Oscillator) Cleanup() { o.phase = 0 }

// NeedsCook always returns true: an oscillator must advance its phase
// every block even with no parameter or input change, unlike Base's
// default dirty-propagation check.
func (o *Oscillator) NeedsCook(ctx *vivid.Context) bool { return true }

func (o *Oscillator) HandleEvent(ev audio.Event) {
	switch ev.Kind {
	case audio.Reset:
		o.phase = 0
	case audio.NoteOn:
		o.SetParam("frequency", [4]float32{ev.Value1, 0, 0, 0})
	case audio.ParamChange:
		// ParamID 0 = frequency, 1 = amplitude, matching registration order.
		switch ev.ParamID {
		case 0:
			o.SetParam("frequency", [4]float32{ev.Value1, 0, 0, 0})
		case 1:
			o.SetParam("amplitude", [4]float32{ev.Value1, 0, 0, 0})
		}
	}
}

// oscillatorState is what NewOscillator's SaveState/LoadState round-trip
// across a hot-reload rebuild: the phase accumulator and the live
// frequency, the same small-POD-state shape as the retrieved
// seethroughlab/vivid Feedback operator's saveState, scaled to what an
// Oscillator can actually restore (a GPU texture can't survive a
// reload; two floats can).
type oscillatorState struct {
	Frequency float32
	Phase     float32
}

// SaveState implements Stateful.
func (o *Oscillator) SaveState() (any, bool) {
	freqV, _ := o.GetParam("frequency")
	return oscillatorState{Frequency: freqV[0], Phase: o.phase}, true
}

// LoadState implements Stateful. A state value of the wrong type is
// ignored rather than panicking: the replacement graph may have
// reused the instance name for an operator of a different kind.
func (o *Oscillator) LoadState(state any) {
	s, ok := state.(oscillatorState)
	if !ok {
		return
	}
	o.SetParam("frequency", [4]float32{s.Frequency, 0, 0, 0})
	o.phase = s.Phase
}

func (o *Oscillator) Process(ctx *vivid.Context) error {
	freqV, _ := o.GetParam("frequency")
	ampV, _ := o.GetParam("amplitude")
	freq, amp := freqV[0], ampV[0]

	buf := o.Buffer()
	phaseInc := float32(2*math.Pi) * freq / float32(o.sampleRate)
	for i := range buf {
		buf[i] = amp * o.sample()
		o.phase += phaseInc
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
	o.MarkCookedClean()
	return nil
}

func (o *Oscillator) sample() float32 {
	switch o.waveform {
	case Square:
		if o.phase < math.Pi {
			return 1
		}
		return -1
	case Triangle:
		return float32(2/math.Pi)*float32(math.Abs(float64(o.phase)-math.Pi)) - 1
	case Sawtooth:
		return float32(o.phase/math.Pi) - 1
	default: // Sine
		return float32(math.Sin(float64(o.phase)))
	}
}
