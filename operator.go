// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import (
	"github.com/vividgraph/vivid/audio"
	"github.com/vividgraph/vivid/param"
)

// Operator is the unit of work in a Chain (spec.md §4.2). A leaf type
// embeds Base to get the bookkeeping methods for free and implements
// Init, Process, and Cleanup itself (plus NeedsCook where Base's
// default dirty check does not fit) —
// the same split the teacher engine draws between its Model interface
// and the embeddable Pov it composes onto every scene node.
type Operator interface {
	// TypeName identifies the operator's kind for logging, the editor
	// bridge, and hot-reload instance matching (spec.md §4.7).
	TypeName() string

	// OutputKind declares what this operator produces, so consumers can
	// be checked against it at chain-build time.
	OutputKind() OutputKind

	// Init runs once, after Inputs have been resolved and before the
	// first Process call.
	Init(ctx *Context) error

	// Process runs once per frame (or audio block, for an
	// AudioOperator) when NeedsCook reports true.
	Process(ctx *Context) error

	// Cleanup releases any resource acquired by Init, leaving the
	// operator ready for a subsequent Init. Parameter values are not
	// reset: the operators in package ops keep values set through
	// SetParam across a Cleanup/Init cycle.
	Cleanup()

	// NeedsCook reports whether this operator must re-run Process this
	// frame: true the first frame, and whenever an input's
	// CookRevision or a registered parameter has changed since the
	// operator's own last cook (spec.md §4.4).
	NeedsCook(ctx *Context) bool

	// Params lists this operator's parameter declarations in
	// registration order.
	Params() []param.Decl

	// GetParam and SetParam read and write a declared parameter by
	// name; SetParam reports false for an unknown name.
	GetParam(name string) ([4]float32, bool)
	SetParam(name string, v [4]float32) bool

	// Inputs returns the resolved operators this one consumes from,
	// in declaration order, for the scheduler's dependency edges.
	Inputs() []Operator

	// CookRevision increments every time Process actually runs,
	// letting downstream consumers detect "did this change" without
	// comparing output values.
	CookRevision() uint64
}

// Stateful is implemented by operators that carry state worth
// preserving across a hot-reload rebuild (spec.md §4.7). The
// HotReloadController calls SaveState on the outgoing instance and
// LoadState on the replacement instance of the same name; a type or
// layout mismatch is the replacement's problem to detect and ignore.
type Stateful interface {
	SaveState() (state any, ok bool)
	LoadState(state any)
}

// AudioOperator is implemented by operators placed in the audio
// subgraph (spec.md §4.5). HandleEvent delivers an EventBus message
// addressed to this instance; it runs on the audio thread, so
// implementations must not allocate, lock, or block.
type AudioOperator interface {
	Operator
	HandleEvent(ev audio.Event)
}

// Base is the embeddable bookkeeping helper every leaf operator in
// package ops composes into itself, the same role the teacher engine's
// Pov type plays for concrete scene node types: it supplies default
// Params/GetParam/SetParam/Inputs/CookRevision/TypeName/OutputKind/
// NeedsCook so a leaf only has to implement Init/Process/Cleanup.
type Base struct {
	typeName    string
	kind        OutputKind
	params      *param.Registry
	in          *InputTable
	revision    uint64
	paramsDirty bool
	audioBuf    []float32
}

// NewBase constructs a Base for an operator of the given type name and
// output kind, with the input slots declared by decl.
func NewBase(typeName string, kind OutputKind, decl func(*InputTable)) *Base {
	in := newInputTable()
	if decl != nil {
		decl(in)
	}
	return &Base{
		typeName: typeName,
		kind:     kind,
		params:   param.NewRegistry(),
		in:       in,
	}
}

func (b *Base) TypeName() string     { return b.typeName }
func (b *Base) OutputKind() OutputKind { return b.kind }

// RegisterParam declares a parameter, delegating to the embedded
// param.Registry. Leaf constructors call this once per parameter.
func (b *Base) RegisterParam(decl param.Decl) { b.params.Register(decl) }

func (b *Base) Params() []param.Decl { return b.params.Params() }

func (b *Base) GetParam(name string) ([4]float32, bool) { return b.params.Get(name) }

func (b *Base) SetParam(name string, v [4]float32) bool {
	ok := b.params.Set(name, v)
	if ok {
		b.paramsDirty = true
	}
	return ok
}

// Inputs returns this operator's resolved input operators in
// declaration order, for the scheduler to build dependency edges from.
func (b *Base) Inputs() []Operator { return b.in.resolved() }

// In exposes the embedded InputTable so a leaf's Init can fetch a
// resolved input by name via b.In().Get("source"), and so Chain.Resolve
// can call b.In().Resolve(name, lookup) while wiring the graph.
func (b *Base) In() *InputTable { return b.in }

// CookRevision returns how many times this operator has actually run
// Process.
func (b *Base) CookRevision() uint64 { return b.revision }

// MarkCooked increments the cook revision; a leaf's Process calls this
// after it finishes a cook. The Chain scheduler never calls it, so a
// leaf that skips it keeps revision 0 and cooks every frame.
func (b *Base) MarkCooked() { b.revision++ }

// NeedsCook provides the default dirty check described in spec.md
// §4.4: dirty the first time (revision 0 means never cooked), or if
// any resolved input's CookRevision has advanced since this
// operator's own last cook, or if any parameter value changed since
// the last cook. Leaf operators with cheaper or different dirty
// criteria (e.g. a constant source that never needs recooking after
// its first run) override NeedsCook themselves instead of embedding
// this behaviour.
func (b *Base) NeedsCook(ctx *Context) bool {
	if b.revision == 0 {
		return true
	}
	if b.paramsDirty {
		return true
	}
	for _, up := range b.in.resolved() {
		if up != nil && up.CookRevision() > b.revision {
			return true
		}
	}
	return false
}

// MarkCookedClean is MarkCooked plus clearing the dirty parameter
// flag; Process implementations call this instead of MarkCooked when
// they embed Base's default NeedsCook.
func (b *Base) MarkCookedClean() {
	b.revision++
	b.paramsDirty = false
}

// Buffer returns this operator's fixed audio output buffer, sized by
// the last SetBufferSize call. Audio-kind operators write their
// Process output here; AudioGraph reads it back to assemble the
// selected output (spec.md §5 "buffer ownership is static": the
// address is fixed across the audio callback's lifetime except for a
// main-thread-initiated resize).
func (b *Base) Buffer() []float32 { return b.audioBuf }

// SetBufferSize grows the audio buffer to at least n frames, called
// by AudioGraph.Rebuild on the main thread. A no-op if the buffer is
// already large enough, so a steady-state topology never reallocates.
func (b *Base) SetBufferSize(n int) {
	if len(b.audioBuf) < n {
		b.audioBuf = make([]float32, n)
	}
}
