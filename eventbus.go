// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// eventbus.go implements C6: a single-producer single-consumer bounded
// ring buffer carrying audio.Event values from the main thread to the
// audio callback thread. Head and tail counters are padded onto
// separate cache lines to avoid false sharing, and published with the
// acquire/release semantics sync/atomic guarantees on LoadUint64/
// StoreUint64 in Go's memory model — there is no library in the
// retrieved pack for this; a lock-free SPSC ring is exactly the kind
// of primitive spec.md §5 insists the audio thread never do without
// (no allocation, no locking, no blocking), so hand-rolling it over
// sync/atomic is the only idiomatic option (see DESIGN.md).
import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vividgraph/vivid/audio"
)

// DefaultEventBusCapacity is the ring size used when NewEventBus is not given
// an explicit one (spec.md §4.6).
const DefaultEventBusCapacity = 256

// cacheLinePad prevents the head and tail counters below from sharing
// a cache line; 64 bytes is the common line size on the platforms this
// engine targets.
type cacheLinePad [64 - 8]byte

// EventBus is the bounded SPSC queue described in spec.md §4.6. The
// zero value is not usable; construct with NewEventBus.
type EventBus struct {
	buf  []audio.Event
	mask uint64

	head uint64 // next slot the producer will write. Main thread only.
	_    cacheLinePad
	tail uint64 // next slot the consumer will read. Audio thread only.
	_    cacheLinePad

	dropped uint64 // atomic; incremented by Push on overflow.

	// generation correlates a drop count with the hot-reload rebuild
	// during which it occurred, purely for the editor bridge's
	// display (spec.md's own drop counter carries no identity).
	generation uuid.UUID
}

// NewEventBus returns a ring buffer sized to the next power of two at
// least capacity (0 selects DefaultEventBusCapacity).
func NewEventBus(capacity int) *EventBus {
	if capacity <= 0 {
		capacity = DefaultEventBusCapacity
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &EventBus{
		buf:  make([]audio.Event, size),
		mask: uint64(size - 1),
	}
}

// SetGeneration tags subsequent drop accounting with the hot-reload
// build id gen. Called by Engine's hot-reload callback after a
// successful rebuild; never called from the audio thread.
func (b *EventBus) SetGeneration(gen uuid.UUID) { b.generation = gen }

// Generation returns the build id currently tagging drop accounting.
func (b *EventBus) Generation() uuid.UUID { return b.generation }

// Push enqueues ev. Main thread only. Returns false and increments
// the drop counter if the ring is full; never blocks.
func (b *EventBus) Push(ev audio.Event) bool {
	head := b.head
	tail := atomic.LoadUint64(&b.tail)
	if head-tail >= uint64(len(b.buf)) {
		atomic.AddUint64(&b.dropped, 1)
		return false
	}
	b.buf[head&b.mask] = ev
	// Release: the audio thread's acquire load of head must observe
	// the slot write above before it reads the new head value.
	atomic.StoreUint64(&b.head, head+1)
	return true
}

// Pop dequeues the next event. Audio thread only. Returns ok==false
// if the ring is currently empty.
func (b *EventBus) Pop() (ev audio.Event, ok bool) {
	tail := b.tail
	head := atomic.LoadUint64(&b.head)
	if tail == head {
		return audio.Event{}, false
	}
	ev = b.buf[tail&b.mask]
	atomic.StoreUint64(&b.tail, tail+1)
	return ev, true
}

// SizeHint returns an approximate count of queued events. Safe to
// call from either thread; the result may be stale by the time it is
// read.
func (b *EventBus) SizeHint() int {
	head := atomic.LoadUint64(&b.head)
	tail := atomic.LoadUint64(&b.tail)
	return int(head - tail)
}

// DroppedCount returns the number of events discarded because the
// ring was full, cumulative since construction.
func (b *EventBus) DroppedCount() uint64 { return atomic.LoadUint64(&b.dropped) }

// Drain pops up to len(into) events, returning the slice it filled.
// Audio thread only; used once per audio block by AudioGraph per
// spec.md §4.5 step 1.
func (b *EventBus) Drain(into []audio.Event) []audio.Event {
	n := 0
	for n < len(into) {
		ev, ok := b.Pop()
		if !ok {
			break
		}
		into[n] = ev
		n++
	}
	return into[:n]
}
