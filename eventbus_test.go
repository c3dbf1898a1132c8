// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import (
	"testing"

	"github.com/vividgraph/vivid/audio"
)

func TestEventBusPushPopRoundTrips(t *testing.T) {
	b := NewEventBus(4)
	ev := audio.Event{Kind: audio.NoteOn, TargetOperatorID: 2, Value1: 0.5}
	if !b.Push(ev) {
		t.Fatalf("Push failed on an empty ring")
	}
	got, ok := b.Pop()
	if !ok {
		t.Fatalf("Pop reported empty immediately after Push")
	}
	if got != ev {
		t.Errorf("expected %+v, got %+v", ev, got)
	}
}

func TestEventBusDropsWhenFull(t *testing.T) {
	b := NewEventBus(2) // rounds up to a power of two, capacity 2.
	b.Push(audio.Event{})
	b.Push(audio.Event{})
	if b.Push(audio.Event{}) {
		t.Fatalf("expected Push to report failure once the ring is full")
	}
	if b.DroppedCount() != 1 {
		t.Errorf("expected 1 dropped event, got %d", b.DroppedCount())
	}
}

func TestEventBusPopOnEmptyReturnsFalse(t *testing.T) {
	b := NewEventBus(4)
	if _, ok := b.Pop(); ok {
		t.Errorf("expected Pop to report empty on a fresh ring")
	}
}

func TestEventBusDrainFillsUpToCapacity(t *testing.T) {
	b := NewEventBus(8)
	for i := 0; i < 5; i++ {
		b.Push(audio.Event{TargetOperatorID: i})
	}
	buf := make([]audio.Event, 3)
	got := b.Drain(buf)
	if len(got) != 3 {
		t.Fatalf("expected Drain to fill the 3-slot buffer, got %d events", len(got))
	}
	if b.SizeHint() != 2 {
		t.Errorf("expected 2 events remaining, got %d", b.SizeHint())
	}
}
