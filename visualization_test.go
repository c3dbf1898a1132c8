// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import "testing"

type recordingDrawList struct {
	rects []Rect
	texts []string
}

func (d *recordingDrawList) Rect(x, y, w, h float32, rgba [4]float32) {
	d.rects = append(d.rects, Rect{x, y, w, h})
}
func (d *recordingDrawList) Line(x0, y0, x1, y1 float32, rgba [4]float32) {}
func (d *recordingDrawList) Text(x, y float32, s string)                  { d.texts = append(d.texts, s) }

func TestLookupFallsBackToKindDefault(t *testing.T) {
	r := NewVisualizationRegistry()
	called := false
	r.RegisterKindDefault(KindTexture, func(op Operator, list DrawList, bounds Rect) { called = true })

	op := newStubOp("src", KindTexture, "")
	fn := r.Lookup(op)
	fn(op, &recordingDrawList{}, Rect{})

	if !called {
		t.Errorf("expected the kind-default draw function to run")
	}
}

func TestLookupPrefersTypeSpecificOverKind(t *testing.T) {
	r := NewVisualizationRegistry()
	r.RegisterKindDefault(KindTexture, func(op Operator, list DrawList, bounds Rect) {
		t.Errorf("kind default should not run when a type-specific function is registered")
	})
	var specificRan bool
	op := newStubOp("src", KindTexture, "")
	r.Register(op, func(op Operator, list DrawList, bounds Rect) { specificRan = true })

	r.Lookup(op)(op, &recordingDrawList{}, Rect{})
	if !specificRan {
		t.Errorf("expected the type-specific draw function to run")
	}
}

func TestLookupFallsBackToSwatchByDefault(t *testing.T) {
	r := NewVisualizationRegistry()
	op := newStubOp("src", KindTexture, "")
	list := &recordingDrawList{}
	r.Lookup(op)(op, list, Rect{W: 10, H: 10})

	if len(list.rects) != 1 || len(list.texts) != 1 {
		t.Errorf("expected the swatch fallback to draw one rect and one label")
	}
}
