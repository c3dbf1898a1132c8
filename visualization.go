// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// visualization.go implements C8: a process-wide registry mapping an
// operator's concrete type to a draw function the inspector overlay
// calls to render it, falling back to a kind-based default when no
// specific function is registered (spec.md §4.8).
import (
	"fmt"
	"reflect"
)

// DrawList is the minimal drawing surface a registered DrawFn
// receives. It stands in for spec.md's "ImguiLike draw list" — a
// concrete immediate-mode renderer is a host concern, out of scope
// here (§1 Non-goals), so this package only defines the seam.
type DrawList interface {
	Rect(x, y, w, h float32, rgba [4]float32)
	Line(x0, y0, x1, y1 float32, rgba [4]float32)
	Text(x, y float32, s string)
}

// Rect is the bounding rectangle a DrawFn renders into.
type Rect struct {
	X, Y, W, H float32
}

// DrawFn renders one operator's inspector panel.
type DrawFn func(op Operator, list DrawList, bounds Rect)

// VisualizationRegistry is the process-wide TypeIndex -> DrawFn map
// spec.md §4.8 describes. Construct with NewVisualizationRegistry: the
// zero value's maps are nil, so Register panics on it. A single
// package-level instance (DefaultVisualizations) is shared by
// convention the way the teacher's render package keeps one default
// shader library.
type VisualizationRegistry struct {
	byType map[reflect.Type]DrawFn
	byKind map[OutputKind]DrawFn
}

// NewVisualizationRegistry returns an empty registry.
func NewVisualizationRegistry() *VisualizationRegistry {
	return &VisualizationRegistry{
		byType: make(map[reflect.Type]DrawFn),
		byKind: make(map[OutputKind]DrawFn),
	}
}

// DefaultVisualizations is the process-wide registry leaf operator
// packages register into from an init func, the RAII-at-module-init
// pattern spec.md §4.8 calls for (Go has no destructors, so
// registration is the only half of RAII that applies; there is
// nothing to unregister for a registry that lives for the process).
var DefaultVisualizations = NewVisualizationRegistry()

// Register binds fn to the concrete type of sample (typically a nil
// or zero-value pointer of the operator type, e.g. (*ops.Oscillator)(nil)).
// Call from an init() in the operator's defining package.
func (r *VisualizationRegistry) Register(sample Operator, fn DrawFn) {
	r.byType[reflect.TypeOf(sample)] = fn
}

// RegisterKindDefault binds fn as the fallback for any operator of the
// given OutputKind that has no type-specific registration.
func (r *VisualizationRegistry) RegisterKindDefault(kind OutputKind, fn DrawFn) {
	r.byKind[kind] = fn
}

// Lookup returns the most specific draw function available for op:
// its concrete type's registration if present, else its OutputKind's
// default, else the package fallback which renders a labeled swatch.
func (r *VisualizationRegistry) Lookup(op Operator) DrawFn {
	if fn, ok := r.byType[reflect.TypeOf(op)]; ok {
		return fn
	}
	if fn, ok := r.byKind[op.OutputKind()]; ok {
		return fn
	}
	return fallbackDraw
}

// fallbackDraw renders a plain labeled rectangle swatch; concrete
// waveform/spectrum rendering belongs to a host's inspector, not the
// engine core.
func fallbackDraw(op Operator, list DrawList, bounds Rect) {
	list.Rect(bounds.X, bounds.Y, bounds.W, bounds.H, [4]float32{0.3, 0.3, 0.3, 1})
	list.Text(bounds.X, bounds.Y, fmt.Sprintf("%s (%s)", op.TypeName(), op.OutputKind()))
}
