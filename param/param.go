// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package param implements the engine's uniform parameter storage (spec.md
// §3, §4.3). Every parameter value, whatever its logical shape, lives in a
// four-float array so a single wire format serves any primitive the
// operator set needs.
//
// The builder here is modeled directly on the retrieved
// justyntemme-vst3go pkg/framework/param builder: fluent setters
// returning *Builder, exactly the pattern spec.md §9 calls out as needing
// a non-inheritance-based equivalent in Go.
package param

// Kind is the variant tag of a parameter's stored value.
type Kind int

const (
	Float Kind = iota
	Int
	Bool
	Vec2
	Vec3
	Color
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "Float"
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Vec2:
		return "Vec2"
	case Vec3:
		return "Vec3"
	case Color:
		return "Color"
	default:
		return "Unknown"
	}
}

// components returns how many of the four stored floats this kind uses.
func (k Kind) components() int {
	switch k {
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Color:
		return 4
	default:
		return 1
	}
}

// Decl is an ordered parameter declaration: (name, kind, min, max, default).
type Decl struct {
	Name    string
	Kind    Kind
	Min     float32
	Max     float32
	Default [4]float32
}

// Builder provides the fluent construction API for a Decl. It returns
// *Builder from every setter so declarations read as a single expression,
// e.g.:
//
//	param.New("radius", param.Float).Range(0, 64).Default(8).Build()
type Builder struct {
	decl Decl
}

// New starts a declaration for name with the given kind. Range defaults to
// [0, 1] and the default value to the zero vector, matching the retrieved
// vst3go builder's normalized-by-default convention.
func New(name string, kind Kind) *Builder {
	return &Builder{decl: Decl{Name: name, Kind: kind, Min: 0, Max: 1}}
}

// Range sets the clamping bounds applied to every stored component.
func (b *Builder) Range(min, max float32) *Builder {
	b.decl.Min, b.decl.Max = min, max
	return b
}

// Default sets the scalar default value (components 1-3 of a Vec2/Vec3
// default, or the remaining RGBA channels, are set with DefaultVec).
func (b *Builder) Default(v float32) *Builder {
	b.decl.Default[0] = v
	return b
}

// DefaultVec sets all four stored components at once; callers of
// Vec2/Vec3/Color declarations use this instead of Default.
func (b *Builder) DefaultVec(v [4]float32) *Builder {
	b.decl.Default = v
	return b
}

// Build returns the configured declaration.
func (b *Builder) Build() Decl {
	return b.decl
}

// clamp restricts every active component of v to [d.Min, d.Max]. Out of
// range input is silently clamped, never rejected — spec.md §4.3 calls
// this out explicitly because live UI drags routinely overshoot.
func (d Decl) clamp(v [4]float32) [4]float32 {
	n := d.Kind.components()
	out := v
	for i := 0; i < n; i++ {
		if out[i] < d.Min {
			out[i] = d.Min
		} else if out[i] > d.Max {
			out[i] = d.Max
		}
	}
	return out
}

// Registry is the uniform store an operator embeds to get automatic
// Params/GetParam/SetParam support (spec.md §4.3). Operators call Register
// once per declaration in their constructor; the registry binds storage
// for it and preserves declaration order for Params().
type Registry struct {
	order  []string
	decls  map[string]Decl
	values map[string][4]float32
}

// NewRegistry returns an empty parameter registry.
func NewRegistry() *Registry {
	return &Registry{
		decls:  make(map[string]Decl),
		values: make(map[string][4]float32),
	}
}

// Register binds storage for decl, initialized to its default value.
// Registering the same name twice replaces the earlier declaration but
// keeps its position in Params() order.
func (r *Registry) Register(decl Decl) {
	if _, exists := r.decls[decl.Name]; !exists {
		r.order = append(r.order, decl.Name)
	}
	r.decls[decl.Name] = decl
	r.values[decl.Name] = decl.clamp(decl.Default)
}

// Params returns declarations in registration order.
func (r *Registry) Params() []Decl {
	out := make([]Decl, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.decls[name])
	}
	return out
}

// Get returns the current stored value for name and whether it exists.
func (r *Registry) Get(name string) ([4]float32, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set clamps v to the declared range and stores it. Returns false if name
// is not a registered parameter.
func (r *Registry) Set(name string, v [4]float32) bool {
	decl, ok := r.decls[name]
	if !ok {
		return false
	}
	r.values[name] = decl.clamp(v)
	return true
}

// Reset restores every parameter to its declared default. No operator's
// Cleanup or Init calls it, so a Cleanup/Init cycle does not by itself
// restore parameter defaults.
func (r *Registry) Reset() {
	for name, decl := range r.decls {
		r.values[name] = decl.clamp(decl.Default)
	}
}
