// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// InputTable is the embeddable helper an operator's Base uses to
// declare named input slots and resolve them against sibling instances
// in a Chain at build time (spec.md §4.2, §4.6). It keeps declaration
// order so Base.Inputs() can hand the scheduler a stable edge list.
type InputTable struct {
	order   []string
	accepts map[string][]OutputKind
	target  map[string]string
	link    map[string]Operator
}

func newInputTable() *InputTable {
	return &InputTable{
		accepts: make(map[string][]OutputKind),
		target:  make(map[string]string),
		link:    make(map[string]Operator),
	}
}

// Declare registers a named input slot and the output kinds it will
// accept. Called once per slot from a leaf operator's constructor,
// before the operator is added to a Chain.
func (t *InputTable) Declare(slot string, accepts ...OutputKind) {
	if _, exists := t.accepts[slot]; !exists {
		t.order = append(t.order, slot)
	}
	t.accepts[slot] = accepts
}

// SetInputName records that slot should be wired to the chain instance
// named targetInstanceName. Graph-builder code calls this before
// Chain.Resolve wires the graph; a slot left unset resolves to nil, which leaf
// Process implementations must treat as "no input connected".
func (t *InputTable) SetInputName(slot, targetInstanceName string) {
	t.target[slot] = targetInstanceName
}

// Slots returns the declared slot names in declaration order.
func (t *InputTable) Slots() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// lookup resolves a chain instance name to an Operator; Chain.Resolve
// supplies this as a closure over its own name-keyed operator map so
// InputTable never needs to know about Chain directly.
type lookup func(name string) (Operator, bool)

// Resolve looks up every named target via find and records the
// matching Operator for Get/resolved to return. consumer identifies
// the owning instance for error messages. It reports one error per
// slot that names an instance that doesn't exist or whose OutputKind
// isn't among the slot's accepted kinds; a slot with no target name
// set is left unresolved without error.
func (t *InputTable) Resolve(consumer string, find lookup) []error {
	var errs []error
	for _, slot := range t.order {
		name, wired := t.target[slot]
		if !wired {
			continue
		}
		op, found := find(name)
		if !found {
			errs = append(errs, &UnknownInputError{Consumer: consumer, Slot: slot, Name: name})
			continue
		}
		if !acceptsKind(t.accepts[slot], op.OutputKind()) {
			errs = append(errs, &KindMismatchError{Consumer: consumer, Slot: slot, Expected: t.accepts[slot], Actual: op.OutputKind()})
			continue
		}
		t.link[slot] = op
	}
	return errs
}

func acceptsKind(accepted []OutputKind, actual OutputKind) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, k := range accepted {
		if k == actual {
			return true
		}
	}
	return false
}

// Get returns the resolved operator wired to slot, if any.
func (t *InputTable) Get(slot string) (Operator, bool) {
	op, ok := t.link[slot]
	return op, ok
}

// resolved returns every slot's resolved operator, in declaration
// order, skipping unconnected slots, for Base.Inputs().
func (t *InputTable) resolved() []Operator {
	out := make([]Operator, 0, len(t.order))
	for _, slot := range t.order {
		if op, ok := t.link[slot]; ok {
			out = append(out, op)
		}
	}
	return out
}
