// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// chain.go implements C3/C4.4: a named container of operators, a
// Kahn's-algorithm topological scheduler with stable insertion-order
// tie-breaking, output selection, and per-instance state snapshot for
// hot-reload. Its single-threaded, lazily-initializing execution pass
// is modeled on the teacher engine's frame-loop split between "ready"
// and "dirty" scene nodes, generalized from a fixed scene graph to an
// arbitrary operator DAG.
import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Chain is a named collection of operators plus a derived execution
// order, the output-node selectors, and the accumulated error surface
// (spec.md §4.2). All methods are single-threaded — the main thread
// owns a Chain exclusively except where noted.
type Chain struct {
	name string

	order      []string // insertion order; also the Kahn tie-break key.
	operators  map[string]Operator
	initialized map[string]bool
	lines      map[string]int // Add's caller line, keyed by instance name.

	visualOutput string
	audioOutput  string

	execOrder []string // last computed topological order.
	failed    bool     // true while the graph has an unresolved cycle.

	errs []error

	lastSkipCount int
}

// NewChain returns an empty chain named name.
func NewChain(name string) *Chain {
	return &Chain{
		name:        name,
		operators:   make(map[string]Operator),
		initialized: make(map[string]bool),
		lines:       make(map[string]int),
	}
}

// Add registers op under name. Duplicate names are rejected with a
// *DuplicateNameError and the chain is otherwise unaffected.
func (c *Chain) Add(name string, op Operator) error {
	if _, exists := c.operators[name]; exists {
		err := &DuplicateNameError{Name: name}
		c.errs = append(c.errs, err)
		return err
	}
	c.order = append(c.order, name)
	c.operators[name] = op
	// The call site, not Add's own line: lets the editor bridge point
	// back at the graph-builder source that declared this operator
	// (spec.md §6's per-operator "line"), the Go-idiomatic stand-in for
	// the original's macro-recorded registration line.
	if _, _, line, ok := runtime.Caller(1); ok {
		c.lines[name] = line
	}
	c.execOrder = nil // force a re-sort before the next process.
	return nil
}

// Get returns the operator registered under name.
func (c *Chain) Get(name string) (Operator, bool) {
	op, ok := c.operators[name]
	return op, ok
}

// Remove drops name from the chain. A subsequent process recomputes
// the execution order.
func (c *Chain) Remove(name string) {
	delete(c.operators, name)
	delete(c.initialized, name)
	delete(c.lines, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.execOrder = nil
}

// SetOutput selects the visual-kind node whose transitive dependency
// set the scheduler must include and whose result the host presents.
func (c *Chain) SetOutput(name string) { c.visualOutput = name; c.execOrder = nil }

// SetAudioOutput selects the Audio-kind node whose buffer the audio
// callback publishes (spec.md §4.2).
func (c *Chain) SetAudioOutput(name string) { c.audioOutput = name }

// Output and AudioOutput return the currently selected output names.
func (c *Chain) Output() string      { return c.visualOutput }
func (c *Chain) AudioOutput() string { return c.audioOutput }

// Resolve wires every operator's declared inputs to sibling instances
// in this chain by name, via each operator's InputTable (if it
// exposes one through the In() accessor used by Base). Call once
// after every Add/Remove batch and before the first Process.
func (c *Chain) Resolve() []error {
	var errs []error
	find := func(name string) (Operator, bool) { return c.Get(name) }
	for _, name := range c.order {
		op := c.operators[name]
		resolver, ok := op.(interface{ In() *InputTable })
		if !ok {
			continue
		}
		for _, e := range resolver.In().Resolve(name, find) {
			errs = append(errs, e)
		}
	}
	c.errs = append(c.errs, errs...)
	return errs
}

// Errors returns every non-fatal error accumulated since the last
// ClearErrors call.
func (c *Chain) Errors() []error { return c.errs }

// ErrorString renders accumulated errors as the single display string
// spec.md §4.2 specifies, one per line.
func (c *Chain) ErrorString() string {
	if len(c.errs) == 0 {
		return ""
	}
	lines := make([]string, len(c.errs))
	for i, e := range c.errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ClearErrors discards accumulated errors, as the host does after
// displaying them for one frame.
func (c *Chain) ClearErrors() { c.errs = nil }

// Stats is a snapshot of scheduler bookkeeping for the editor bridge
// and for tests validating the topological sort property cheaply.
type Stats struct {
	OperatorCount  int
	ExecOrderLen   int
	LastSkipCount  int
	Failed         bool
}

// Stats returns the chain's current bookkeeping snapshot.
func (c *Chain) Stats() Stats {
	return Stats{
		OperatorCount: len(c.operators),
		ExecOrderLen:  len(c.execOrder),
		LastSkipCount: c.lastSkipCount,
		Failed:        c.failed,
	}
}

// sort computes the topological execution order for every node
// reachable (via Inputs) from the visual and audio output selectors,
// using Kahn's algorithm with ties broken by insertion order
// (spec.md §4.4). On cycle, the chain enters a failed state and
// Process becomes a no-op until the graph is repaired.
func (c *Chain) sort() {
	reachable := c.reachableFrom(c.visualOutput, c.audioOutput)
	if len(reachable) == 0 {
		c.execOrder = nil
		c.failed = false
		return
	}

	indegree := make(map[string]int, len(reachable))
	successors := make(map[string][]string, len(reachable))
	for name := range reachable {
		indegree[name] = 0
	}
	for name := range reachable {
		op := c.operators[name]
		for _, up := range op.Inputs() {
			upName := c.nameOf(up)
			if upName == "" {
				continue
			}
			if _, ok := reachable[upName]; !ok {
				continue
			}
			indegree[name]++
			successors[upName] = append(successors[upName], name)
		}
	}

	// Seed the queue with in-degree-0 nodes in insertion order for a
	// stable, deterministic tie-break.
	var queue []string
	for _, name := range c.order {
		if _, ok := reachable[name]; !ok {
			continue
		}
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		// Successors are appended to the queue in the chain's
		// insertion order, not discovery order, to keep tie-breaking
		// stable regardless of input declaration order.
		var newlyReady []string
		for _, succ := range successors[name] {
			indegree[succ]--
			if indegree[succ] == 0 {
				newlyReady = append(newlyReady, succ)
			}
		}
		sort.SliceStable(newlyReady, func(i, j int) bool {
			return c.insertionIndex(newlyReady[i]) < c.insertionIndex(newlyReady[j])
		})
		queue = append(queue, newlyReady...)
	}

	if len(order) != len(reachable) {
		c.failed = true
		ordered := make(map[string]bool, len(order))
		for _, name := range order {
			ordered[name] = true
		}
		consumer, producer := "", ""
		for _, name := range c.order {
			if ordered[name] || !reachable[name] {
				continue
			}
			consumer = name
			for _, up := range c.order {
				if !reachable[up] || ordered[up] {
					continue
				}
				for _, succ := range successors[up] {
					if succ == name {
						producer = up
						break
					}
				}
				if producer != "" {
					break
				}
			}
			break
		}
		c.errs = append(c.errs, &CycleDetected{Consumer: consumer, Producer: producer})
		return
	}
	c.failed = false
	c.execOrder = order
}

func (c *Chain) insertionIndex(name string) int {
	for i, n := range c.order {
		if n == name {
			return i
		}
	}
	return len(c.order)
}

// nameOf finds the instance name a resolved Operator is registered
// under. Inputs() returns operator values, not names, so the
// scheduler maps back through the chain's own registry.
func (c *Chain) nameOf(op Operator) string {
	for name, candidate := range c.operators {
		if candidate == op {
			return name
		}
	}
	return ""
}

// reachableFrom returns the set of instance names transitively
// required by the given output selectors, walking Inputs() backwards.
func (c *Chain) reachableFrom(outputs ...string) map[string]bool {
	seen := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if name == "" || seen[name] {
			return
		}
		op, ok := c.operators[name]
		if !ok {
			return
		}
		seen[name] = true
		for _, up := range op.Inputs() {
			visit(c.nameOf(up))
		}
	}
	for _, name := range outputs {
		visit(name)
	}
	return seen
}

// Process walks the execution order, lazily initializing any
// operator that hasn't run Init yet, then running Process on every
// operator whose NeedsCook reports true (spec.md §4.2, §4.4). A
// cycle-failed chain runs no operator; it re-sorts each frame and
// resumes once the cycle is gone.
func (c *Chain) Process(ctx *Context) {
	if c.execOrder == nil {
		wasFailed, errCount := c.failed, len(c.errs)
		c.sort()
		if wasFailed && c.failed {
			// Still cyclic: keep the first CycleDetected rather than
			// recording another one every frame.
			c.errs = c.errs[:errCount]
		}
	}
	if c.failed {
		return
	}
	skipped := 0
	for _, name := range c.execOrder {
		op := c.operators[name]
		if !c.initialized[name] {
			if err := op.Init(ctx); err != nil {
				c.errs = append(c.errs, fmt.Errorf("%s.Init: %w", name, err))
				continue
			}
			c.initialized[name] = true
		}
		if !op.NeedsCook(ctx) {
			skipped++
			continue
		}
		if err := op.Process(ctx); err != nil {
			c.errs = append(c.errs, fmt.Errorf("%s.Process: %w", name, err))
		}
	}
	c.lastSkipCount = skipped
}

// Snapshot is a named collection of captured operator state, produced
// by SnapshotAll and consumed by RestoreAll across a hot-reload
// rebuild (spec.md §4.2 state snapshot). It is an alias of
// map[string]any so that *Chain satisfies reload.Snapshotter.
type Snapshot = map[string]any

// SnapshotAll captures SaveState from every operator in this chain
// that implements Stateful and currently reports ok==true.
func (c *Chain) SnapshotAll() Snapshot {
	out := make(Snapshot)
	for name, op := range c.operators {
		stateful, ok := op.(Stateful)
		if !ok {
			continue
		}
		if state, ok := stateful.SaveState(); ok {
			out[name] = state
		}
	}
	return out
}

// RestoreAll looks up each captured state by instance name in this
// (newly rebuilt) chain and invokes LoadState on the matching
// operator. Unmatched saved states are discarded; unmatched operators
// keep their constructor defaults.
func (c *Chain) RestoreAll(snap Snapshot) {
	for name, state := range snap {
		op, ok := c.operators[name]
		if !ok {
			continue
		}
		if stateful, ok := op.(Stateful); ok {
			stateful.LoadState(state)
		}
	}
}

// Descriptor summarizes one chain operator for external consumers
// (the editor bridge, diagnostics) that should not need the Operator
// interface itself.
type Descriptor struct {
	Name   string
	Kind   OutputKind
	Line   int // Add's caller line (0 if unavailable); editor bridge's "line".
	Inputs []string // resolved source instance names, in slot order.
}

// Describe returns every operator's Descriptor in insertion order.
func (c *Chain) Describe() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, name := range c.order {
		op := c.operators[name]
		d := Descriptor{Name: name, Kind: op.OutputKind(), Line: c.lines[name]}
		if resolver, ok := op.(interface{ In() *InputTable }); ok {
			for _, slot := range resolver.In().Slots() {
				target, _ := resolver.In().Get(slot)
				if target != nil {
					d.Inputs = append(d.Inputs, c.nameOf(target))
				}
			}
		}
		out = append(out, d)
	}
	return out
}

// Cleanup calls Cleanup on every initialized operator, in reverse
// execution order, and clears initialization bookkeeping.
func (c *Chain) Cleanup() {
	for i := len(c.execOrder) - 1; i >= 0; i-- {
		name := c.execOrder[i]
		if c.initialized[name] {
			c.operators[name].Cleanup()
		}
	}
	c.initialized = make(map[string]bool)
}
