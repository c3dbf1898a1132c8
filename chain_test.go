// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import (
	"errors"
	"testing"
)

// stubOp is a minimal Operator for exercising the scheduler without
// pulling in package ops.
type stubOp struct {
	*Base
	processed int
}

func newStubOp(name string, kind OutputKind, inputSlot string) *stubOp {
	s := &stubOp{}
	s.Base = NewBase(name, kind, func(in *InputTable) {
		if inputSlot != "" {
			in.Declare(inputSlot, KindTexture, KindValue)
		}
	})
	return s
}

func (s *stubOp) Init(ctx *Context) error    { return nil }
func (s *stubOp) Process(ctx *Context) error { s.processed++; s.MarkCookedClean(); return nil }
func (s *stubOp) Cleanup()                   {}

func TestProcessRunsInTopologicalOrder(t *testing.T) {
	c := NewChain("test")
	src := newStubOp("src", KindTexture, "")
	blur := newStubOp("blur", KindTexture, "in")
	blur.In().SetInputName("in", "src")

	c.Add("src", src)
	c.Add("blur", blur)
	c.SetOutput("blur")
	if errs := c.Resolve(); len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}

	c.Process(newContext(nil, nil, nil, nil))

	if src.processed != 1 || blur.processed != 1 {
		t.Fatalf("expected both operators to process once, got src=%d blur=%d", src.processed, blur.processed)
	}
}

func TestProcessSkipsNodesNotNeedingCook(t *testing.T) {
	c := NewChain("test")
	src := newStubOp("src", KindTexture, "")
	c.Add("src", src)
	c.SetOutput("src")
	c.Resolve()

	ctx := newContext(nil, nil, nil, nil)
	c.Process(ctx)
	c.Process(ctx)

	if src.processed != 1 {
		t.Errorf("expected cook-once behaviour, processed %d times", src.processed)
	}
	if got := c.Stats().LastSkipCount; got != 1 {
		t.Errorf("expected 1 skip on the second frame, got %d", got)
	}
}

func TestUnreachableNodeIsNotInExecutionOrder(t *testing.T) {
	c := NewChain("test")
	used := newStubOp("used", KindTexture, "")
	unused := newStubOp("unused", KindTexture, "")
	c.Add("used", used)
	c.Add("unused", unused)
	c.SetOutput("used")
	c.Resolve()

	c.Process(newContext(nil, nil, nil, nil))

	if used.processed != 1 {
		t.Errorf("expected the selected output to process")
	}
	if unused.processed != 0 {
		t.Errorf("expected the unreachable operator to be skipped entirely")
	}
}

func TestCycleMarksChainFailed(t *testing.T) {
	c := NewChain("test")
	a := newStubOp("a", KindTexture, "in")
	b := newStubOp("b", KindTexture, "in")
	a.In().SetInputName("in", "b")
	b.In().SetInputName("in", "a")
	c.Add("a", a)
	c.Add("b", b)
	c.SetOutput("a")
	c.Resolve()

	c.Process(newContext(nil, nil, nil, nil))

	if !c.Stats().Failed {
		t.Errorf("expected a cycle to mark the chain failed")
	}
	if a.processed != 0 || b.processed != 0 {
		t.Errorf("expected no processing once the chain is failed")
	}

	errs := c.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected a recorded cycle error")
	}
	var cycleErr *CycleDetected
	if !errors.As(errs[len(errs)-1], &cycleErr) {
		t.Fatalf("expected the cycle error to be a *CycleDetected, got %T", errs[len(errs)-1])
	}
	if cycleErr.Consumer == "" || cycleErr.Producer == "" {
		t.Errorf("expected CycleDetected to name the stuck consumer/producer pair, got %+v", cycleErr)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	c := NewChain("test")
	c.Add("a", newStubOp("a", KindTexture, ""))
	err := c.Add("a", newStubOp("a", KindTexture, ""))
	if err == nil {
		t.Fatalf("expected an error adding a duplicate name")
	}
	if _, ok := err.(*DuplicateNameError); !ok {
		t.Errorf("expected *DuplicateNameError, got %T", err)
	}
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	c := NewChain("a")
	op := &statefulStub{stubOp: *newStubOp("counter", KindValue, ""), count: 7}
	c.Add("counter", op)
	c.SetOutput("counter")
	c.Resolve()

	snap := c.SnapshotAll()

	c2 := NewChain("b")
	replacement := &statefulStub{stubOp: *newStubOp("counter", KindValue, "")}
	c2.Add("counter", replacement)
	c2.SetOutput("counter")
	c2.Resolve()
	c2.RestoreAll(snap)

	if replacement.count != 7 {
		t.Errorf("expected restored count 7, got %d", replacement.count)
	}
}

type statefulStub struct {
	stubOp
	count int
}

func (s *statefulStub) SaveState() (any, bool) { return s.count, true }
func (s *statefulStub) LoadState(v any) {
	if n, ok := v.(int); ok {
		s.count = n
	}
}
