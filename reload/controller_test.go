// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package reload

import "testing"

const validSource = `
package main

func Setup(chain any) error { return nil }
func Update(chain any) error { return nil }
`

func TestCompileValidSourceReturnsBuilder(t *testing.T) {
	b, err := Compile([]byte(validSource))
	if err != nil {
		t.Fatalf("Compile returned an error for valid source: %v", err)
	}
	if b.Setup == nil || b.Update == nil {
		t.Fatalf("expected both Setup and Update to be populated")
	}
	if err := b.Setup(nil); err != nil {
		t.Errorf("Setup returned an error: %v", err)
	}
}

func TestCompileMissingUpdateFails(t *testing.T) {
	src := `
package main

func Setup(chain any) error { return nil }
`
	_, err := Compile([]byte(src))
	if err == nil {
		t.Fatalf("expected an error when Update is not exported")
	}
	if _, ok := err.(*CompileFailedError); !ok {
		t.Errorf("expected *CompileFailedError, got %T", err)
	}
}

func TestCompileSyntaxErrorFails(t *testing.T) {
	_, err := Compile([]byte("package main\nfunc Setup( {"))
	if err == nil {
		t.Fatalf("expected an error for invalid syntax")
	}
}

type fakeSnapshotter struct {
	snapshotted bool
	restored    map[string]any
}

func (f *fakeSnapshotter) SnapshotAll() map[string]any {
	f.snapshotted = true
	return map[string]any{"a": 1}
}

func (f *fakeSnapshotter) RestoreAll(snap map[string]any) { f.restored = snap }

func TestPollWithNoPendingChangeIsNoop(t *testing.T) {
	c := &Controller{path: "/nonexistent/for/this/test.go"}
	rebuilt, err := c.Poll(&fakeSnapshotter{})
	if rebuilt || err != nil {
		t.Errorf("expected Poll to no-op without a pending change, got rebuilt=%v err=%v", rebuilt, err)
	}
}
