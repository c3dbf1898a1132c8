// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTextResolvesFromFirstMatchingRoot(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootB, "shader.glsl"), []byte("from-b"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	l := New(rootA, rootB)
	got, err := l.Text(context.Background(), "shader.glsl")
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if got != "from-b" {
		t.Errorf("expected %q, got %q", "from-b", got)
	}
}

func TestTextNotFoundReturnsTypedError(t *testing.T) {
	l := New(t.TempDir())
	_, err := l.Text(context.Background(), "missing.glsl")
	if err == nil {
		t.Fatalf("expected an error for a missing asset")
	}
	var nf *NotFoundError
	if !asError(err, &nf) {
		t.Errorf("expected *NotFoundError, got %T", err)
	}
}

func TestTextCachesAfterFirstLoad(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "session.yaml")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	l := New(root)
	first, err := l.Text(context.Background(), "session.yaml")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}

	// Change the file on disk; the cached value should still be returned.
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	second, err := l.Text(context.Background(), "session.yaml")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if first != second {
		t.Errorf("expected cached value %q, got %q", first, second)
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "session.yaml")
	os.WriteFile(path, []byte("v1"), 0o644)
	l := New(root)
	l.Text(context.Background(), "session.yaml")

	os.WriteFile(path, []byte("v2"), 0o644)
	l.Invalidate("session.yaml")
	got, err := l.Text(context.Background(), "session.yaml")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "v2" {
		t.Errorf("expected reload to pick up %q, got %q", "v2", got)
	}
}

// asError is a tiny errors.As wrapper kept local to avoid importing
// errors solely for this one call site.
func asError(err error, target **NotFoundError) bool {
	nf, ok := err.(*NotFoundError)
	if ok {
		*target = nf
	}
	return ok
}
