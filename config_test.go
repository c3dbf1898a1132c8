// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

import (
	"os"
	"path/filepath"
	"testing"
)

func applyAttrs(attrs ...Attr) Config {
	c := configDefaults
	for _, a := range attrs {
		a(&c)
	}
	return c
}

func TestAttrsOverrideDefaults(t *testing.T) {
	c := applyAttrs(Title("demo"), AssetPath("./assets"), Audio(44100, 128), EditorPort(1234))
	if c.title != "demo" {
		t.Errorf("expected title override, got %q", c.title)
	}
	if len(c.assetRoots) != 1 || c.assetRoots[0] != "./assets" {
		t.Errorf("expected one asset root, got %v", c.assetRoots)
	}
	if c.sampleRate != 44100 || c.blockSize != 128 {
		t.Errorf("expected sample rate/block size override, got %d/%d", c.sampleRate, c.blockSize)
	}
	if c.editorPort != 1234 {
		t.Errorf("expected editor port override, got %d", c.editorPort)
	}
}

func TestAudioIgnoresOutOfRangeValues(t *testing.T) {
	c := applyAttrs(Audio(-1, 999999))
	if c.sampleRate != configDefaults.sampleRate || c.blockSize != configDefaults.blockSize {
		t.Errorf("expected out-of-range audio settings to be ignored, got %d/%d", c.sampleRate, c.blockSize)
	}
}

func TestLoadSessionFileProducesEquivalentAttrs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	content := "title: from-file\nasset_roots: [\"./a\", \"./b\"]\nsample_rate: 96000\nblock_size: 512\neditor_port: 7000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	attrs, err := LoadSessionFile(path)
	if err != nil {
		t.Fatalf("LoadSessionFile: %v", err)
	}
	c := applyAttrs(attrs...)
	if c.title != "from-file" {
		t.Errorf("expected title from session file, got %q", c.title)
	}
	if len(c.assetRoots) != 2 {
		t.Errorf("expected 2 asset roots, got %v", c.assetRoots)
	}
	if c.sampleRate != 96000 || c.blockSize != 512 || c.editorPort != 7000 {
		t.Errorf("expected session file values applied, got %+v", c)
	}
}

func TestLoadSessionFileMissingFileReturnsError(t *testing.T) {
	_, err := LoadSessionFile("/nonexistent/session.yaml")
	if err == nil {
		t.Fatalf("expected an error for a missing session file")
	}
}
