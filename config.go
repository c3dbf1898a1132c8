// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// config.go reduces the engine's construction API footprint using
// functional options, the same pattern and naming convention the
// teacher's own config.go applies to its window/display settings:
// http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings an Attr can override before a Chain's
// session starts. Most fields also have a YAML session-file
// equivalent (see LoadSessionFile); CLI flags and environment
// variables layered on top of that file take final precedence
// (cmd/vivid wires that ordering).
type Config struct {
	title string

	assetRoots []string

	sampleRate int
	blockSize  int

	editorPort int

	eventBusCapacity int
}

// configDefaults provides reasonable defaults so a session runs even
// if no Attr or session file overrides anything, mirroring the
// teacher's own configDefaults var.
var configDefaults = Config{
	title:            "vivid",
	sampleRate:       48000,
	blockSize:        256,
	editorPort:       9876,
	eventBusCapacity: DefaultEventBusCapacity,
}

// Attr defines an optional construction-time override, applied in the
// order given to New:
//
//	eng, err := vivid.New(gpu, audioBackend, builder,
//	    vivid.Title("performance 01"),
//	    vivid.AssetPath("./assets"),
//	    vivid.Audio(48000, 256),
//	)
type Attr func(*Config)

// Title sets the session title surfaced to the editor bridge.
func Title(t string) Attr {
	return func(c *Config) { c.title = t }
}

// AssetPath appends a search root to the AssetLoader's resolution
// list, checked after any roots added by earlier Attrs; roots are
// searched in the order their AssetPath Attrs are applied.
func AssetPath(dir string) Attr {
	return func(c *Config) { c.assetRoots = append(c.assetRoots, dir) }
}

// Audio sets the fixed sample rate and block size for the session's
// AudioGraph. Values outside a sane range are ignored, keeping a
// malformed session file from wedging audio at session start.
func Audio(sampleRate, blockSize int) Attr {
	return func(c *Config) {
		if sampleRate > 0 && sampleRate <= 384_000 {
			c.sampleRate = sampleRate
		}
		if blockSize > 0 && blockSize <= 8192 {
			c.blockSize = blockSize
		}
	}
}

// EditorPort sets the TCP port the editor bridge listens on.
func EditorPort(port int) Attr {
	return func(c *Config) {
		if port > 0 && port < 65536 {
			c.editorPort = port
		}
	}
}

// EventBusCapacity sets the SPSC ring buffer's capacity, rounded up
// to the next power of two by NewEventBus.
func EventBusCapacity(n int) Attr {
	return func(c *Config) {
		if n > 0 {
			c.eventBusCapacity = n
		}
	}
}

// sessionFile is the on-disk shape of a YAML session document,
// following the teacher's load/shd.go convention of a small
// unmarshalable struct per descriptor kind rather than a generic map.
type sessionFile struct {
	Title            string   `yaml:"title"`
	AssetRoots       []string `yaml:"asset_roots"`
	SampleRate       int      `yaml:"sample_rate"`
	BlockSize        int      `yaml:"block_size"`
	EditorPort       int      `yaml:"editor_port"`
	EventBusCapacity int      `yaml:"event_bus_capacity"`
}

// LoadSessionFile reads a YAML session document from path and returns
// the Attrs it implies, letting a caller splice file-sourced settings
// into the same ordered Attr list as explicit code and CLI overrides:
//
//	attrs, err := vivid.LoadSessionFile("session.yaml")
//	eng, err := vivid.New(gpu, audioBackend, builder, append(attrs, vivid.EditorPort(9000))...)
func LoadSessionFile(path string) ([]Attr, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf sessionFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, err
	}

	var attrs []Attr
	if sf.Title != "" {
		attrs = append(attrs, Title(sf.Title))
	}
	for _, root := range sf.AssetRoots {
		attrs = append(attrs, AssetPath(root))
	}
	if sf.SampleRate != 0 || sf.BlockSize != 0 {
		attrs = append(attrs, Audio(sf.SampleRate, sf.BlockSize))
	}
	if sf.EditorPort != 0 {
		attrs = append(attrs, EditorPort(sf.EditorPort))
	}
	if sf.EventBusCapacity != 0 {
		attrs = append(attrs, EventBusCapacity(sf.EventBusCapacity))
	}
	return attrs, nil
}
