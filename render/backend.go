// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render declares the boundary between the operator graph engine
// and a concrete GPU driver binding. Vivid never links against a graphics
// API directly (see spec.md §1 Non-goals); it calls through Backend, which
// a host provides. This mirrors the teacher engine's own render.Renderer
// seam between the engine core and its OpenGL/Vulkan implementations.
package render

import "fmt"

// TextureHandle is an opaque reference to a GPU texture. The engine never
// interprets its value; it is created and released exclusively by Backend.
type TextureHandle uint64

// Format is the pixel format of a texture. HAP video textures use the
// compressed BC1/BC3 forms; everything else defaults to Rgba16Float for
// intermediate chain buffers or Rgba8Unorm for final presentation.
type Format int

const (
	Rgba8Unorm Format = iota
	Rgba16Float
	Bc1
	Bc3
)

func (f Format) String() string {
	switch f {
	case Rgba8Unorm:
		return "Rgba8Unorm"
	case Rgba16Float:
		return "Rgba16Float"
	case Bc1:
		return "Bc1"
	case Bc3:
		return "Bc3"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// TextureLayout describes how queued bytes map onto a texture's rows for
// Backend.QueueWriteTexture.
type TextureLayout struct {
	BytesPerRow uint32
	Width       uint32
	Height      uint32
}

// CommandEncoder is an opaque handle to the frame's shared GPU command
// encoder. Operators append draw/compute commands to it; only the host's
// Backend implementation knows what is inside.
type CommandEncoder interface{}

// Backend is the GPU driver binding the engine calls into. One Backend
// instance is shared by every Texture-kind operator for the lifetime of a
// Chain. Concrete implementations (a real swap chain, a software
// rasterizer, a test double) live outside this module.
type Backend interface {
	CreateTexture(width, height int, format Format) (TextureHandle, error)
	ReleaseTexture(TextureHandle)

	// CurrentEncoder returns the command encoder shared by every operator
	// this frame. It is valid only between BeginFrame and Submit.
	CurrentEncoder() CommandEncoder
	Submit(CommandEncoder)
	QueueWriteTexture(TextureHandle, []byte, TextureLayout)
	Present(TextureHandle)
}
