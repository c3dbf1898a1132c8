// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// NullBackend discards every GPU request. It exists for hosts and tests
// that want to run a Chain without a real swap chain, the same role the
// teacher engine's audio.NoAudio plays for its sound layer.
type NullBackend struct {
	nextHandle TextureHandle
}

func (b *NullBackend) CreateTexture(width, height int, format Format) (TextureHandle, error) {
	b.nextHandle++
	return b.nextHandle, nil
}

func (b *NullBackend) ReleaseTexture(TextureHandle)   {}
func (b *NullBackend) CurrentEncoder() CommandEncoder { return struct{}{} }
func (b *NullBackend) Submit(CommandEncoder)          {}
func (b *NullBackend) QueueWriteTexture(TextureHandle, []byte, TextureLayout) {}
func (b *NullBackend) Present(TextureHandle)                                  {}
