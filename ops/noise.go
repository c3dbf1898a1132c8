// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"hash/maphash"

	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/param"
	"github.com/vividgraph/vivid/render"
)

// Noise is a Texture source filling a width×height RGBA8 texture with
// deterministic hash-based value noise. No noise library exists
// anywhere in the retrieved pack (the teacher's own noise.go binds
// sound data, not procedural pixels — see DESIGN.md), so this uses
// hash/maphash, the standard library's own fast string/byte hashing
// primitive, seeded once per operator instance.
type Noise struct {
	*vivid.Base
	width, height int
	handle        render.TextureHandle
	seed          maphash.Seed
	scratch       []byte
	lastGPU       render.Backend
}

// NewNoise returns a Noise filling a width×height texture.
func NewNoise(width, height int) *Noise {
	n := &Noise{
		Base:   vivid.NewBase("Noise", vivid.KindTexture, nil),
		width:  width,
		height: height,
		seed:   maphash.MakeSeed(),
	}
	n.RegisterParam(param.New("scale", param.Float).Range(0.001, 1).Default(0.05).Build())
	return n
}

func (n *Noise) Init(ctx *vivid.Context) error {
	n.lastGPU = ctx.GPU
	if ctx.GPU == nil {
		return nil
	}
	handle, err := ctx.GPU.CreateTexture(n.width, n.height, render.Rgba8Unorm)
	if err != nil {
		return err
	}
	n.handle = handle
	n.scratch = make([]byte, n.width*n.height*4)
	return nil
}

func (n *Noise) Cleanup() {
	if n.handle != 0 && n.lastGPU != nil {
		n.lastGPU.ReleaseTexture(n.handle)
	}
}

func (n *Noise) Process(ctx *vivid.Context) error {
	n.lastGPU = ctx.GPU
	if ctx.GPU == nil {
		n.MarkCookedClean()
		return nil
	}
	scaleV, _ := n.GetParam("scale")
	scale := scaleV[0]

	var h maphash.Hash
	h.SetSeed(n.seed)
	for y := 0; y < n.height; y++ {
		for x := 0; x < n.width; x++ {
			h.Reset()
			h.WriteByte(byte(float32(x) * scale))
			h.WriteByte(byte(float32(y) * scale))
			v := byte(h.Sum64())
			i := (y*n.width + x) * 4
			n.scratch[i+0] = v
			n.scratch[i+1] = v
			n.scratch[i+2] = v
			n.scratch[i+3] = 255
		}
	}
	ctx.GPU.QueueWriteTexture(n.handle, n.scratch, render.TextureLayout{
		BytesPerRow: uint32(n.width * 4),
		Width:       uint32(n.width),
		Height:      uint32(n.height),
	})
	n.MarkCookedClean()
	return nil
}

// Handle returns the GPU texture handle this operator writes to.
func (n *Noise) Handle() render.TextureHandle { return n.handle }
