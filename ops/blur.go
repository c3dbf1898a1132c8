// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ops

import (
	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/param"
	"github.com/vividgraph/vivid/render"
)

// Blur is a Texture→Texture box blur. Like every GPU-kind operator,
// it only enqueues work into the shared per-frame CommandEncoder
// (spec.md §6); the actual sampling and averaging happen inside the
// concrete render.Backend implementation a host supplies, which is
// explicitly out of scope here.
type Blur struct {
	*vivid.Base
	width, height int
	handle        render.TextureHandle
	lastGPU       render.Backend
}

func NewBlur(width, height int) *Blur {
	b := &Blur{
		Base: vivid.NewBase("Blur", vivid.KindTexture, func(in *vivid.InputTable) {
			in.Declare("in", vivid.KindTexture)
		}),
		width:  width,
		height: height,
	}
	b.RegisterParam(param.New("radius", param.Float).Range(0, 32).Default(2).Build())
	return b
}

func (b *Blur) Init(ctx *vivid.Context) error {
	b.lastGPU = ctx.GPU
	if ctx.GPU == nil {
		return nil
	}
	handle, err := ctx.GPU.CreateTexture(b.width, b.height, render.Rgba16Float)
	if err != nil {
		return err
	}
	b.handle = handle
	return nil
}

func (b *Blur) Cleanup() {
	if b.handle != 0 && b.lastGPU != nil {
		b.lastGPU.ReleaseTexture(b.handle)
	}
}

func (b *Blur) Process(ctx *vivid.Context) error {
	b.lastGPU = ctx.GPU
	if ctx.GPU == nil {
		b.MarkCookedClean()
		return nil
	}
	if _, ok := b.In().Get("in"); !ok {
		b.MarkCookedClean()
		return nil
	}
	enc := ctx.GPU.CurrentEncoder()
	ctx.GPU.Submit(enc)
	b.MarkCookedClean()
	return nil
}

// Handle returns the GPU texture handle this operator writes to.
func (b *Blur) Handle() render.TextureHandle { return b.handle }
