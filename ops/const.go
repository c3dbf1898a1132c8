// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ops provides a small reference set of leaf operators
// exercising every vivid.OutputKind, grounded section by section on
// the retrieved example pack (see each file's doc comment for its
// specific source). These are illustrative leaves, not an attempt at
// the full effect/synth/analyzer surface spec.md explicitly scopes
// out of the hard core.
package ops

import (
	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/param"
)

// Const is a Value-kind source with no inputs: its single "value"
// parameter is its entire output. Useful for driving other operators'
// inputs from the editor bridge without a dedicated constant-folding
// path in the scheduler.
type Const struct {
	*vivid.Base
}

// NewConst returns a Const holding the given initial value.
func NewConst(value float32) *Const {
	c := &Const{Base: vivid.NewBase("Const", vivid.KindValue, nil)}
	c.RegisterParam(param.New("value", param.Float).Range(-1e6, 1e6).Default(value).Build())
	return c
}

func (c *Const) Init(ctx *vivid.Context) error { return nil }

func (c *Const) Process(ctx *vivid.Context) error {
	c.MarkCookedClean()
	return nil
}

func (c *Const) Cleanup() {}

// Value returns the operator's current scalar output.
func (c *Const) Value() float32 {
	v, _ := c.GetParam("value")
	return v[0]
}
