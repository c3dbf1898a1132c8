// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package param

import "testing"

func TestSetGetRoundTripClamps(t *testing.T) {
	r := NewRegistry()
	r.Register(New("speed", Float).Range(0, 10).Default(1).Build())

	if ok := r.Set("speed", [4]float32{25, 0, 0, 0}); !ok {
		t.Fatalf("Set returned false for a registered parameter")
	}
	got, ok := r.Get("speed")
	if !ok {
		t.Fatalf("Get returned false for a registered parameter")
	}
	if got[0] != 10 {
		t.Errorf("expected clamp to max 10, got %v", got[0])
	}

	r.Set("speed", [4]float32{-5, 0, 0, 0})
	got, _ = r.Get("speed")
	if got[0] != 0 {
		t.Errorf("expected clamp to min 0, got %v", got[0])
	}
}

func TestSetUnknownNameFails(t *testing.T) {
	r := NewRegistry()
	if r.Set("nope", [4]float32{}) {
		t.Errorf("expected Set on unregistered name to return false")
	}
}

func TestParamsPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(New("b", Float).Build())
	r.Register(New("a", Float).Build())
	r.Register(New("c", Float).Build())

	decls := r.Params()
	if len(decls) != 3 || decls[0].Name != "b" || decls[1].Name != "a" || decls[2].Name != "c" {
		t.Errorf("expected insertion order [b a c], got %v", decls)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	r := NewRegistry()
	r.Register(New("gain", Float).Range(0, 1).Default(0.5).Build())
	r.Set("gain", [4]float32{1, 0, 0, 0})
	r.Reset()
	got, _ := r.Get("gain")
	if got[0] != 0.5 {
		t.Errorf("expected reset to restore default 0.5, got %v", got[0])
	}
}

func TestColorUsesAllFourComponents(t *testing.T) {
	r := NewRegistry()
	r.Register(New("tint", Color).Range(0, 1).DefaultVec([4]float32{1, 1, 1, 1}).Build())
	r.Set("tint", [4]float32{2, -1, 0.5, 0.25})
	got, _ := r.Get("tint")
	want := [4]float32{1, 0, 0.5, 0.25}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
