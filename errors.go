// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// errors.go collects the engine's error taxonomy. The core never panics
// across a package boundary; every failure mode here is a typed value a
// host can test with errors.As, or a line appended to a Chain's
// accumulated, non-fatal error buffer.

import "fmt"

// CycleDetected is recorded in a Chain's error list when the scheduler
// finds a cycle among the operators reachable from the output selectors.
// The connection that closes the cycle is not rejected when it is made,
// and no earlier execution order is kept: the chain enters a failed state
// and Process runs no operator until the cycle is removed.
type CycleDetected struct {
	Consumer string
	Producer string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("CycleDetected: connecting %q to %q would close a cycle", e.Consumer, e.Producer)
}

// UnknownInputError records a consumer's input name that did not resolve
// to any operator in the chain. The slot is treated as absent; this is a
// warning, not a fatal error.
type UnknownInputError struct {
	Consumer string
	Slot     string
	Name     string
}

func (e *UnknownInputError) Error() string {
	return fmt.Sprintf("UnknownInput: %s.%s references unknown operator %q", e.Consumer, e.Slot, e.Name)
}

// KindMismatchError records an input connection whose producer's output
// kind is not in the consumer's accepted set for that slot. The slot is
// treated as absent.
type KindMismatchError struct {
	Consumer string
	Slot     string
	Expected []OutputKind
	Actual   OutputKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("KindMismatch: %s.%s expected one of %v, got %s", e.Consumer, e.Slot, e.Expected, e.Actual)
}

// DuplicateNameError is returned by Chain.Add when the instance name is
// already in use. The chain is otherwise unaffected.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("DuplicateName: %q already exists in this chain", e.Name)
}

// CompileFailedError is surfaced by the hot-reload controller when the
// graph-builder source fails to evaluate. The previous chain is kept live.
type CompileFailedError struct {
	Message string
}

func (e *CompileFailedError) Error() string {
	return fmt.Sprintf("CompileFailed: %s", e.Message)
}

// QueueFull names the case where the EventBus ring buffer has no free
// slot. EventBus.Push does not return this value: it reports the case by
// returning false and incrementing DroppedCount. It is transient; the
// caller should treat it as a dropped event, never as a reason to retry
// inline on the audio thread.
type QueueFull struct{}

func (e *QueueFull) Error() string { return "QueueFull: event bus is at capacity" }

// AssetNotFoundError names the case where no search root contains the
// requested path. asset.Loader does not return this type; it reports the
// case with its own *asset.NotFoundError. Callers decide whether this is
// fatal.
type AssetNotFoundError struct {
	Path string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("AssetNotFound: %s", e.Path)
}

// OutputKind classifies what an operator produces. It is fixed for an
// operator's lifetime and determines which input slots may accept it.
type OutputKind int

const (
	// KindNone marks an operator that produces no readable resource
	// (e.g. a pure side-effect sink).
	KindNone OutputKind = iota
	KindTexture
	KindAudio
	KindValue
	KindAudioValue
	KindMesh
	KindLight
	KindScene
)

func (k OutputKind) String() string {
	switch k {
	case KindTexture:
		return "Texture"
	case KindAudio:
		return "Audio"
	case KindValue:
		return "Value"
	case KindAudioValue:
		return "AudioValue"
	case KindMesh:
		return "Mesh"
	case KindLight:
		return "Light"
	case KindScene:
		return "Scene"
	default:
		return "None"
	}
}
