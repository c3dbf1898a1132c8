// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package reload implements C7, the HotReloadController: watching a
// graph-builder source file, rebuilding the chain it describes when
// the file changes, and snapshotting/restoring operator state across
// the rebuild (spec.md §4.7).
//
// Rather than compiling a platform plugin (the spec's "invoke the
// platform toolchain" step), this interprets the graph-builder source
// in-process with github.com/traefik/yaegi, the approach the retrieved
// breadchris-yaegi example builds its whole interpreter around. Unlike
// plugin.Open, an interpreted program can be discarded and replaced
// without ever unloading a shared object, and it works identically on
// every platform this engine targets — the REDESIGN decision recorded
// in SPEC_FULL.md's Open Question resolution.
package reload

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Builder is the pair of entry points a graph-builder source exports,
// looked up by fixed symbol name after every (re)interpretation
// (spec.md §6 "Graph-builder entry points").
type Builder struct {
	// Setup is called once after initial chain creation and again
	// after every successful hot-reload, before Update runs.
	Setup func(chain any) error
	// Update is called once per frame, before Chain.Process.
	Update func(chain any) error
}

// Snapshotter is the subset of Chain a controller needs without
// importing package vivid directly, keeping package reload free of a
// dependency cycle back to the engine core.
type Snapshotter interface {
	SnapshotAll() map[string]any
	RestoreAll(map[string]any)
}

// Host is the callback surface the controller drives during a
// rebuild. BeforeUnload must pause the audio callback before the
// controller discards the previous interpreter state (spec.md step 2);
// AfterReload resumes it once the new chain is live.
type Host struct {
	BeforeUnload func()
	AfterReload  func(b Builder)
	OnError      func(err error)
}

// Controller watches a graph-builder source file through fsnotify and
// drives a rebuild from Poll once a write has been seen (spec.md §4.7). It is not
// safe for concurrent use; call Poll from the main thread once per
// frame or on a timer.
type Controller struct {
	path     string
	host     Host
	lastMod  time.Time
	gen      uuid.UUID
	watcher  *fsnotify.Watcher
	pending  bool
}

// New returns a controller watching path via fsnotify, falling back
// to no-op polling if the watch cannot be established (a missing
// parent directory during early startup, for instance) — Poll then
// simply never reports a change until New is retried.
func New(path string, host Host) (*Controller, error) {
	c := &Controller{path: path, host: host}
	if fi, err := os.Stat(path); err == nil {
		c.lastMod = fi.ModTime()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return c, fmt.Errorf("reload: creating watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return c, fmt.Errorf("reload: watching %s: %w", path, err)
	}
	c.watcher = w
	go c.watch()
	return c, nil
}

// watch forwards fsnotify write events into the pending flag Poll
// checks. Runs for the controller's lifetime on its own goroutine;
// never touches chain state directly, only the pending bool, which
// Poll reads and clears from the main thread.
func (c *Controller) watch() {
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				c.pending = true
			}
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// ForceNextPoll marks a rebuild pending regardless of file watch
// state, for an explicit "reload" request arriving over the editor
// bridge (spec.md §6 incoming "reload" message).
func (c *Controller) ForceNextPoll() { c.pending = true }

// Close stops the underlying file watch. Safe to call even if New
// returned a watcher-less Controller.
func (c *Controller) Close() {
	if c.watcher != nil {
		c.watcher.Close()
	}
}

// Poll checks for a pending change and, if one is queued, drives the
// full rebuild sequence in spec.md §4.7: snapshot, recompile,
// construct a fresh chain, restore state, resume. chain is the live
// chain to snapshot before rebuild; it must implement Snapshotter.
// Returns true if a rebuild was attempted (whether or not it
// succeeded); CompileFailedError leaves the previous Builder live.
func (c *Controller) Poll(chain Snapshotter) (rebuilt bool, err error) {
	if !c.pending {
		return false, nil
	}
	c.pending = false

	if c.host.BeforeUnload != nil {
		c.host.BeforeUnload()
	}

	snapshot := chain.SnapshotAll()

	src, readErr := os.ReadFile(c.path)
	if readErr != nil {
		err = fmt.Errorf("reload: reading %s: %w", c.path, readErr)
		c.report(err)
		return true, err
	}

	builder, compileErr := Compile(src)
	if compileErr != nil {
		c.report(compileErr)
		if c.host.AfterReload != nil {
			// Resume audio against the still-live previous chain;
			// the caller did not actually replace it.
			c.host.AfterReload(Builder{})
		}
		return true, compileErr
	}

	c.gen = uuid.New()
	if c.host.AfterReload != nil {
		c.host.AfterReload(builder)
	}
	chain.RestoreAll(snapshot)
	return true, nil
}

// Generation returns the uuid identifying the most recently completed
// rebuild, correlating EventBus drop accounting with a specific
// reload for the editor bridge's display.
func (c *Controller) Generation() uuid.UUID { return c.gen }

func (c *Controller) report(err error) {
	if c.host.OnError != nil {
		c.host.OnError(err)
	}
}

// Compile interprets src as a standalone Go source file and returns
// its exported Setup/Update functions as a Builder. The source must
// declare `package main` and export `func Setup(chain any) error` and
// `func Update(chain any) error` — the fixed symbol names spec.md §6
// calls for, looked up by name after every rebuild rather than by a
// macro-equivalent declarative registration (yaegi has no macro
// system; name lookup is the idiomatic Go equivalent).
func Compile(src []byte) (Builder, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return Builder{}, &CompileFailedError{Message: err.Error()}
	}
	if _, err := i.Eval(string(src)); err != nil {
		return Builder{}, &CompileFailedError{Message: err.Error()}
	}

	setupVal, err := i.Eval("main.Setup")
	if err != nil {
		return Builder{}, &CompileFailedError{Message: "no exported Setup: " + err.Error()}
	}
	updateVal, err := i.Eval("main.Update")
	if err != nil {
		return Builder{}, &CompileFailedError{Message: "no exported Update: " + err.Error()}
	}

	setup, ok := setupVal.Interface().(func(any) error)
	if !ok {
		return Builder{}, &CompileFailedError{Message: "Setup has the wrong signature"}
	}
	update, ok := updateVal.Interface().(func(any) error)
	if !ok {
		return Builder{}, &CompileFailedError{Message: "Update has the wrong signature"}
	}

	return Builder{Setup: setup, Update: update}, nil
}

// CompileFailedError mirrors vivid.CompileFailedError so package
// reload has no import-cycle dependency back on the engine core; the
// two share the same wire shape and Error() text.
type CompileFailedError struct {
	Message string
}

func (e *CompileFailedError) Error() string {
	return fmt.Sprintf("CompileFailed: %s", e.Message)
}
