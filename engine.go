// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package vivid

// engine.go is the main user-facing entry point, the role the
// teacher's vu.New/app.go split plays: one exported constructor wires
// up the collaborators (GPU backend, audio backend, asset loader,
// hot-reload controller), then Run drives the per-frame loop until
// the host asks it to stop. Unlike the teacher, Vivid has no windowing
// or device layer of its own — that stays a host concern (§1
// Non-goals) — so Engine only ever touches the render.Backend and
// audio.Backend interfaces it is handed.
import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vividgraph/vivid/asset"
	"github.com/vividgraph/vivid/audio"
	"github.com/vividgraph/vivid/editor"
	"github.com/vividgraph/vivid/reload"
	"github.com/vividgraph/vivid/render"
)

// GraphBuilder is the pair of entry points a project's graph-builder
// source exports, looked up by fixed symbol name (spec.md §6): Setup
// runs once after initial chain creation and again after every
// hot-reload, Update runs once per frame before Chain.Process.
type GraphBuilder interface {
	Setup(ctx *Context, chain *Chain) error
	Update(ctx *Context, chain *Chain) error
}

// reloadableBuilder is implemented by a GraphBuilder whose Setup/Update
// pair comes from interpreted source (cmd/vivid's file-backed
// builder): after a successful HotReloadController rebuild, the
// engine swaps in the freshly compiled pair instead of calling the
// stale one it started with.
type reloadableBuilder interface {
	GraphBuilder
	ReplaceWith(b reload.Builder)
}

// Engine owns one session's Chain, Context, AudioGraph, EventBus, and
// (optionally) HotReloadController, and drives them through Run.
type Engine struct {
	cfg   Config
	log   *slog.Logger
	ctx   *Context
	chain *Chain
	bus   *EventBus
	audio *AudioGraph

	builder GraphBuilder
	reload  *reload.Controller
	bridge  *editor.Bridge

	profile Profile
	state   RunState

	done   context.Context
	cancel context.CancelFunc
}

// New constructs an Engine from gpu, audioBackend, and builder, with
// cfg assembled from configDefaults plus attrs in order. gpu may be
// nil for an audio-only session; audioBackend may be &audio.NoBackend{}
// for a visual-only one.
func New(gpu render.Backend, audioBackend audio.Backend, builder GraphBuilder, attrs ...Attr) (*Engine, error) {
	cfg := configDefaults
	for _, a := range attrs {
		a(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	done, cancel := context.WithCancel(context.Background())
	loader := asset.New(cfg.assetRoots...)
	ctx := newContext(done, gpu, loader, logger)

	bus := NewEventBus(cfg.eventBusCapacity)
	sampleRate, blockSize := cfg.sampleRate, cfg.blockSize
	if audioBackend != nil {
		sampleRate, blockSize = audioBackend.SampleRate(), audioBackend.BlockSize()
	}

	e := &Engine{
		cfg:     cfg,
		log:     logger,
		ctx:     ctx,
		chain:   NewChain(cfg.title),
		bus:     bus,
		audio:   NewAudioGraph(sampleRate, blockSize, bus),
		builder: builder,
		done:    done,
		cancel:  cancel,
	}
	return e, nil
}

// EnableHotReload starts watching path for changes and wires a
// HotReloadController that rebuilds e's chain when it changes
// (spec.md §4.7). Call before Run.
func (e *Engine) EnableHotReload(path string) error {
	ctrl, err := reload.New(path, reload.Host{
		BeforeUnload: func() { e.log.Info("hot reload: pausing audio before rebuild") },
		AfterReload: func(b reload.Builder) {
			if b.Setup == nil && b.Update == nil {
				// A failed compile: Poll resumes against the previous
				// builder, which stays installed.
				return
			}
			gen := e.reload.Generation()
			e.bus.SetGeneration(gen)
			e.log.Info("hot reload: rebuild complete", "generation", gen)
			if reloadable, ok := e.builder.(reloadableBuilder); ok {
				reloadable.ReplaceWith(b)
			}
			e.audio.Rebuild(e.chain)
		},
		OnError: func(err error) { e.log.Error("hot reload failed", "error", err) },
	})
	if err != nil {
		return err
	}
	e.reload = ctrl
	return nil
}

// Setup invokes the graph-builder's Setup and rebuilds the audio
// execution order from the resulting chain. Call once before the
// first Run; without this, a session that never reloads would leave
// the audio graph's execution order empty and PullAudio silent until
// EnableHotReload's own post-rebuild call to audio.Rebuild first fires.
func (e *Engine) Setup() error {
	if e.builder == nil {
		return nil
	}
	if err := e.builder.Setup(e.ctx, e.chain); err != nil {
		return err
	}
	e.audio.Rebuild(e.chain)
	return nil
}

// EnableEditor starts a TCP editor bridge on addr (e.g. ":9876", or the
// cfg.editorPort default formatted by the caller) accepting the §6
// wire protocol: incoming "reload" and "set_param" requests, outgoing
// "compile"/"operators"/"params" broadcasts. Call before Run; the
// returned error is a listen failure (port already in use, etc).
func (e *Engine) EnableEditor(addr string) error {
	b, err := editor.New(addr, editor.Handler{
		OnReload: func() {
			if e.reload != nil {
				e.reload.ForceNextPoll()
			}
		},
		OnSetParam: func(req editor.SetParamRequest) {
			if op, ok := e.chain.Get(req.Op); ok {
				op.SetParam(req.Name, req.Value)
			}
		},
	})
	if err != nil {
		return err
	}
	go b.Serve()
	e.bridge = b
	return nil
}

// broadcastGraphState pushes the current operator and parameter list
// to every connected editor client, called after a rebuild so the
// editor's views stay in sync (spec.md §6).
func (e *Engine) broadcastGraphState() {
	if e.bridge == nil {
		return
	}
	descriptors := e.chain.Describe()
	operators := make([]editor.OperatorInfo, 0, len(descriptors))
	var params []editor.ParamInfo
	for _, d := range descriptors {
		operators = append(operators, editor.OperatorInfo{Name: d.Name, Kind: d.Kind.String(), Line: d.Line, Inputs: d.Inputs})
		op, ok := e.chain.Get(d.Name)
		if !ok {
			continue
		}
		for _, decl := range op.Params() {
			v, _ := op.GetParam(decl.Name)
			params = append(params, editor.ParamInfo{
				Op: d.Name, Name: decl.Name, Type: decl.Kind.String(),
				Value: v, Min: decl.Min, Max: decl.Max,
			})
		}
	}
	e.bridge.BroadcastOperators(operators)
	e.bridge.BroadcastParams(params)
}

// Chain, Context, EventBus, and AudioGraph expose the session's
// components for host code (editor bridge, tests) that needs direct
// access outside the Run loop.
func (e *Engine) Chain() *Chain           { return e.chain }
func (e *Engine) Context() *Context       { return e.ctx }
func (e *Engine) EventBus() *EventBus     { return e.bus }
func (e *Engine) AudioGraph() *AudioGraph { return e.audio }
func (e *Engine) Profile() Profile        { return e.profile }
func (e *Engine) State() RunState         { return e.state }

// EditorPort returns the configured editor bridge port (default 9876,
// overridable via vivid.EditorPort or the session file's editor_port).
func (e *Engine) EditorPort() int { return e.cfg.editorPort }

// Mute sets whether audio output is silenced. PullAudio still runs
// the graph so parameter and event state stay current; only the
// copied-out buffer is zeroed.
func (e *Engine) Mute(muted bool) { e.state.Muted = muted }

// Run drives the engine for one frame: sample input/time via in,
// call the graph-builder's Update, run Chain.Process, poll for a
// pending hot-reload, and update the rolling Profile. The host calls
// this once per display refresh; Run never blocks internally (spec.md
// §5 "no suspension points").
func (e *Engine) Run(now time.Time, in Input, width, height int) error {
	frameStart := time.Now()

	e.ctx.beginFrame(now, in, width, height)
	e.state.setScreen(0, 0, width, height)

	if e.builder != nil {
		if err := e.builder.Update(e.ctx, e.chain); err != nil {
			e.chain.errs = append(e.chain.errs, err)
		}
	}

	e.chain.Process(e.ctx)

	if e.reload != nil {
		if rebuilt, err := e.reload.Poll(e.chain); rebuilt {
			if err != nil {
				e.log.Error("hot reload rebuild failed", "error", err)
				if e.bridge != nil {
					e.bridge.BroadcastCompile(false, err.Error())
				}
			} else {
				if e.builder != nil {
					if err := e.builder.Setup(e.ctx, e.chain); err != nil {
						e.chain.errs = append(e.chain.errs, err)
					}
				}
				if e.bridge != nil {
					e.bridge.BroadcastCompile(true, "")
					e.broadcastGraphState()
				}
			}
		}
	}

	stats := e.chain.Stats()
	e.profile.Update = time.Since(frameStart)
	e.profile.Skipped = stats.LastSkipCount
	e.profile.Renders++
	return nil
}

// PullAudio is the function a host's audio callback invokes, matching
// the audio.Backend.Pull contract: it runs one AudioGraph block and
// copies the result into out as interleaved stereo, writing each mono
// sample to both channels (panning is out of scope).
func (e *Engine) PullAudio(out []float32, numFrames int) {
	block := e.audio.Process(e.chain, e.ctx, numFrames)
	n := 0
	if !e.state.Muted {
		for _, s := range block {
			if n+1 >= len(out) {
				break
			}
			out[n], out[n+1] = s, s
			n += 2
		}
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Close tears down the engine: stops hot-reload watching and cancels
// the session's done context, unblocking any in-flight asset fetch.
func (e *Engine) Close() {
	if e.bridge != nil {
		e.bridge.Close()
	}
	if e.reload != nil {
		e.reload.Close()
	}
	e.chain.Cleanup()
	e.cancel()
}
