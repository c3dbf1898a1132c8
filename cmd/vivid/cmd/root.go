// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package cmd implements the vivid CLI commands, following the
// cobra+viper root-command layout the jmylchreest-tvarr CLI uses:
// persistent flags bound to viper keys in init(), environment
// variables layered over them via viper.AutomaticEnv, and the actual
// work done in a RunE closure that returns a plain error.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vividgraph/vivid"
	"github.com/vividgraph/vivid/audio"
	"github.com/vividgraph/vivid/editor"
	"github.com/vividgraph/vivid/render"
)

var (
	assetPaths []string
	editorPort int

	// exitCode is set by runVivid before returning, since cobra's RunE
	// only carries an error, not spec.md §6's three-way exit code.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "vivid <project-dir>",
	Short: "Run a Vivid operator-graph project",
	Long: `vivid loads project-dir/chain.go as a graph-builder source and runs
it as a headless session: no window or audio device of its own, since
binding to a concrete display or sound card is left to an embedding
host (see the render and audio backend interfaces).`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runVivid(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&assetPaths, "asset-path", nil, "additional asset search root (repeatable)")
	rootCmd.PersistentFlags().IntVar(&editorPort, "editor-port", 0, "editor bridge TCP port (0 = use project default)")

	mustBindPFlag("asset_path", rootCmd.PersistentFlags().Lookup("asset-path"))
	mustBindPFlag("editor_port", rootCmd.PersistentFlags().Lookup("editor-port"))

	viper.SetEnvPrefix("VIVID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %q to key %q: %v", flag.Name, key, err))
	}
}

// Execute runs the root command and returns the process exit code
// spec.md §6 defines, alongside any error that should be printed.
func Execute() (int, error) {
	exitCode = 0
	if err := rootCmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = 1
		}
		return exitCode, err
	}
	return exitCode, nil
}

func runVivid(projectDir string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	chainPath := filepath.Join(projectDir, "chain.go")
	if _, err := os.Stat(chainPath); err != nil {
		exitCode = 1
		return fmt.Errorf("locating graph-builder source: %w", err)
	}

	var attrs []vivid.Attr
	attrs = append(attrs, vivid.Title(filepath.Base(projectDir)))
	attrs = append(attrs, vivid.AssetPath(projectDir))
	for _, p := range viper.GetStringSlice("asset_path") {
		attrs = append(attrs, vivid.AssetPath(p))
	}
	if env := os.Getenv("VIVID_ASSET_PATH"); env != "" {
		for _, p := range strings.Split(env, string(os.PathListSeparator)) {
			attrs = append(attrs, vivid.AssetPath(p))
		}
	}
	if sessionPath := filepath.Join(projectDir, "session.yaml"); fileExists(sessionPath) {
		fileAttrs, err := vivid.LoadSessionFile(sessionPath)
		if err != nil {
			exitCode = 1
			return fmt.Errorf("reading session file: %w", err)
		}
		attrs = append(attrs, fileAttrs...)
	}
	if port, ok := resolveEditorPort(); ok {
		attrs = append(attrs, vivid.EditorPort(port))
	}

	builder := &fileGraphBuilder{path: chainPath}
	eng, err := vivid.New(&render.NullBackend{}, &audio.NoBackend{Rate: 48000, Block: 256}, builder, attrs...)
	if err != nil {
		exitCode = 1
		return fmt.Errorf("constructing engine: %w", err)
	}
	defer eng.Close()

	if err := eng.EnableHotReload(chainPath); err != nil {
		logger.Warn("hot reload disabled", "error", err)
	}
	if err := eng.EnableEditor(fmt.Sprintf(":%d", eng.EditorPort())); err != nil {
		logger.Warn("editor bridge disabled", "error", err)
	}

	if err := builder.loadOnce(); err != nil {
		exitCode = 1
		return fmt.Errorf("compiling %s: %w", chainPath, err)
	}
	if err := eng.Setup(); err != nil {
		exitCode = 1
		return fmt.Errorf("initial Setup: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return runLoop(ctx, eng, logger)
}

// runLoop drives the engine at a fixed tick rate until ctx is
// cancelled, recovering a panic from a single Run call into exit code
// 2 (spec.md §6) rather than crashing the process.
func runLoop(ctx context.Context, eng *vivid.Engine, logger *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			exitCode = 2
			err = fmt.Errorf("operator panic: %v", r)
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			frame++
			if runErr := eng.Run(now, vivid.Input{}, 1920, 1080); runErr != nil {
				logger.Error("frame failed", "frame", frame, "error", runErr)
			}
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func resolveEditorPort() (int, bool) {
	if editorPort != 0 {
		return editorPort, true
	}
	if v := viper.GetInt("editor_port"); v != 0 {
		return v, true
	}
	if env := os.Getenv("VIVID_EDITOR_PORT"); env != "" {
		if port, ok := editor.ParsePort(env); ok {
			return port, true
		}
	}
	return 0, false
}
