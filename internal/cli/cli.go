// Package cli implements the rootline command-line interface.
//
// This package provides commands for laying out family tree charts,
// rendering them to SVG and DOT, serving the HTTP API, and managing the
// local result cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute chart geometry from a tree file
//   - render: Generate SVG, JSON, or DOT outputs
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//   - sample: Write a generated sample tree for experimentation
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hwidmann/rootline/pkg/buildinfo"
	"github.com/hwidmann/rootline/pkg/cache"
	"github.com/hwidmann/rootline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rootline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "rootline",
		Short:        "Rootline lays out family trees as pedigree, fan, and timeline charts",
		Long:         `Rootline is a CLI tool for turning genealogical data files into deterministic chart layouts and rendered diagrams: pedigree node-link charts, radial fan charts, and life-event timelines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// Cache backends selectable with --cache-backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// newRunner creates a pipeline runner with the file-backed cache used
// by one-shot commands.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	backend := BackendFile
	if noCache {
		backend = BackendNone
	}
	return c.newRunnerWithBackend(context.Background(), backend, "")
}

// newRunnerWithBackend creates a pipeline runner over the named cache
// backend. redisAddr is only consulted for the redis backend.
func (c *CLI) newRunnerWithBackend(ctx context.Context, backend, redisAddr string) (*pipeline.Runner, error) {
	store, err := newCache(ctx, backend, redisAddr)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		return cache.NewMemoryCache(cache.TTLLayout, 10*time.Minute), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, redisAddr)
	case BackendFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (valid: file, memory, redis, none)", backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rootline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfigFile merges a TOML config file into opts if one was given.
// Explicit flag values take precedence over file values.
func applyConfigFile(path string, opts *pipeline.Options) error {
	if path == "" {
		return nil
	}
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return err
	}
	cfg.Apply(opts)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
