package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hwidmann/rootline/pkg/cache"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "rootline" {
		t.Errorf("Use = %q, want rootline", root.Use)
	}

	want := []string{"layout", "render", "serve", "cache", "sample", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner(true) error: %v", err)
	}
	defer runner.Close()

	if runner.Cache == nil {
		t.Error("runner should always have a cache backend")
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	store, err := newCache(ctx, BackendNone, "")
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want cache.NullCache", store)
	}

	store, err = newCache(ctx, BackendMemory, "")
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := store.(*cache.MemoryCache); !ok {
		t.Errorf("memory backend = %T, want *cache.MemoryCache", store)
	}
	store.Close()

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	store, err = newCache(ctx, BackendFile, "")
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("file backend = %T, want *cache.FileCache", store)
	}

	if _, err := newCache(ctx, "etcd", ""); err == nil {
		t.Error("unknown backend should error")
	}
}

func TestServeCommandCacheFlags(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	cmd := c.serveCommand()

	backend := cmd.Flags().Lookup("cache-backend")
	if backend == nil {
		t.Fatal("serve should expose --cache-backend")
	}
	if backend.DefValue != BackendMemory {
		t.Errorf("default cache backend = %q, want %q", backend.DefValue, BackendMemory)
	}
	if cmd.Flags().Lookup("redis-addr") == nil {
		t.Error("serve should expose --redis-addr")
	}
}

func TestApplyConfigFileEmptyPath(t *testing.T) {
	if err := applyConfigFile("", nil); err != nil {
		t.Errorf("empty config path should be a no-op: %v", err)
	}
}
