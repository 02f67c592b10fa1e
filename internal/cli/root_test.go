package cli

import (
	"io"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"meld", "snip", "merge", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandUse(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("logger level = %v, want %v", c.Logger.GetLevel(), LogDebug)
	}
}

func TestNewMeldCacheDisabled(t *testing.T) {
	store := newMeldCache(true)
	defer store.Close()

	if store == nil {
		t.Fatal("newMeldCache(true) returned nil")
	}
}
