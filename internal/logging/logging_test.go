package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategoryLoggersAreNamed(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	L(CategoryDrag).Info("drop resolved")
	L(CategoryLayout).Debug("layout computed")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LoggerName != "drag" {
		t.Errorf("expected logger name drag, got %q", entries[0].LoggerName)
	}
	if entries[1].LoggerName != "layout" {
		t.Errorf("expected logger name layout, got %q", entries[1].LoggerName)
	}
}

func TestUninitializedLoggingIsSilentNoOp(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	L(CategoryBoot).Info("nothing to see")
	Sync()
}
