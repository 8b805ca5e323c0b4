// Package logging provides categorized structured logging for the bay
// schedule engine, built on zap. Each subsystem logs through a named
// child logger so board, drag, and watch output can be filtered apart.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names one logging subsystem.
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup and shutdown
	CategoryLayout Category = "layout" // Bar geometry computation
	CategoryDrag   Category = "drag"   // Gesture and drop resolution
	CategoryBoard  Category = "board"  // Board file load/save
	CategoryWatch  Category = "watch"  // File watcher
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Initialize builds the process logger. verbose enables debug level.
// Safe to call more than once; the newest configuration wins.
func Initialize(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// L returns the logger for a category.
func L(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// SetLogger replaces the process logger, mainly for tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
}
