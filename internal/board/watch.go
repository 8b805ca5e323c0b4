package board

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// Watcher reloads a board file when it changes on disk and recomputes
// the full layout once per change. Layout is event-driven, one pass
// per mutation, never a recurring polling loop.
type Watcher struct {
	path     string
	mode     timeline.ViewMode
	from     time.Time
	onLayout func(*Board, []BarLayout)

	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher builds a watcher for the given board file. onLayout is
// invoked with the reloaded board and its recomputed layout after
// every (debounced) change.
func NewWatcher(path string, mode timeline.ViewMode, from time.Time, onLayout func(*Board, []BarLayout)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("board: create watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on
	// save and the watch would die with the old inode.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("board: watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     path,
		mode:     mode,
		from:     from,
		onLayout: onLayout,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Start begins watching until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("board: watcher already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// Stop halts the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.L(logging.CategoryWatch)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire bursts of events per save; collapse them.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", zap.Error(err))
		case <-timerCh:
			timerCh = nil
			w.recompute(ctx, log)
		}
	}
}

func (w *Watcher) recompute(ctx context.Context, log *zap.Logger) {
	b, err := Load(w.path)
	if err != nil {
		log.Warn("board reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	bars, err := ComputeLayout(ctx, b, w.mode, w.from)
	if err != nil {
		log.Warn("layout recompute failed", zap.Error(err))
		return
	}
	log.Info("board changed, layout recomputed",
		zap.String("path", w.path), zap.Int("bars", len(bars)))
	if w.onLayout != nil {
		w.onLayout(b, bars)
	}
}
