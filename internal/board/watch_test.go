package board

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/bay"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

func mustRow(t *testing.T, bayID, row int) bay.RowAssignment {
	t.Helper()
	ra, err := bay.ResolveRow(bayID, row, bay.DefaultRowCount)
	require.NoError(t, err)
	return ra
}

func TestWatcher_RecomputesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	b := testBoard()
	require.NoError(t, b.Save(path))

	layouts := make(chan []BarLayout, 4)
	w, err := NewWatcher(path, timeline.ViewWeek,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		func(_ *Board, bars []BarLayout) { layouts <- bars })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Rewrite the file with one schedule moved.
	require.NoError(t, b.MoveSchedule(0, time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		mustRow(t, 2, 1)))
	require.NoError(t, b.Save(path))

	select {
	case bars := <-layouts:
		require.Len(t, bars, 2)
		require.Equal(t, 2, bars[0].BayID)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never recomputed layout")
	}
}

func TestWatcher_DoubleStartRejected(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, testBoard().Save(path))

	w, err := NewWatcher(path, timeline.ViewWeek, time.Now(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	require.Error(t, w.Start(ctx))
	w.Stop()
}
