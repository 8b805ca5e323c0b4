package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/drag"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

func testTrace(events ...TraceEvent) *Trace {
	return &Trace{
		View:   timeline.ViewWeek,
		From:   day(2025, 6, 2),
		To:     day(2025, 8, 31),
		Events: events,
	}
}

func TestReplay_DropUsesElementDate(t *testing.T) {
	b := testBoard()

	changes, err := Replay(b, testTrace(
		TraceEvent{Action: "begin", Project: "804501", Date: "2025-06-09"},
		TraceEvent{Action: "move", Project: "804501", Date: "2025-06-23"},
		TraceEvent{Action: "drop", Project: "804501", Element: "2025-07-07", Bay: 2, Row: 2},
	))
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, drag.SourceElement, changes[0].Source)
	assert.Equal(t, "2025-07-07", changes[0].Date)
	assert.Equal(t, 2, changes[0].BayID)

	s := b.Schedules[0]
	assert.Equal(t, "2025-07-07", s.Start.Format("2006-01-02"))
	assert.Equal(t, 2, s.BayID)
	assert.Equal(t, 2, s.RowIndex)
}

func TestReplay_DropFallsBackToGestureCache(t *testing.T) {
	b := testBoard()

	changes, err := Replay(b, testTrace(
		TraceEvent{Action: "begin", Project: "804501", Date: "2025-06-09"},
		TraceEvent{Action: "move", Project: "804501", Date: "2025-06-30"},
		// Drop target carries no date of its own.
		TraceEvent{Action: "drop", Project: "804501", Bay: 1, Row: 0},
	))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, drag.SourceCache, changes[0].Source)
	assert.Equal(t, "2025-06-30", changes[0].Date)
}

func TestReplay_CancelClearsGesture(t *testing.T) {
	b := testBoard()

	// After a cancel, a bare drop with no sources resolves through the
	// first visible slot, not the stale cache.
	changes, err := Replay(b, testTrace(
		TraceEvent{Action: "begin", Project: "804501", Date: "2025-06-09"},
		TraceEvent{Action: "cancel", Project: "804501"},
		TraceEvent{Action: "begin", Project: "804501"},
		TraceEvent{Action: "drop", Project: "804501", Bay: 1, Row: 0},
	))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, drag.SourceFallback, changes[0].Source)
	assert.Equal(t, "2025-06-02", changes[0].Date)
}

func TestReplay_FailedDropAbortsOnlyThatDrop(t *testing.T) {
	b := testBoard()
	orig := b.Schedules[0]

	// Row 9 is outside bay 2's four rows; the drop aborts and the
	// schedule stays put.
	changes, err := Replay(b, testTrace(
		TraceEvent{Action: "begin", Project: "804501", Date: "2025-06-09"},
		TraceEvent{Action: "drop", Project: "804501", Element: "2025-07-07", Bay: 2, Row: 9},
	))
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, orig, b.Schedules[0])
}

func TestReplay_Resize(t *testing.T) {
	b := testBoard()

	// Week view is 12 px/day: -24px on the left edge extends the start
	// two days back; +36px on the right edge extends the end three
	// days out.
	changes, err := Replay(b, testTrace(
		TraceEvent{Action: "resize-start", Project: "804501", DeltaPx: -24},
		TraceEvent{Action: "resize-end", Project: "804501", DeltaPx: 36},
	))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, "2025-05-31", b.Schedules[0].Start.Format("2006-01-02"))
	assert.Equal(t, "2025-07-02", b.Schedules[0].End.Format("2006-01-02"))
}

func TestReplay_UnknownAction(t *testing.T) {
	_, err := Replay(testBoard(), testTrace(TraceEvent{Action: "wiggle", Project: "804501"}))
	assert.Error(t, err)
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	data := `view: week
from: 2025-06-02
to: 2025-08-31
events:
  - action: begin
    project: "804501"
    date: 2025-06-09
  - action: drop
    project: "804501"
    element: 2025-07-07
    bay: 2
    row: 1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	tr, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, timeline.ViewWeek, tr.View)
	require.Len(t, tr.Events, 2)
	assert.Equal(t, "2025-07-07", tr.Events[1].Element)
}
