package board

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/bay"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/drag"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// Trace is a recorded sequence of drag/resize gestures to run against
// a board: the same control flow the live UI drives, replayed from a
// file.
type Trace struct {
	View   timeline.ViewMode `yaml:"view"`
	From   Date              `yaml:"from"`
	To     Date              `yaml:"to"`
	Events []TraceEvent      `yaml:"events"`
}

// TraceEvent is one step of a gesture.
//
// Actions: begin (open a drag, optional date), move (pointer tick with
// the date under the pointer), drop (commit with candidate sources and
// a target bay/row), cancel, resize-start and resize-end (edge drags
// by a pixel delta).
type TraceEvent struct {
	Action  string `yaml:"action"`
	Project string `yaml:"project"` // project number

	// Candidate date sources for drop resolution.
	Date     string `yaml:"date,omitempty"`     // date under the pointer (begin/move)
	Element  string `yaml:"element,omitempty"`  // drop target's own date
	Ancestor string `yaml:"ancestor,omitempty"` // nearest ancestor date
	Document string `yaml:"document,omitempty"` // page-level fallback

	// Drop target cell.
	Bay  int `yaml:"bay,omitempty"`
	Row  int `yaml:"row,omitempty"`
	Week int `yaml:"week,omitempty"`

	// DeltaPx is the edge movement for resize events.
	DeltaPx float64 `yaml:"deltaPx,omitempty"`
}

// Change records one committed schedule mutation from a replay.
type Change struct {
	Project string      `json:"project"`
	Action  string      `json:"action"`
	Date    string      `json:"date"`
	Source  drag.Source `json:"source,omitempty"`
	BayID   int         `json:"bayId"`
	Row     int         `json:"row"`
}

// LoadTrace reads a gesture trace file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: read trace %s: %w", path, err)
	}
	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("board: parse trace %s: %w", path, err)
	}
	if tr.View == "" {
		tr.View = timeline.ViewWeek
	}
	return &tr, nil
}

// Replay runs a gesture trace against the board, mutating it in place
// and returning the committed changes. A failed drop resolution aborts
// that drop only and is logged; resize failures and malformed events
// abort the whole replay.
func Replay(b *Board, tr *Trace) ([]Change, error) {
	log := logging.L(logging.CategoryDrag)
	slots := timeline.GenerateSlots(tr.From.Time, tr.To.Time, tr.View)
	ppd := tr.View.PixelsPerDay()

	gesture := &drag.Context{}
	var changes []Change

	for i, ev := range tr.Events {
		switch ev.Action {
		case "begin":
			gesture.End() // a stale gesture must not leak into this one
			gesture.Begin(ev.Date)
			log.Debug("gesture begin", zap.String("project", ev.Project), zap.String("date", ev.Date))

		case "move":
			if ev.Date != "" {
				gesture.Update(ev.Date)
			}

		case "cancel":
			gesture.End()

		case "drop":
			change, err := applyDrop(b, gesture, ev, slots)
			gesture.End()
			if err != nil {
				log.Warn("drop aborted",
					zap.String("project", ev.Project),
					zap.Error(err))
				continue
			}
			changes = append(changes, change)

		case "resize-start", "resize-end":
			change, err := applyResize(b, ev, ppd)
			if err != nil {
				return nil, fmt.Errorf("board: trace event %d: %w", i, err)
			}
			changes = append(changes, change)

		default:
			return nil, fmt.Errorf("board: trace event %d: unknown action %q", i, ev.Action)
		}
	}
	return changes, nil
}

func applyDrop(b *Board, gesture *drag.Context, ev TraceEvent, slots []timeline.Slot) (Change, error) {
	p, ok := b.ProjectByNumber(ev.Project)
	if !ok {
		return Change{}, fmt.Errorf("unknown project %q", ev.Project)
	}
	idx := b.ScheduleFor(p.ID)
	if idx < 0 {
		return Change{}, fmt.Errorf("project %q has no schedule", ev.Project)
	}
	by, ok := b.Bay(ev.Bay)
	if !ok {
		return Change{}, fmt.Errorf("unknown bay %d", ev.Bay)
	}

	res, err := drag.ResolveDropDate(drag.DropInput{
		ElementDate:  ev.Element,
		AncestorDate: ev.Ancestor,
		Gesture:      gesture,
		DocumentDate: ev.Document,
		Slots:        slots,
	})
	if err != nil {
		return Change{}, err
	}

	ra, err := bay.ResolveRow(ev.Bay, ev.Row, by.Rows())
	if err != nil {
		return Change{}, err
	}
	ra.WeekIndex = ev.Week

	if err := b.MoveSchedule(idx, res.Date, ra); err != nil {
		return Change{}, err
	}
	return Change{
		Project: ev.Project,
		Action:  "drop",
		Date:    res.ExactDateStr,
		Source:  res.Source,
		BayID:   ra.BayID,
		Row:     ra.RowIndex,
	}, nil
}

func applyResize(b *Board, ev TraceEvent, ppd float64) (Change, error) {
	p, ok := b.ProjectByNumber(ev.Project)
	if !ok {
		return Change{}, fmt.Errorf("unknown project %q", ev.Project)
	}
	idx := b.ScheduleFor(p.ID)
	if idx < 0 {
		return Change{}, fmt.Errorf("project %q has no schedule", ev.Project)
	}
	s := b.Schedules[idx]

	var d time.Time
	var err error
	if ev.Action == "resize-start" {
		// The delta is relative to the edge's initial position, so the
		// initial pixel itself cancels out of the calculation.
		d, err = timeline.ResizeStart(ev.DeltaPx, 0, s.Start.Time, ppd)
		if err != nil {
			return Change{}, err
		}
		if err := b.SetScheduleStart(idx, d); err != nil {
			return Change{}, err
		}
	} else {
		d, err = timeline.ResizeEnd(ev.DeltaPx, 0, s.End.Time, ppd)
		if err != nil {
			return Change{}, err
		}
		if err := b.SetScheduleEnd(idx, d); err != nil {
			return Change{}, err
		}
	}
	return Change{
		Project: ev.Project,
		Action:  ev.Action,
		Date:    d.Format(timeline.ISODate),
		BayID:   s.BayID,
		Row:     s.RowIndex,
	}, nil
}
