// Package board is the integration layer around the positioning
// engine: the in-memory model of bays, projects, and schedule bars,
// loaded from and saved to a YAML board file. Drops and resizes
// resolved by the engine are committed here; durable persistence
// beyond the board file stays with the caller.
package board

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/bay"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// ID is a project identifier, stored in canonical UUID string form in
// board files. yaml.v3 has no TextUnmarshaler support, so the yaml
// hooks live here.
type ID struct {
	uuid.UUID
}

// NewID returns a fresh random project ID.
func NewID() ID {
	return ID{uuid.New()}
}

// MarshalYAML encodes the canonical string form.
func (id ID) MarshalYAML() (interface{}, error) {
	return id.String(), nil
}

// UnmarshalYAML decodes a UUID string scalar.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	u, err := uuid.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("board: bad project id %q: %w", value.Value, err)
	}
	id.UUID = u
	return nil
}

// Date is a calendar day stored as yyyy-MM-dd in board files.
type Date struct {
	time.Time
}

// DateOf builds a Date from any time, truncated to midnight UTC.
func DateOf(t time.Time) Date {
	return Date{timeline.Midnight(t)}
}

// MarshalYAML encodes the date as yyyy-MM-dd.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(timeline.ISODate), nil
}

// UnmarshalYAML decodes a yyyy-MM-dd scalar.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(timeline.ISODate, value.Value)
	if err != nil {
		return fmt.Errorf("board: bad date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// Project is a manufacturing project that can be scheduled into a bay.
type Project struct {
	ID     ID     `yaml:"id" json:"id"`
	Number string `yaml:"number" json:"number"`
	Name   string `yaml:"name" json:"name"`

	// Weights overrides the phase percentages for this project.
	// Nil means the board default.
	Weights *phase.Weights `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// Schedule places one project into a bay row over a date range.
type Schedule struct {
	ProjectID ID   `yaml:"projectId" json:"projectId"`
	BayID     int  `yaml:"bayId" json:"bayId"`
	RowIndex  int  `yaml:"rowIndex" json:"rowIndex"`
	Start     Date `yaml:"start" json:"start"`
	End       Date `yaml:"end" json:"end"`

	// ProductionStart pins the production phase to a fixed date.
	// When set, the bar renders in anchored mode: fab and paint
	// extend to the left of this date.
	ProductionStart *Date `yaml:"productionStart,omitempty" json:"productionStart,omitempty"`
}

// Days returns the inclusive day count of the schedule.
func (s Schedule) Days() int {
	return int(s.End.Sub(s.Start.Time).Hours()/24) + 1
}

// Board is the full bay schedule model.
type Board struct {
	Bays      []bay.Bay  `yaml:"bays"`
	Projects  []Project  `yaml:"projects"`
	Schedules []Schedule `yaml:"schedules"`
}

// Load reads a board file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: read %s: %w", path, err)
	}
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("board: parse %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	logging.L(logging.CategoryBoard).Debug("board loaded",
		zap.String("path", path),
		zap.Int("bays", len(b.Bays)),
		zap.Int("schedules", len(b.Schedules)))
	return &b, nil
}

// Save writes the board file.
func (b *Board) Save(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("board: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("board: write %s: %w", path, err)
	}
	return nil
}

// Validate checks referential integrity and date sanity.
func (b *Board) Validate() error {
	bays := make(map[int]bay.Bay, len(b.Bays))
	for _, by := range b.Bays {
		if _, dup := bays[by.ID]; dup {
			return fmt.Errorf("board: duplicate bay id %d", by.ID)
		}
		bays[by.ID] = by
	}
	projects := make(map[ID]bool, len(b.Projects))
	for _, p := range b.Projects {
		projects[p.ID] = true
	}
	for i, s := range b.Schedules {
		by, ok := bays[s.BayID]
		if !ok {
			return fmt.Errorf("board: schedule %d references unknown bay %d", i, s.BayID)
		}
		if !projects[s.ProjectID] {
			return fmt.Errorf("board: schedule %d references unknown project %s", i, s.ProjectID)
		}
		if s.RowIndex < 0 || s.RowIndex >= by.Rows() {
			return fmt.Errorf("board: schedule %d row %d outside bay %d rows [0,%d)",
				i, s.RowIndex, s.BayID, by.Rows())
		}
		if s.End.Before(s.Start.Time) {
			return fmt.Errorf("board: schedule %d ends before it starts", i)
		}
	}
	return nil
}

// Bay returns a bay definition by id.
func (b *Board) Bay(id int) (bay.Bay, bool) {
	for _, by := range b.Bays {
		if by.ID == id {
			return by, true
		}
	}
	return bay.Bay{}, false
}

// Project returns a project by id.
func (b *Board) Project(id ID) (Project, bool) {
	for _, p := range b.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectByNumber returns a project by its human-facing number.
func (b *Board) ProjectByNumber(number string) (Project, bool) {
	for _, p := range b.Projects {
		if p.Number == number {
			return p, true
		}
	}
	return Project{}, false
}

// ScheduleFor returns the index of the schedule for a project, or -1.
func (b *Board) ScheduleFor(projectID ID) int {
	for i, s := range b.Schedules {
		if s.ProjectID == projectID {
			return i
		}
	}
	return -1
}

// WeightsFor returns the effective phase weights for a project.
func (b *Board) WeightsFor(p Project) phase.Weights {
	if p.Weights != nil && !p.Weights.IsZero() {
		return *p.Weights
	}
	return phase.DefaultWeights()
}

// MoveSchedule commits a completed drop: the schedule shifts to start
// on the resolved date, keeping its duration, and lands in the
// resolved bay row. The board file is not written; the caller owns
// that.
func (b *Board) MoveSchedule(idx int, newStart time.Time, ra bay.RowAssignment) error {
	if idx < 0 || idx >= len(b.Schedules) {
		return fmt.Errorf("board: no schedule at index %d", idx)
	}
	by, ok := b.Bay(ra.BayID)
	if !ok {
		return fmt.Errorf("board: unknown bay %d", ra.BayID)
	}
	if ra.RowIndex < 0 || ra.RowIndex >= by.Rows() {
		return fmt.Errorf("%w: index %d, rows %d", bay.ErrInvalidRowIndex, ra.RowIndex, by.Rows())
	}

	s := &b.Schedules[idx]
	days := s.Days()
	s.BayID = ra.BayID
	s.RowIndex = ra.RowIndex
	s.Start = DateOf(newStart)
	s.End = DateOf(newStart.AddDate(0, 0, days-1))
	if s.ProductionStart != nil && s.ProductionStart.Before(s.Start.Time) {
		// The anchor cannot sit before the new start; drop it and let
		// the bar render unanchored.
		s.ProductionStart = nil
	}
	return nil
}

// SetScheduleStart commits a left-edge resize.
func (b *Board) SetScheduleStart(idx int, newStart time.Time) error {
	if idx < 0 || idx >= len(b.Schedules) {
		return fmt.Errorf("board: no schedule at index %d", idx)
	}
	s := &b.Schedules[idx]
	d := DateOf(newStart)
	if s.End.Before(d.Time) {
		return fmt.Errorf("board: start %s after end %s", d.Format(timeline.ISODate), s.End.Format(timeline.ISODate))
	}
	s.Start = d
	return nil
}

// SetScheduleEnd commits a right-edge resize.
func (b *Board) SetScheduleEnd(idx int, newEnd time.Time) error {
	if idx < 0 || idx >= len(b.Schedules) {
		return fmt.Errorf("board: no schedule at index %d", idx)
	}
	s := &b.Schedules[idx]
	d := DateOf(newEnd)
	if d.Before(s.Start.Time) {
		return fmt.Errorf("board: end %s before start %s", d.Format(timeline.ISODate), s.Start.Format(timeline.ISODate))
	}
	s.End = d
	return nil
}
