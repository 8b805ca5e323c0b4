// Package bay models manufacturing bays and resolves which sub-lane
// (row) of a multi-row bay a drop lands in.
package bay

import (
	"errors"
	"fmt"
)

// DefaultRowCount is the number of sub-lanes a bay is divided into
// when its definition does not say otherwise.
const DefaultRowCount = 20

// ErrInvalidRowIndex is returned for a subdivision index outside
// [0, rowCount).
var ErrInvalidRowIndex = errors.New("bay: subdivision index out of range")

// Bay is one manufacturing work area, rendered as a timeline row.
type Bay struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Team        string `yaml:"team,omitempty" json:"team,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// RowCount is the number of sub-lanes; 0 means DefaultRowCount.
	RowCount int `yaml:"rowCount,omitempty" json:"rowCount,omitempty"`
}

// Rows returns the effective sub-lane count.
func (b Bay) Rows() int {
	if b.RowCount <= 0 {
		return DefaultRowCount
	}
	return b.RowCount
}

// RowAssignment identifies one sub-lane cell in a bay. WeekIndex is
// filled in by the caller from the drop slot; ResolveRow only decides
// the row.
type RowAssignment struct {
	BayID     int `json:"bayId"`
	WeekIndex int `json:"weekIndex"`
	RowIndex  int `json:"rowIndex"`
}

// ResolveRow maps a 0-based subdivision index inside a bay's row grid
// to a RowAssignment. The mapping is exact and unconditional: the row
// the user drops into is the row recorded. There is no collision
// detection and no repositioning. The only validation is the index
// bound.
func ResolveRow(bayID, subdivisionIndex, rowCount int) (RowAssignment, error) {
	if subdivisionIndex < 0 || subdivisionIndex >= rowCount {
		return RowAssignment{}, fmt.Errorf("%w: index %d, rows %d",
			ErrInvalidRowIndex, subdivisionIndex, rowCount)
	}
	return RowAssignment{BayID: bayID, RowIndex: subdivisionIndex}, nil
}
