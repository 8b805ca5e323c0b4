package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
)

func TestTable_View(t *testing.T) {
	tbl := NewTable("Phase partition", "Phase", "Width")
	tbl.AddRow("fab", "234")
	tbl.AddRow("production", "521")

	out := tbl.View(DefaultStyles())
	assert.Contains(t, out, "Phase partition")
	assert.Contains(t, out, "production")
	assert.Contains(t, out, "521")

	// Header, separator, and one line per row.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
}

func TestTable_EmptyRendersNothing(t *testing.T) {
	tbl := NewTable("Empty", "A", "B")
	assert.Empty(t, tbl.View(DefaultStyles()))
}

func TestPhaseColor(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range phase.Order {
		c := string(PhaseColor(p))
		assert.False(t, seen[c], "phase %s reuses a color", p)
		seen[c] = true
	}
}
