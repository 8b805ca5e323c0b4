package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/cmd/bayboard/ui"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/board"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

var (
	layoutBoardPath string
	layoutFrom      string
	layoutJSON      bool
)

// layoutCmd computes the full board geometry.
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Compute bar geometry for every schedule on a board",
	Long: `Loads a board file and computes each schedule bar's pixel geometry:
position, width, and exact-fit phase segments. Anchored schedules
(those with a fixed production start date) report their extended box.

Example:
  bayboard layout --board board.yaml --view week --from 2025-06-02`,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&layoutBoardPath, "board", "board.yaml", "Board file path")
	layoutCmd.Flags().StringVar(&layoutFrom, "from", "", "Viewport start date yyyy-MM-dd (default: earliest schedule start)")
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "Emit JSON instead of a table")
}

// effectiveView resolves the view mode from --view or config.
func effectiveView() timeline.ViewMode {
	if viewFlag != "" {
		return timeline.ViewMode(viewFlag)
	}
	return cfg.DefaultView
}

// viewportStart resolves the viewport origin: the --from flag, or the
// earliest schedule start on the board.
func viewportStart(b *board.Board, flag string) (time.Time, error) {
	if flag != "" {
		t, err := time.Parse(timeline.ISODate, flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad --from date %q: %w", flag, err)
		}
		return t, nil
	}
	if len(b.Schedules) == 0 {
		return timeline.Midnight(time.Now()), nil
	}
	earliest := b.Schedules[0].Start.Time
	for _, s := range b.Schedules[1:] {
		if s.Start.Before(earliest) {
			earliest = s.Start.Time
		}
	}
	return earliest, nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	b, err := board.Load(layoutBoardPath)
	if err != nil {
		return err
	}
	from, err := viewportStart(b, layoutFrom)
	if err != nil {
		return err
	}
	mode := effectiveView()

	bars, err := board.ComputeLayout(cmd.Context(), b, mode, from)
	if err != nil {
		return err
	}
	if layoutJSON {
		return emitJSON(cmd, bars)
	}

	table := ui.NewTable(
		fmt.Sprintf("Board layout (%s view, from %s)", mode, from.Format(timeline.ISODate)),
		"Project", "Bay", "Row", "Start", "End", "Left", "Width", "Anchored")
	for _, bar := range bars {
		table.AddRow(
			bar.ProjectNumber,
			strconv.Itoa(bar.BayID),
			strconv.Itoa(bar.RowIndex),
			bar.Start.Format(timeline.ISODate),
			bar.End.Format(timeline.ISODate),
			fmt.Sprintf("%.1f", bar.Left),
			strconv.Itoa(bar.Width),
			strconv.FormatBool(bar.Anchored),
		)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.DefaultStyles()))
	return nil
}
