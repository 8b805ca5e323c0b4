package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/cmd/bayboard/ui"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/board"
)

var (
	replayBoardPath string
	replayTracePath string
	replayWrite     bool
	replayJSON      bool
)

// replayCmd runs a recorded gesture trace against a board.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a drag/resize gesture trace against a board",
	Long: `Runs a recorded sequence of drag gestures (begin, move, drop, cancel,
resize-start, resize-end) through the drop resolution chain and the
row resolver, committing the results to the in-memory board. Failed
drops abort only themselves, as in the live UI.

With --write, the mutated board is written back to the board file.

Example:
  bayboard replay --board board.yaml --trace moves.yaml --write`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayBoardPath, "board", "board.yaml", "Board file path")
	replayCmd.Flags().StringVar(&replayTracePath, "trace", "", "Gesture trace file (required)")
	replayCmd.Flags().BoolVar(&replayWrite, "write", false, "Write the mutated board back to the board file")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Emit JSON instead of a table")
	replayCmd.MarkFlagRequired("trace")
}

func runReplay(cmd *cobra.Command, args []string) error {
	b, err := board.Load(replayBoardPath)
	if err != nil {
		return err
	}
	tr, err := board.LoadTrace(replayTracePath)
	if err != nil {
		return err
	}

	changes, err := board.Replay(b, tr)
	if err != nil {
		return err
	}

	if replayJSON {
		if err := emitJSON(cmd, changes); err != nil {
			return err
		}
	} else {
		table := ui.NewTable("Committed changes", "Project", "Action", "Date", "Source", "Bay", "Row")
		for _, c := range changes {
			table.AddRow(c.Project, c.Action, c.Date, string(c.Source),
				strconv.Itoa(c.BayID), strconv.Itoa(c.Row))
		}
		fmt.Fprint(cmd.OutOrStdout(), table.View(ui.DefaultStyles()))
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d events committed\n", len(changes), len(tr.Events))
	}

	if replayWrite {
		if err := b.Save(replayBoardPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "board written to %s\n", replayBoardPath)
	}
	return nil
}
