package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/cmd/bayboard/ui"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/board"
)

var (
	boardBoardPath string
	boardFrom      string
)

// boardCmd opens the interactive board view.
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive bay schedule board",
	Long: `Opens a terminal board view of the bay schedule. Arrow keys drag the
selected bar in slot-width pixel steps through the same pixel-to-date
mapper the drop path uses; enter commits the drop, esc cancels, w
writes the board file.`,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&boardBoardPath, "board", "board.yaml", "Board file path")
	boardCmd.Flags().StringVar(&boardFrom, "from", "", "Viewport start date yyyy-MM-dd")
}

func runBoard(cmd *cobra.Command, args []string) error {
	b, err := board.Load(boardBoardPath)
	if err != nil {
		return err
	}
	from, err := viewportStart(b, boardFrom)
	if err != nil {
		return err
	}

	m, err := ui.NewBoardModel(boardBoardPath, b, effectiveView(), from)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("board view failed: %w", err)
	}
	return nil
}
