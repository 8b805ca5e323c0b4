package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/board"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
)

var (
	watchBoardPath string
	watchFrom      string
)

// watchCmd recomputes the layout whenever the board file changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a board file and recompute layout on change",
	Long: `Watches the board file and recomputes the full bar geometry once per
change. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchBoardPath, "board", "board.yaml", "Board file path")
	watchCmd.Flags().StringVar(&watchFrom, "from", "", "Viewport start date yyyy-MM-dd")
}

func runWatch(cmd *cobra.Command, args []string) error {
	b, err := board.Load(watchBoardPath)
	if err != nil {
		return err
	}
	from, err := viewportStart(b, watchFrom)
	if err != nil {
		return err
	}
	mode := effectiveView()
	log := logging.L(logging.CategoryWatch)

	w, err := board.NewWatcher(watchBoardPath, mode, from, func(_ *board.Board, bars []board.BarLayout) {
		for _, bar := range bars {
			log.Info("bar",
				zap.String("project", bar.ProjectNumber),
				zap.Int("bay", bar.BayID),
				zap.Int("row", bar.RowIndex),
				zap.Float64("left", bar.Left),
				zap.Int("width", bar.Width),
				zap.Bool("anchored", bar.Anchored))
		}
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received shutdown signal")
		cancel()
	}()

	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (%s view, from %s), ctrl+c to stop\n",
		watchBoardPath, mode, from.Format("2006-01-02"))

	<-ctx.Done()
	w.Stop()
	return nil
}
