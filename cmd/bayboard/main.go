package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/config"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	viewFlag   string

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bayboard",
	Short: "bayboard - bay schedule positioning engine",
	Long: `bayboard computes the geometry of a manufacturing bay schedule board.

It partitions project bars into exact-fit phase segments (fabrication,
paint, production, IT, NTC, QC), maps pixel positions to calendar dates
for drag and resize gestures, and resolves which bay row a drop lands
in. Board state lives in a YAML file; every command is a pure
computation over it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Verbose = true
		}
		if err := logging.Initialize(cfg.Logging.Verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bayboard.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&viewFlag, "view", "", "View mode: day, week, or month (default from config)")

	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(boardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
