package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/cmd/bayboard/ui"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
)

var (
	partitionWidth   int
	partitionWeights string
	partitionAnchor  bool
	partitionJSON    bool
)

// partitionCmd computes phase segment widths for a single bar.
var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partition a bar width into exact-fit phase segments",
	Long: `Splits a total pixel width into six phase segments whose widths sum
exactly to the total. Weights are percentages in phase order
fab,paint,production,it,ntc,qc and need not sum to 100.

Example:
  bayboard partition --width 1000 --weights 27,7,60,7,7,7
  bayboard partition --width 1000 --anchor`,
	RunE: runPartition,
}

func init() {
	partitionCmd.Flags().IntVar(&partitionWidth, "width", 0, "Total bar width in pixels (required)")
	partitionCmd.Flags().StringVar(&partitionWeights, "weights", "", "Six comma-separated phase percentages (default: built-in weights)")
	partitionCmd.Flags().BoolVar(&partitionAnchor, "anchor", false, "Anchor the production phase to pixel 0")
	partitionCmd.Flags().BoolVar(&partitionJSON, "json", false, "Emit JSON instead of a table")
	partitionCmd.MarkFlagRequired("width")
}

func parseWeights(s string) (phase.Weights, error) {
	if s == "" {
		return phase.DefaultWeights(), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return phase.Weights{}, fmt.Errorf("expected 6 weights, got %d", len(parts))
	}
	vals := make([]float64, 6)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return phase.Weights{}, fmt.Errorf("bad weight %q: %w", p, err)
		}
		vals[i] = v
	}
	return phase.Weights{
		Fab: vals[0], Paint: vals[1], Production: vals[2],
		IT: vals[3], NTC: vals[4], QC: vals[5],
	}, nil
}

func runPartition(cmd *cobra.Command, args []string) error {
	weights, err := parseWeights(partitionWeights)
	if err != nil {
		return err
	}

	if partitionAnchor {
		ab, err := phase.AnchorToProduction(partitionWidth, weights)
		if err != nil {
			return err
		}
		if partitionJSON {
			return emitJSON(cmd, ab)
		}
		printSegments(cmd, ab.Segments(), ab.Widths)
		fmt.Fprintf(cmd.OutOrStdout(), "barLeftOffset=%d barActualWidth=%d prodStart=%d\n",
			ab.BarLeftOffset, ab.BarActualWidth, ab.ProdStartPosition)
		return nil
	}

	pw, err := phase.Partition(partitionWidth, weights)
	if err != nil {
		return err
	}
	if partitionJSON {
		return emitJSON(cmd, pw)
	}
	printSegments(cmd, pw.Segments(), pw)
	return nil
}

func printSegments(cmd *cobra.Command, segs []phase.Segment, pw phase.Widths) {
	table := ui.NewTable("Phase partition", "Phase", "Left", "Width")
	for _, s := range segs {
		table.AddRow(string(s.Phase), strconv.Itoa(s.Left), strconv.Itoa(s.Width))
	}
	table.AddRow("total", "", strconv.Itoa(pw.TotalWidth))
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.DefaultStyles()))
	fmt.Fprintf(cmd.OutOrStdout(), "exactMatch=%v\n", pw.ExactMatch)
}

func emitJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
