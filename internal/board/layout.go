package board

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/logging"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// BarLayout is the rendered geometry of one schedule bar: its box in
// board coordinates plus the exact-fit phase segments inside it.
// Anchored bars carry the full anchored geometry; Left then refers to
// the rendered box, which extends BarLeftOffset pixels to the left of
// the production anchor date.
type BarLayout struct {
	ProjectID     ID              `json:"projectId"`
	ProjectNumber string          `json:"projectNumber"`
	BayID         int             `json:"bayId"`
	RowIndex      int             `json:"rowIndex"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	Left          float64         `json:"left"`
	Width         int             `json:"width"`
	Anchored      bool            `json:"anchored"`
	Widths        phase.Widths    `json:"widths"`
	Segments      []phase.Segment `json:"segments"`
	Spans         []phase.Span    `json:"spans"`

	// BarLeftOffset and BarActualWidth are zero unless Anchored.
	BarLeftOffset  int `json:"barLeftOffset,omitempty"`
	BarActualWidth int `json:"barActualWidth,omitempty"`
}

// ComputeLayout computes bar geometry for every schedule on the board
// against a viewport starting at `from` in the given view mode.
// Schedules are laid out concurrently; results keep board order.
func ComputeLayout(ctx context.Context, b *Board, mode timeline.ViewMode, from time.Time) ([]BarLayout, error) {
	from = timeline.Midnight(from)
	ppd := mode.PixelsPerDay()
	bars := make([]BarLayout, len(b.Schedules))

	g, ctx := errgroup.WithContext(ctx)
	for i := range b.Schedules {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			bar, err := layoutOne(b, b.Schedules[i], mode, from, ppd)
			if err != nil {
				return err
			}
			bars[i] = bar
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.L(logging.CategoryLayout).Debug("layout computed",
		zap.Int("bars", len(bars)),
		zap.String("view", string(mode)),
		zap.Float64("pixelsPerDay", ppd))
	return bars, nil
}

func layoutOne(b *Board, s Schedule, mode timeline.ViewMode, from time.Time, ppd float64) (BarLayout, error) {
	p, ok := b.Project(s.ProjectID)
	if !ok {
		return BarLayout{}, fmt.Errorf("board: layout: unknown project %s", s.ProjectID)
	}
	weights := b.WeightsFor(p)

	totalWidth := int(math.Round(float64(s.Days()) * ppd))
	left, err := timeline.PixelFromDate(s.Start.Time, from, ppd)
	if err != nil {
		return BarLayout{}, err
	}

	bar := BarLayout{
		ProjectID:     s.ProjectID,
		ProjectNumber: p.Number,
		BayID:         s.BayID,
		RowIndex:      s.RowIndex,
		Start:         s.Start.Time,
		End:           s.End.Time,
		Left:          left,
		Width:         totalWidth,
	}

	if s.ProductionStart != nil {
		ab, err := phase.AnchorToProduction(totalWidth, weights)
		if err != nil {
			return BarLayout{}, err
		}
		anchorPx, err := timeline.PixelFromDate(s.ProductionStart.Time, from, ppd)
		if err != nil {
			return BarLayout{}, err
		}
		bar.Anchored = true
		bar.Widths = ab.Widths
		bar.Segments = ab.Segments()
		bar.BarLeftOffset = ab.BarLeftOffset
		bar.BarActualWidth = ab.BarActualWidth
		// The rendered box starts left of the anchor date by the
		// combined fab+paint width.
		bar.Left = anchorPx + float64(ab.BarLeftOffset)
	} else {
		pw, err := phase.Partition(totalWidth, weights)
		if err != nil {
			return BarLayout{}, err
		}
		bar.Widths = pw
		bar.Segments = pw.Segments()
	}

	spans, err := phase.ApportionDates(s.Start.Time, s.End.Time, weights)
	if err != nil {
		return BarLayout{}, err
	}
	bar.Spans = spans
	return bar, nil
}
