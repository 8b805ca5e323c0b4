// Package phase computes the pixel geometry of a project's schedule bar.
// A bar is divided into six sequential production phases; the partitioner
// guarantees the six segment widths sum exactly to the bar's total width,
// so independently rounded percentages can never leave a gap or overlap
// at the right edge of the bar.
package phase

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Phase identifies one sequential stage of a project's production.
type Phase string

const (
	Fab        Phase = "fab"
	Paint      Phase = "paint"
	Production Phase = "production"
	IT         Phase = "it"
	NTC        Phase = "ntc"
	QC         Phase = "qc"
)

// Order is the fixed rendering order of phases on a schedule bar.
// QC is last and absorbs the rounding remainder of the earlier floors.
var Order = [6]Phase{Fab, Paint, Production, IT, NTC, QC}

// ErrInvalidWidth is returned when a partition is requested for a
// negative total width. Negative widths are rejected rather than
// clamped; the caller is holding bad geometry and should know.
var ErrInvalidWidth = errors.New("phase: total width must be >= 0")

// Weights holds a project's nominal phase percentages. They do not need
// to sum to 100; a normalization factor of 100/sum is applied before
// partitioning when the sum differs.
type Weights struct {
	Fab        float64 `yaml:"fab" json:"fab"`
	Paint      float64 `yaml:"paint" json:"paint"`
	Production float64 `yaml:"production" json:"production"`
	IT         float64 `yaml:"it" json:"it"`
	NTC        float64 `yaml:"ntc" json:"ntc"`
	QC         float64 `yaml:"qc" json:"qc"`
}

// DefaultWeights returns the weights used when a project supplies none.
// They sum to 115 and are normalized during partitioning.
func DefaultWeights() Weights {
	return Weights{Fab: 27, Paint: 7, Production: 60, IT: 7, NTC: 7, QC: 7}
}

// Sum returns the raw percentage total.
func (w Weights) Sum() float64 {
	return w.Fab + w.Paint + w.Production + w.IT + w.NTC + w.QC
}

// IsZero reports whether every weight is zero.
func (w Weights) IsZero() bool {
	return w.Sum() == 0
}

// Get returns the weight for a single phase.
func (w Weights) Get(p Phase) float64 {
	switch p {
	case Fab:
		return w.Fab
	case Paint:
		return w.Paint
	case Production:
		return w.Production
	case IT:
		return w.IT
	case NTC:
		return w.NTC
	case QC:
		return w.QC
	}
	return 0
}

// Widths holds the integer pixel width of each phase segment.
type Widths struct {
	Fab        int `json:"fab"`
	Paint      int `json:"paint"`
	Production int `json:"production"`
	IT         int `json:"it"`
	NTC        int `json:"ntc"`
	QC         int `json:"qc"`

	// TotalWidth is the bar width the partition was computed for.
	TotalWidth int `json:"totalWidth"`

	// ExactMatch reports whether the six widths sum exactly to
	// TotalWidth. The partitioner produces true by construction; it
	// is exposed so callers and tests can verify rather than assume.
	ExactMatch bool `json:"exactMatch"`
}

// Get returns the width of a single phase segment.
func (pw Widths) Get(p Phase) int {
	switch p {
	case Fab:
		return pw.Fab
	case Paint:
		return pw.Paint
	case Production:
		return pw.Production
	case IT:
		return pw.IT
	case NTC:
		return pw.NTC
	case QC:
		return pw.QC
	}
	return 0
}

// Segment is one phase box positioned relative to its bar's left edge.
type Segment struct {
	Phase Phase `json:"phase"`
	Left  int   `json:"left"`
	Width int   `json:"width"`
}

// Segments returns the six phase boxes in rendering order with
// cumulative left offsets starting at 0.
func (pw Widths) Segments() []Segment {
	segs := make([]Segment, 0, len(Order))
	left := 0
	for _, p := range Order {
		w := pw.Get(p)
		segs = append(segs, Segment{Phase: p, Left: left, Width: w})
		left += w
	}
	return segs
}

// Partition splits totalWidth into six integer segment widths
// proportional to the given weights. The first five phases are floored
// in fixed order (fab, paint, production, it, ntc); qc receives the
// remainder, which makes ExactMatch true unconditionally. QC's width
// may exceed its nominal share by up to five pixels, one per preceding
// floor.
//
// Zero weights are replaced with DefaultWeights before partitioning.
// Pathological weights (one weight overwhelmingly larger than the
// rest) can drive the qc remainder negative; the remainder is not
// clamped so the segment sum always equals totalWidth.
func Partition(totalWidth int, w Weights) (Widths, error) {
	if totalWidth < 0 {
		return Widths{}, fmt.Errorf("%w: got %d", ErrInvalidWidth, totalWidth)
	}
	if w.IsZero() {
		w = DefaultWeights()
	}

	normalize := 1.0
	if sum := w.Sum(); sum != 100 {
		normalize = 100 / sum
	}

	floorShare := func(weight float64) int {
		return int(math.Floor(float64(totalWidth) * weight * normalize / 100))
	}

	out := Widths{
		Fab:        floorShare(w.Fab),
		Paint:      floorShare(w.Paint),
		Production: floorShare(w.Production),
		IT:         floorShare(w.IT),
		NTC:        floorShare(w.NTC),
		TotalWidth: totalWidth,
	}
	out.QC = totalWidth - (out.Fab + out.Paint + out.Production + out.IT + out.NTC)
	out.ExactMatch = out.Fab+out.Paint+out.Production+out.IT+out.NTC+out.QC == totalWidth
	return out, nil
}

// AnchoredBar is a bar whose production phase start is pinned to a
// fixed calendar date. Fab and paint render to the left of that anchor,
// so the rendered box extends left of the bar's nominal visual start.
type AnchoredBar struct {
	Widths

	// BarLeftOffset is the shift of the rendered box relative to the
	// nominal visual start, always <= 0: -(fab width + paint width).
	BarLeftOffset int `json:"barLeftOffset"`

	// ProdStartPosition is the production phase's position in the
	// nominal coordinate space. Always 0; kept explicit because the
	// anchor date maps to this pixel.
	ProdStartPosition int `json:"prodStartPosition"`

	// BarActualWidth is the rendered box width:
	// TotalWidth - BarLeftOffset.
	BarActualWidth int `json:"barActualWidth"`
}

// AnchorToProduction partitions totalWidth and re-anchors the result so
// the production segment's left edge sits at pixel 0 of the nominal
// coordinate space, with fab and paint extending to the left of it.
func AnchorToProduction(totalWidth int, w Weights) (AnchoredBar, error) {
	pw, err := Partition(totalWidth, w)
	if err != nil {
		return AnchoredBar{}, err
	}
	offset := -(pw.Fab + pw.Paint)
	return AnchoredBar{
		Widths:            pw,
		BarLeftOffset:     offset,
		ProdStartPosition: 0,
		BarActualWidth:    totalWidth - offset,
	}, nil
}

// Segments returns the six phase boxes relative to the rendered box's
// own left edge. Production's left equals -BarLeftOffset, which is
// pixel 0 of the nominal coordinate space.
func (ab AnchoredBar) Segments() []Segment {
	return ab.Widths.Segments()
}

// Span is one phase's share of a schedule's calendar range.
type Span struct {
	Phase Phase     `json:"phase"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// ApportionDates splits the inclusive calendar range [start, end] into
// six sequential phase spans using the same normalize-and-floor
// arithmetic as Partition, with qc absorbing leftover days. Each span
// begins the day after the previous one ends. A range shorter than six
// days still covers every day; trailing phases may receive zero days.
func ApportionDates(start, end time.Time, w Weights) ([]Span, error) {
	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays < 0 {
		return nil, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidWidth, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	pw, err := Partition(totalDays, w)
	if err != nil {
		return nil, err
	}

	spans := make([]Span, 0, len(Order))
	cursor := start
	for _, p := range Order {
		days := pw.Get(p)
		if days < 0 {
			days = 0
		}
		s := Span{Phase: p, Start: cursor, Days: days}
		if days > 0 {
			s.End = cursor.AddDate(0, 0, days-1)
			cursor = s.End.AddDate(0, 0, 1)
		} else {
			s.End = s.Start
		}
		spans = append(spans, s)
	}
	return spans, nil
}
