// Package drag resolves the calendar date a drop gesture lands on.
//
// During a drag the UI layer collects several candidate date sources of
// decreasing precision: the drop target's own date attribute, the
// nearest ancestor carrying one, the gesture's cached last-known date,
// a document-level fallback attribute, and finally the first visible
// slot. The resolution order across these sources is a contract; the
// later sources exist only so a drop never resolves to nothing while at
// least one slot is on screen.
package drag

import (
	"errors"
	"fmt"
	"time"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// ErrNoDateSource is returned when every source in the fallback chain
// is empty. The caller decides whether to abort the drop or substitute
// its own default; nothing is retried here.
var ErrNoDateSource = errors.New("drag: no source produced a drop date")

// Source tags which input a resolved date came from.
type Source string

const (
	// SourceElement is a date attached directly to the drop target.
	SourceElement Source = "element-data-date"
	// SourceAncestor is a date on the nearest ancestor carrying one.
	SourceAncestor Source = "ancestor-data-date"
	// SourceCache is the gesture cache's last exact date.
	SourceCache Source = "cached-drag-date"
	// SourceDocument is the page-level fallback attribute, redundant
	// storage for the same cache that survives component remounts.
	SourceDocument Source = "document-fallback"
	// SourceFallback is the first visible calendar slot.
	SourceFallback Source = "fallback"
	// SourcePixel marks a date interpolated from a pixel position
	// rather than read from an attribute.
	SourcePixel Source = "pixel-interpolated"
)

// Resolution is a resolved drop date plus its provenance.
type Resolution struct {
	Date         time.Time `json:"date"`
	ExactDateStr string    `json:"exactDateStr"`
	Source       Source    `json:"source"`
}

// Context is the single-slot cache for the current drag gesture. It is
// set on drag start, overwritten on every pointer-move tick, read on
// drop, and cleared when the gesture ends or cancels. Last write wins;
// there is no history. All access happens on the UI event loop, so no
// locking is needed, but a stale value from a previous gesture will be
// read if End is skipped and the next drop target carries no date of
// its own.
type Context struct {
	active bool
	date   string
}

// Begin opens a gesture, clearing whatever the previous gesture left.
func (c *Context) Begin(isoDate string) {
	c.active = true
	c.date = isoDate
}

// Update records the latest exact date seen during a pointer-move
// tick. Opens the gesture if Begin was skipped.
func (c *Context) Update(isoDate string) {
	c.active = true
	c.date = isoDate
}

// Current returns the cached date, if any.
func (c *Context) Current() (string, bool) {
	if !c.active || c.date == "" {
		return "", false
	}
	return c.date, true
}

// End closes the gesture and drops the cached date.
func (c *Context) End() {
	c.active = false
	c.date = ""
}

// Active reports whether a gesture is in progress.
func (c *Context) Active() bool {
	return c.active
}

// DropInput carries every candidate date source for one drop. Empty
// strings mean the source is absent.
type DropInput struct {
	// ElementDate is the date attached to the exact drop target.
	ElementDate string
	// AncestorDate is the date on the nearest date-bearing ancestor.
	AncestorDate string
	// Gesture is the current drag gesture's cache; nil when the drop
	// arrives outside a tracked gesture.
	Gesture *Context
	// DocumentDate is the page-level fallback attribute.
	DocumentDate string
	// Slots is the ordered sequence of visible calendar slots.
	Slots []timeline.Slot
}

// ResolveDropDate resolves a drop to a date by walking the source
// chain in contract order: element, ancestor, gesture cache, document
// attribute, first visible slot. A candidate that fails to parse as
// yyyy-MM-dd is skipped rather than aborting the chain. When the chain
// is exhausted, ErrNoDateSource is returned.
func ResolveDropDate(in DropInput) (Resolution, error) {
	if r, ok := parseCandidate(in.ElementDate, SourceElement); ok {
		return r, nil
	}
	if r, ok := parseCandidate(in.AncestorDate, SourceAncestor); ok {
		return r, nil
	}
	if in.Gesture != nil {
		if cached, ok := in.Gesture.Current(); ok {
			if r, ok := parseCandidate(cached, SourceCache); ok {
				return r, nil
			}
		}
	}
	if r, ok := parseCandidate(in.DocumentDate, SourceDocument); ok {
		return r, nil
	}
	if len(in.Slots) > 0 {
		first := in.Slots[0]
		return Resolution{
			Date:         first.Date,
			ExactDateStr: first.ISO(),
			Source:       SourceFallback,
		}, nil
	}
	return Resolution{}, ErrNoDateSource
}

// InterpolateDate resolves a drop from a raw pixel position when no
// attribute source applies, tagging the result as pixel-interpolated.
func InterpolateDate(pixel, pixelsPerDay float64, ref time.Time) (Resolution, error) {
	d, err := timeline.DateFromPixel(pixel, pixelsPerDay, ref)
	if err != nil {
		return Resolution{}, fmt.Errorf("drag: interpolate drop date: %w", err)
	}
	return Resolution{
		Date:         d,
		ExactDateStr: d.Format(timeline.ISODate),
		Source:       SourcePixel,
	}, nil
}

func parseCandidate(iso string, src Source) (Resolution, bool) {
	if iso == "" {
		return Resolution{}, false
	}
	d, err := time.Parse(timeline.ISODate, iso)
	if err != nil {
		return Resolution{}, false
	}
	return Resolution{Date: d, ExactDateStr: iso, Source: src}, true
}
