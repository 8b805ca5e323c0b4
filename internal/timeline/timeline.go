// Package timeline maps between pixel positions on the bay schedule
// board and calendar dates. The mapping is continuous: fractional days
// are preserved rather than snapped to a slot grid, so repeated small
// drags accumulate instead of drifting through rounding.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ISODate is the wire format for dates carried on slot and drop-target
// attributes.
const ISODate = "2006-01-02"

// ErrInvalidScale is returned when a pixels-per-day scale of zero or
// less is supplied. The mapper never divides by it.
var ErrInvalidScale = errors.New("timeline: pixels-per-day must be > 0")

// ViewMode controls how wide one calendar slot renders and how many
// days it covers. The pixels-per-day scale the mapper consumes is
// derived from these two numbers.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// SlotWidth returns the rendered width in pixels of one slot.
func (m ViewMode) SlotWidth() float64 {
	switch m {
	case ViewDay:
		return 48
	case ViewMonth:
		return 60
	default:
		return 84
	}
}

// DaysPerSlot returns how many calendar days one slot covers.
func (m ViewMode) DaysPerSlot() int {
	switch m {
	case ViewDay:
		return 1
	case ViewMonth:
		return 30
	default:
		return 7
	}
}

// PixelsPerDay returns the scale used for all pixel/date conversions
// in this view mode.
func (m ViewMode) PixelsPerDay() float64 {
	return m.SlotWidth() / float64(m.DaysPerSlot())
}

// Slot is one visible calendar column on the board.
type Slot struct {
	Date time.Time `yaml:"date" json:"date"`
}

// ISO returns the slot's date in yyyy-MM-dd form.
func (s Slot) ISO() string {
	return s.Date.Format(ISODate)
}

// GenerateSlots produces the ordered slot sequence covering [from, to]
// for the given view mode, one slot per DaysPerSlot days. from and to
// are truncated to midnight UTC. An inverted range yields no slots.
func GenerateSlots(from, to time.Time, mode ViewMode) []Slot {
	from = Midnight(from)
	to = Midnight(to)
	if to.Before(from) {
		return nil
	}
	step := mode.DaysPerSlot()
	var slots []Slot
	for d := from; !d.After(to); d = d.AddDate(0, 0, step) {
		slots = append(slots, Slot{Date: d})
	}
	return slots
}

// Midnight truncates t to 00:00:00 UTC of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay normalizes t to 23:59:59 UTC of the same calendar day, the
// inclusive end-of-range form used by schedule end dates.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// DateFromPixel converts a pixel offset into a date relative to ref.
// The fractional day count is preserved: 36px at 24px/day is exactly
// a day and a half past ref. pixelsPerDay must be positive.
func DateFromPixel(pixel, pixelsPerDay float64, ref time.Time) (time.Time, error) {
	if pixelsPerDay <= 0 {
		return time.Time{}, fmt.Errorf("%w: got %v", ErrInvalidScale, pixelsPerDay)
	}
	days := pixel / pixelsPerDay
	return ref.Add(time.Duration(days * 24 * float64(time.Hour))), nil
}

// PixelFromDate is the inverse of DateFromPixel: the pixel offset of d
// relative to ref at the given scale.
func PixelFromDate(d, ref time.Time, pixelsPerDay float64) (float64, error) {
	if pixelsPerDay <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidScale, pixelsPerDay)
	}
	days := d.Sub(ref).Hours() / 24
	return days * pixelsPerDay, nil
}

// ResizeStart computes the new start date for a left-edge resize. The
// pixel delta from the edge's initial position is mapped through
// DateFromPixel with the initial start date as reference, so a zero
// delta returns the initial date unchanged.
func ResizeStart(leftPixel, initialLeftPixel float64, initialStart time.Time, pixelsPerDay float64) (time.Time, error) {
	return DateFromPixel(leftPixel-initialLeftPixel, pixelsPerDay, initialStart)
}

// ResizeEnd computes the new end date for a right-edge resize,
// normalized to end-of-day so a one-day schedule whose end equals its
// start still spans the full day.
func ResizeEnd(rightPixel, initialRightPixel float64, initialEnd time.Time, pixelsPerDay float64) (time.Time, error) {
	d, err := DateFromPixel(rightPixel-initialRightPixel, pixelsPerDay, initialEnd)
	if err != nil {
		return time.Time{}, err
	}
	return EndOfDay(d), nil
}
