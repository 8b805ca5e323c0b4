package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ref = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestDateFromPixel(t *testing.T) {
	t.Run("whole days", func(t *testing.T) {
		d, err := DateFromPixel(48, 12, ref)
		require.NoError(t, err)
		assert.Equal(t, ref.AddDate(0, 0, 4), d)
	})

	t.Run("fractional days preserved", func(t *testing.T) {
		d, err := DateFromPixel(36, 24, ref)
		require.NoError(t, err)
		assert.Equal(t, ref.Add(36*time.Hour), d)
	})

	t.Run("negative pixels move backward", func(t *testing.T) {
		d, err := DateFromPixel(-24, 12, ref)
		require.NoError(t, err)
		assert.Equal(t, ref.AddDate(0, 0, -2), d)
	})

	t.Run("zero scale rejected", func(t *testing.T) {
		_, err := DateFromPixel(100, 0, ref)
		assert.ErrorIs(t, err, ErrInvalidScale)
	})

	t.Run("negative scale rejected", func(t *testing.T) {
		_, err := DateFromPixel(100, -12, ref)
		assert.ErrorIs(t, err, ErrInvalidScale)
	})
}

func TestPixelFromDate_RoundTrip(t *testing.T) {
	for _, ppd := range []float64{12, 24, 84.0 / 7} {
		d := ref.AddDate(0, 0, 13)
		px, err := PixelFromDate(d, ref, ppd)
		require.NoError(t, err)
		back, err := DateFromPixel(px, ppd, ref)
		require.NoError(t, err)
		assert.WithinDuration(t, d, back, time.Second)
	}
}

func TestResizeStart_ZeroDeltaIdempotent(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	d, err := ResizeStart(250, 250, start, 12)
	require.NoError(t, err)
	assert.Equal(t, start, d)
}

func TestResizeStart_DragLeftExtends(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	d, err := ResizeStart(226, 250, start, 12)
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, -2), d)
}

func TestResizeEnd_NormalizesToEndOfDay(t *testing.T) {
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	d, err := ResizeEnd(324, 300, end, 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC), d)

	// Zero delta still lands on end-of-day of the initial date, so a
	// one-day schedule keeps inclusive range semantics.
	d, err = ResizeEnd(300, 300, end, 12)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay(end), d)
}

func TestGenerateSlots(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("day view, one slot per day", func(t *testing.T) {
		slots := GenerateSlots(from, from.AddDate(0, 0, 6), ViewDay)
		require.Len(t, slots, 7)
		assert.Equal(t, "2025-01-01", slots[0].ISO())
		assert.Equal(t, "2025-01-07", slots[6].ISO())
	})

	t.Run("week view strides seven days", func(t *testing.T) {
		slots := GenerateSlots(from, from.AddDate(0, 0, 27), ViewWeek)
		require.Len(t, slots, 4)
		assert.Equal(t, "2025-01-08", slots[1].ISO())
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		assert.Nil(t, GenerateSlots(from, from.AddDate(0, 0, -1), ViewDay))
	})

	t.Run("single day range yields one slot", func(t *testing.T) {
		slots := GenerateSlots(from, from, ViewWeek)
		assert.Len(t, slots, 1)
	})
}

func TestViewMode_PixelsPerDay(t *testing.T) {
	assert.Equal(t, 48.0, ViewDay.PixelsPerDay())
	assert.Equal(t, 12.0, ViewWeek.PixelsPerDay())
	assert.Equal(t, 2.0, ViewMonth.PixelsPerDay())
}
