package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

func slotOn(iso string) timeline.Slot {
	d, err := time.Parse(timeline.ISODate, iso)
	if err != nil {
		panic(err)
	}
	return timeline.Slot{Date: d}
}

func TestResolveDropDate_Precedence(t *testing.T) {
	gesture := &Context{}
	gesture.Begin("2025-06-05")

	t.Run("element beats everything", func(t *testing.T) {
		r, err := ResolveDropDate(DropInput{
			ElementDate:  "2025-06-01",
			AncestorDate: "2025-06-02",
			Gesture:      gesture,
			DocumentDate: "2025-06-03",
			Slots:        []timeline.Slot{slotOn("2025-06-04")},
		})
		require.NoError(t, err)
		assert.Equal(t, SourceElement, r.Source)
		assert.Equal(t, "2025-06-01", r.ExactDateStr)
	})

	t.Run("ancestor beats cache", func(t *testing.T) {
		r, err := ResolveDropDate(DropInput{
			AncestorDate: "2025-06-02",
			Gesture:      gesture,
		})
		require.NoError(t, err)
		assert.Equal(t, SourceAncestor, r.Source)
		assert.Equal(t, "2025-06-02", r.ExactDateStr)
	})

	t.Run("cache beats document attribute", func(t *testing.T) {
		r, err := ResolveDropDate(DropInput{
			Gesture:      gesture,
			DocumentDate: "2025-06-03",
		})
		require.NoError(t, err)
		assert.Equal(t, SourceCache, r.Source)
		assert.Equal(t, "2025-06-05", r.ExactDateStr)
	})

	t.Run("document attribute beats first slot", func(t *testing.T) {
		r, err := ResolveDropDate(DropInput{
			DocumentDate: "2025-06-03",
			Slots:        []timeline.Slot{slotOn("2025-06-04")},
		})
		require.NoError(t, err)
		assert.Equal(t, SourceDocument, r.Source)
	})
}

func TestResolveDropDate_FallbackExhaustion(t *testing.T) {
	r, err := ResolveDropDate(DropInput{
		Slots: []timeline.Slot{slotOn("2025-01-01"), slotOn("2025-01-02")},
	})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.Source)
	assert.Equal(t, "2025-01-01", r.ExactDateStr)
}

func TestResolveDropDate_NoSource(t *testing.T) {
	_, err := ResolveDropDate(DropInput{})
	assert.ErrorIs(t, err, ErrNoDateSource)
}

func TestResolveDropDate_UnparseableCandidateSkipped(t *testing.T) {
	r, err := ResolveDropDate(DropInput{
		ElementDate:  "06/01/2025",
		AncestorDate: "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, SourceAncestor, r.Source)
}

func TestResolveDropDate_EndedGestureIgnored(t *testing.T) {
	gesture := &Context{}
	gesture.Begin("2025-06-05")
	gesture.End()

	_, err := ResolveDropDate(DropInput{Gesture: gesture})
	assert.ErrorIs(t, err, ErrNoDateSource)
}

func TestContext_LastWriteWins(t *testing.T) {
	c := &Context{}
	c.Begin("2025-06-01")
	c.Update("2025-06-02")
	c.Update("2025-06-03")

	got, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "2025-06-03", got)

	c.End()
	_, ok = c.Current()
	assert.False(t, ok)
	assert.False(t, c.Active())
}

func TestInterpolateDate(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	r, err := InterpolateDate(36, 12, ref)
	require.NoError(t, err)
	assert.Equal(t, SourcePixel, r.Source)
	assert.Equal(t, "2025-06-04", r.ExactDateStr)

	_, err = InterpolateDate(36, 0, ref)
	assert.ErrorIs(t, err, timeline.ErrInvalidScale)
}
