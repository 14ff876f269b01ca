package ena

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSplitWindows(t *testing.T) {
	t.Run("exactly 14 days is one window", func(t *testing.T) {
		ws := splitWindows(day(2024, 1, 1), day(2024, 1, 14))
		require.Len(t, ws, 1)
		assert.Equal(t, day(2024, 1, 1), ws[0].Start)
		assert.Equal(t, day(2024, 1, 14), ws[0].End)
	})

	t.Run("15 days is two windows", func(t *testing.T) {
		ws := splitWindows(day(2024, 1, 1), day(2024, 1, 15))
		require.Len(t, ws, 2)
		assert.Equal(t, day(2024, 1, 14), ws[0].End)
		assert.Equal(t, day(2024, 1, 15), ws[1].Start)
		assert.Equal(t, day(2024, 1, 15), ws[1].End)
	})

	t.Run("single day", func(t *testing.T) {
		ws := splitWindows(day(2024, 3, 7), day(2024, 3, 7))
		require.Len(t, ws, 1)
		assert.Equal(t, ws[0].Start, ws[0].End)
	})

	t.Run("windows are contiguous and cover the range", func(t *testing.T) {
		start, end := day(2023, 11, 20), day(2024, 2, 2)
		ws := splitWindows(start, end)
		require.NotEmpty(t, ws)
		assert.Equal(t, start, ws[0].Start)
		assert.Equal(t, end, ws[len(ws)-1].End)
		for i := 1; i < len(ws); i++ {
			assert.Equal(t, ws[i-1].End.AddDate(0, 0, 1), ws[i].Start)
		}
	})

	t.Run("end before start yields nothing", func(t *testing.T) {
		assert.Empty(t, splitWindows(day(2024, 1, 2), day(2024, 1, 1)))
	})

	t.Run("time of day is normalized", func(t *testing.T) {
		ws := splitWindows(
			time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2024, 1, 14, 1, 0, 0, 0, time.UTC),
		)
		require.Len(t, ws, 1)
		assert.Equal(t, "2024-01-01..2024-01-14", ws[0].String())
	})
}
