package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMeeting(t *testing.T, days string, start, end string) Meeting {
	t.Helper()
	daySet, err := ParseDays(days)
	require.NoError(t, err)
	startMin, err := ParseClock(start)
	require.NoError(t, err)
	endMin, err := ParseClock(end)
	require.NoError(t, err)
	m, err := NewMeeting(daySet, startMin, endMin)
	require.NoError(t, err)
	return m
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("MWF")
	require.NoError(t, err)
	assert.True(t, days.Intersects(Monday))
	assert.True(t, days.Intersects(Wednesday))
	assert.True(t, days.Intersects(Friday))
	assert.False(t, days.Intersects(Tuesday))
	assert.Equal(t, "MWF", days.String())

	days, err = ParseDays("TR")
	require.NoError(t, err)
	assert.True(t, days.Intersects(Tuesday))
	assert.True(t, days.Intersects(Thursday))

	_, err = ParseDays("MXF")
	assert.ErrorIs(t, err, ErrInvalidDays)

	_, err = ParseDays("")
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)
	assert.Equal(t, "10:30", FormatClock(minutes))

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ParseClock("oops")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestNewMeetingRejectsMalformedInput(t *testing.T) {
	_, err := NewMeeting(Monday, 600, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewMeeting(Monday, 660, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewMeeting(0, 600, 660)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestOverlapsSelfAndSymmetry(t *testing.T) {
	meetings := []Meeting{
		mustMeeting(t, "MWF", "10:00", "10:50"),
		mustMeeting(t, "M", "10:30", "11:20"),
		mustMeeting(t, "TR", "08:00", "09:15"),
		mustMeeting(t, "U", "13:00", "13:50"),
	}
	for _, m := range meetings {
		assert.True(t, Overlaps(m, m), "every meeting overlaps itself")
	}
	for _, a := range meetings {
		for _, b := range meetings {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "overlap is symmetric")
		}
	}
}

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	first := mustMeeting(t, "M", "09:00", "10:00")
	second := mustMeeting(t, "M", "10:00", "11:00")
	assert.False(t, Overlaps(first, second), "back-to-back meetings do not overlap")
	assert.False(t, Overlaps(second, first))
}

func TestOverlapsRequiresSharedDay(t *testing.T) {
	monday := mustMeeting(t, "M", "10:00", "11:00")
	tuesday := mustMeeting(t, "T", "10:00", "11:00")
	assert.False(t, Overlaps(monday, tuesday))
}

func TestOverlapsHonoursDateRanges(t *testing.T) {
	base := mustMeeting(t, "M", "10:00", "11:00")

	firstHalf, err := base.WithDates(
		time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	secondHalf, err := base.WithDates(
		time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.False(t, Overlaps(firstHalf, secondHalf), "disjoint date ranges cannot collide")
	assert.True(t, Overlaps(firstHalf, base), "missing date range means always effective")

	_, err = base.WithDates(
		time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
