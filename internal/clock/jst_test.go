package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTodayCrossesMidnightInTokyoNotUTC(t *testing.T) {
	// 15:00 UTC is already the next day in Tokyo.
	c := NewWithNow(func() time.Time {
		return time.Date(2025, 6, 17, 15, 0, 0, 0, time.UTC)
	})
	require.Equal(t, Date{Year: 2025, Month: time.June, Day: 18}, c.Today())

	c = NewWithNow(func() time.Time {
		return time.Date(2025, 6, 17, 14, 59, 59, 0, time.UTC)
	})
	require.Equal(t, "2025-06-17", c.Today().String())
}

func TestTodayIgnoresHostLocation(t *testing.T) {
	ny := time.FixedZone("EDT", -4*60*60)
	c := NewWithNow(func() time.Time {
		// 2025-06-17 20:30 in New York is 2025-06-18 09:30 in Tokyo.
		return time.Date(2025, 6, 17, 20, 30, 0, 0, ny)
	})
	require.Equal(t, "2025-06-18", c.Today().String())
	require.Equal(t, 9, c.Now().Hour())
}

func TestIsToday(t *testing.T) {
	c := NewWithNow(func() time.Time {
		return time.Date(2025, 12, 31, 16, 0, 0, 0, time.UTC)
	})
	require.True(t, c.IsToday(Date{Year: 2026, Month: time.January, Day: 1}))
	require.False(t, c.IsToday(Date{Year: 2025, Month: time.December, Day: 31}))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-18")
	require.NoError(t, err)
	require.Equal(t, Date{Year: 2025, Month: time.June, Day: 18}, d)

	for _, bad := range []string{"", "2025-6-18", "18/06/2025", "2025-02-30"} {
		_, err := ParseDate(bad)
		require.Error(t, err, bad)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}
	require.Equal(t, "2024-02-29", d.AddDays(1).String())
	require.Equal(t, "2024-03-01", d.AddDays(2).String())

	c := New()
	start := d.StartIn(c.Location())
	require.Equal(t, 0, start.Hour())
	require.Equal(t, "2024-02-27T15:00:00Z", start.UTC().Format(time.RFC3339))
}
