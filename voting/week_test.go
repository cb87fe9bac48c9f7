package voting

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"sunday midnight", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "2025-01-05"},
		{"wednesday", time.Date(2025, 1, 8, 15, 30, 0, 0, time.UTC), "2025-01-05"},
		{"saturday last millisecond", time.Date(2025, 1, 11, 23, 59, 59, int(999*time.Millisecond), time.UTC), "2025-01-05"},
		{"crosses month", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), "2025-02-23"},
		{"crosses year", time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), "2024-12-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekID(tt.now, time.UTC))

			start, end := WeekRange(tt.now, time.UTC)
			assert.Equal(t, time.Sunday, start.Weekday())
			assert.Equal(t, time.Saturday, end.Weekday())
			assert.False(t, tt.now.Before(start))
			assert.False(t, tt.now.After(end))
			assert.Equal(t, 7*24*time.Hour-time.Millisecond, end.Sub(start))
		})
	}
}

func TestWeekRange_UsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Sunday 02:00 UTC is still Saturday evening in New York.
	now := time.Date(2025, 1, 12, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-12", WeekID(now, time.UTC))
	assert.Equal(t, "2025-01-05", WeekID(now, ny))

	start, _ := WeekRange(now, ny)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, ny, start.Location())
}

func TestWeekRange_NilLocationIsUTC(t *testing.T) {
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, WeekID(now, time.UTC), WeekID(now, nil))
}
