package donations

import (
	"testing"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/stretchr/testify/assert"
)

func donationAt(amount float64, ts time.Time) *storage.Donation {
	return &storage.Donation{Amount: amount, Timestamp: ts}
}

func TestComputeStats(t *testing.T) {
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 1, 8+offset, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		donations  []*storage.Donation
		wantTotal  float64
		wantPoints int64
		wantStreak int
	}{
		{"empty", nil, 0, 0, 0},
		{"today only", []*storage.Donation{donationAt(0.25, day(0, 9))}, 0.25, 3, 1},
		{
			"consecutive days ending yesterday",
			[]*storage.Donation{donationAt(1, day(-1, 9)), donationAt(1, day(-2, 23)), donationAt(1, day(-3, 0))},
			3, 30, 3,
		},
		{
			"several donations on one day count once",
			[]*storage.Donation{donationAt(0.1, day(0, 8)), donationAt(0.2, day(0, 10)), donationAt(0.3, day(-1, 10))},
			0.6, 6, 2,
		},
		{
			"gap breaks the streak",
			[]*storage.Donation{donationAt(1, day(0, 8)), donationAt(1, day(-2, 8))},
			2, 20, 1,
		},
		{
			"stale activity gives no streak",
			[]*storage.Donation{donationAt(1, day(-5, 8))},
			1, 10, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.donations, day(0, 12))
			assert.Equal(t, tt.wantTotal, stats.TotalDonated)
			assert.Equal(t, tt.wantPoints, stats.Points)
			assert.Equal(t, tt.wantStreak, stats.Streak)
		})
	}
}

func TestComputeStats_StreakIsCapped(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var list []*storage.Donation
	for i := 0; i < 45; i++ {
		list = append(list, donationAt(1, now.AddDate(0, 0, -i)))
	}
	assert.Equal(t, MaxStreak, ComputeStats(list, now).Streak)
}
