package donations

import (
	"sort"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/currency"
	"github.com/ITCS-6112-Dilio/dilio/storage"
)

const (
	PointsPerDollar = 10
	MaxStreak       = 30
)

type Stats struct {
	TotalDonated float64 `json:"totalDonated"`
	Points       int64   `json:"points"`
	// Streak counts consecutive calendar days with a donation, ending today or yesterday.
	Streak int `json:"streak"`
}

// ComputeStats summarizes a user's donations as of now. Days are calendar days in now's
// location.
func ComputeStats(donations []*storage.Donation, now time.Time) Stats {
	total := 0.0
	for _, d := range donations {
		total = currency.Add(total, d.Amount)
	}
	points := currency.Mul(total, PointsPerDollar).Round(0).IntPart()

	return Stats{
		TotalDonated: total,
		Points:       points,
		Streak:       streak(donations, now),
	}
}

func streak(donations []*storage.Donation, now time.Time) int {
	loc := now.Location()
	days := make(map[time.Time]bool)
	for _, d := range donations {
		if d.Timestamp.IsZero() {
			continue
		}
		days[startOfDay(d.Timestamp, loc)] = true
	}
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	cursor := startOfDay(now, loc)
	count := 0
	for _, day := range sorted {
		if day.After(cursor) {
			// Timestamps in the future relative to now do not count.
			continue
		}
		if daysBetween(day, cursor) > 1 {
			break
		}
		count++
		cursor = day
		if count == MaxStreak {
			break
		}
	}
	return count
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func daysBetween(earlier, later time.Time) int64 {
	// Calendar dates, so DST shifts do not produce fractional days.
	a := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int64(b.Sub(a) / (24 * time.Hour))
}
