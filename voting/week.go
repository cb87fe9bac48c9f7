package voting

import "time"

const weekIDLayout = "2006-01-02"

// WeekRange returns the Sunday 00:00:00.000 and Saturday 23:59:59.999 bounding the week
// that contains now, evaluated in loc.
func WeekRange(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day()-int(local.Weekday()), 0, 0, 0, 0, loc)
	end = time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// WeekID is the date of the week's Sunday, e.g. "2025-01-05". It doubles as the session
// and report id.
func WeekID(now time.Time, loc *time.Location) string {
	start, _ := WeekRange(now, loc)
	return start.Format(weekIDLayout)
}
