package reporting

import (
	"strings"
	"time"
)

// Month buckets are represented by plain dates; the day component carries
// no meaning beyond the stepping anchor. Both generators return buckets in
// descending order, most recent first.

// MonthKeysSinceSignup walks backward from today, one bucket per calendar
// month, until the month of the signup date has been covered. Signup and
// today inside the same month produce exactly one bucket: today.
func MonthKeysSinceSignup(signup, today time.Time) []time.Time {
	start := dateOnly(signup)
	now := dateOnly(today)

	keys := []time.Time{}
	for !now.Before(start) {
		keys = append(keys, now)
		now = minusMonths(now, 1)
	}
	return keys
}

// MonthKeysForYear restricts bucket generation to one calendar year, bounded
// below by the signup date and above by the earlier of today and December 31
// of the target year.
func MonthKeysForYear(signup time.Time, year int, today time.Time) []time.Time {
	start := minusMonths(dateOnly(signup), 1)
	now := dateOnly(today)

	var end time.Time
	switch {
	case start.Year() == year && year == now.Year():
		end = now
	case start.Year() == year:
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		if year == now.Year() {
			end = now
		} else {
			end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	keys := []time.Time{}
	for start.Before(end) {
		keys = append(keys, end)
		end = minusMonths(end, 1)
	}
	return keys
}

// BucketLabel formats a bucket as the report row label, e.g. "2023 JUNE".
func BucketLabel(key time.Time) string {
	return strings.ToUpper(key.Format("2006 January"))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// minusMonths steps back whole calendar months, clamping the day to the
// last valid day of the target month (Mar 31 -> Feb 28). Go's AddDate would
// normalise the overflow forward instead.
func minusMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, -months, 0)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
