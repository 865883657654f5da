package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthKeysSinceSignupSameMonth(t *testing.T) {
	keys := MonthKeysSinceSignup(date(2023, time.March, 15), date(2023, time.March, 20))
	require.Equal(t, []time.Time{date(2023, time.March, 20)}, keys)
}

func TestMonthKeysSinceSignupSeventeenMonths(t *testing.T) {
	keys := MonthKeysSinceSignup(date(2022, time.January, 10), date(2023, time.June, 1))
	require.Len(t, keys, 17)
	require.Equal(t, date(2023, time.June, 1), keys[0])
	require.Equal(t, date(2022, time.February, 1), keys[16])

	for i := 1; i < len(keys); i++ {
		require.True(t, keys[i].Before(keys[i-1]), "keys must descend")
		prev := keys[i-1]
		expectMonth := prev.Month() - 1
		expectYear := prev.Year()
		if prev.Month() == time.January {
			expectMonth = time.December
			expectYear--
		}
		require.Equal(t, expectMonth, keys[i].Month())
		require.Equal(t, expectYear, keys[i].Year())
	}
}

func TestMonthKeysSinceSignupClampsShortMonths(t *testing.T) {
	keys := MonthKeysSinceSignup(date(2023, time.January, 15), date(2023, time.March, 31))
	require.Equal(t, []time.Time{
		date(2023, time.March, 31),
		date(2023, time.February, 28),
		date(2023, time.January, 28),
	}, keys)
}

func TestMonthKeysForYearCurrentYearEndsToday(t *testing.T) {
	today := date(2023, time.June, 20)
	keys := MonthKeysForYear(date(2023, time.February, 10), 2023, today)
	require.NotEmpty(t, keys)
	require.Equal(t, today, keys[0])
	require.Len(t, keys, 6) // June back through January anchor days
}

func TestMonthKeysForYearPastYearEndsDecember(t *testing.T) {
	keys := MonthKeysForYear(date(2022, time.March, 5), 2022, date(2023, time.June, 1))
	require.Equal(t, date(2022, time.December, 31), keys[0])
	require.Len(t, keys, 11) // February through December of signup year
	require.Equal(t, time.February, keys[len(keys)-1].Month())
}

func TestMonthKeysForYearFullPastYear(t *testing.T) {
	keys := MonthKeysForYear(date(2021, time.July, 1), 2022, date(2023, time.June, 1))
	require.Len(t, keys, 12)
	require.Equal(t, date(2022, time.December, 31), keys[0])
	require.Equal(t, time.January, keys[len(keys)-1].Month())
}

func TestMonthKeysForYearCurrentYearAfterEarlierSignup(t *testing.T) {
	keys := MonthKeysForYear(date(2021, time.July, 1), 2023, date(2023, time.June, 1))
	require.Equal(t, date(2023, time.June, 1), keys[0])
	require.Len(t, keys, 5) // June down to February; January 1 start excludes its own anchor
}

func TestBucketLabel(t *testing.T) {
	require.Equal(t, "2023 JUNE", BucketLabel(date(2023, time.June, 1)))
	require.Equal(t, "2022 DECEMBER", BucketLabel(date(2022, time.December, 31)))
}
