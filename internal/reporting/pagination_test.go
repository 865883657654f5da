package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amounts(values ...int64) []Entry {
	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		entries = append(entries, Entry{Amount: decimal.NewFromInt(v)})
	}
	return entries
}

func TestPaginateLastPartialPage(t *testing.T) {
	list := make([]int, 25)
	for i := range list {
		list[i] = i + 1
	}
	page, err := Paginate(list, 3, 10)
	require.NoError(t, err)
	require.Equal(t, []int{21, 22, 23, 24, 25}, page)
}

func TestPaginateBeyondEndIsEmpty(t *testing.T) {
	page, err := Paginate([]int{1, 2, 3}, 5, 10)
	require.NoError(t, err)
	require.Empty(t, page)
}

func TestPaginateRejectsBadPageNumber(t *testing.T) {
	_, err := Paginate([]int{1, 2, 3}, 0, 10)
	require.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPageOptions(t *testing.T) {
	require.Equal(t, []string{"Page 1", "Page 2", "Page 3"}, PageOptions(25))
	require.Equal(t, []string{"Page 1", "Page 2"}, PageOptions(20))
	require.Empty(t, PageOptions(0))
}

func TestYearOptions(t *testing.T) {
	require.Equal(t, []string{"2021", "2022", "2023"}, YearOptions(2021, 2023))
	require.Equal(t, []string{"2023"}, YearOptions(2023, 2023))
}

func TestChartScaleHalfUp(t *testing.T) {
	scale, err := ChartScale(amounts(10, 250, 80))
	require.NoError(t, err)
	require.Equal(t, 5, scale) // 250/100 = 2.5, half-up 3, plus 2

	scale, err = ChartScale(amounts(10, 240, 80))
	require.NoError(t, err)
	require.Equal(t, 4, scale) // 240/100 = 2.4, half-up 2, plus 2
}

func TestChartScaleAllLosses(t *testing.T) {
	scale, err := ChartScale(amounts(-200, -50))
	require.NoError(t, err)
	require.Equal(t, 1, scale) // max -50, -0.5 rounds away from zero to -1, plus 2
}

func TestChartScaleEmptySeries(t *testing.T) {
	_, err := ChartScale(nil)
	require.ErrorIs(t, err, ErrEmptySeries)
}
