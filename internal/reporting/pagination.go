package reporting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

var (
	// ErrPageOutOfRange indicates a page number below one.
	ErrPageOutOfRange = fmt.Errorf("%w: page number out of range", shared.ErrInvalid)
	// ErrEmptySeries indicates a chart scale request over no data.
	ErrEmptySeries = fmt.Errorf("%w: empty profit/loss series", shared.ErrInvalid)
)

// DefaultPageSize is the page size of report listings.
const DefaultPageSize = 10

// Paginate returns the 1-indexed page of list. A start index beyond the end
// of the list yields an empty page, not an error.
func Paginate[T any](list []T, pageNumber, pageSize int) ([]T, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, ErrPageOutOfRange
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(list) {
		return []T{}, nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], nil
}

// PageOptions returns the 1-indexed page labels for a listing of dataSize
// rows at DefaultPageSize rows per page.
func PageOptions(dataSize int) []string {
	pages := dataSize / DefaultPageSize
	if dataSize%DefaultPageSize != 0 {
		pages++
	}
	options := []string{}
	for i := 1; i <= pages; i++ {
		options = append(options, fmt.Sprintf("Page %d", i))
	}
	return options
}

// YearOptions returns the selectable report years, from the company's
// signup year through the current year.
func YearOptions(signupYear, currentYear int) []string {
	options := []string{}
	for year := signupYear; year <= currentYear; year++ {
		options = append(options, fmt.Sprintf("%d", year))
	}
	return options
}

// ChartScale derives the chart axis scale factor from a profit/loss series:
// the series maximum divided by 100 with half-up rounding, plus 2.
func ChartScale(series []Entry) (int, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}
	max := series[0].Amount
	for _, entry := range series[1:] {
		if entry.Amount.GreaterThan(max) {
			max = entry.Amount
		}
	}
	scale := max.DivRound(decimal.NewFromInt(100), 0).IntPart()
	return int(scale) + 2, nil
}
