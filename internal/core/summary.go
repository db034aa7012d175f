package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the aggregate of all expenses in one category.
type CategoryTotal struct {
	Category Category
	Total    Money
	Count    int64
}

// MonthSummary is a compact summary for a specific year+month.
// HasData is false when no expense falls in the month, which is
// distinct from a month whose total happens to be zero.
type MonthSummary struct {
	Year    int
	Month   int // 1-12
	Total   Money
	Count   int64
	HasData bool
}

// Key returns the YYYY-MM form used to match stored dates.
func (s MonthSummary) Key() string {
	return MonthKey(s.Year, s.Month)
}

// Average per transaction; zero when empty.
func (s MonthSummary) Average() Money {
	return Average(s.Total, s.Count)
}

// MonthKey formats year and month as YYYY-MM.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Average divides total by count, rounding half up to cents.
func Average(total Money, count int64) Money {
	if count <= 0 {
		return Money{}
	}
	avg := decimal.NewFromInt(total.Cents).Div(decimal.NewFromInt(count)).Round(0)
	return Money{Cents: avg.IntPart()}
}

// Percent returns part as a share of whole in percent; zero when whole is not positive.
func Percent(part, whole Money) float64 {
	if whole.Cents <= 0 {
		return 0
	}
	return float64(part.Cents) / float64(whole.Cents) * 100
}

// SumCategories adds up the totals of a category summary.
func SumCategories(rows []CategoryTotal) Money {
	var total Money
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return total
}

// Sum adds up the amounts of a list of expenses.
func Sum(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
