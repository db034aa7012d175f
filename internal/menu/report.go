package menu

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"ledger/internal/core"
)

const (
	currency    = "₹"
	headerWidth = 60
	ansiClear   = "\033[H\033[2J"
)

func printHeader(w io.Writer, title string) {
	rule := strings.Repeat("=", headerWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, center(title, headerWidth), rule)
}

// center pads s on both sides to width, extra space going right.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func money(m core.Money) string {
	return currency + m.String()
}

// printExpenses renders a table of expenses followed by their total.
// The category column is dropped when every row shares one category.
func printExpenses(w io.Writer, expenses []core.Expense, withCategory bool) {
	if withCategory {
		fmt.Fprintf(w, "%-5s %-12s %-20s %10s %-15s %-30s\n", "ID", "Date", "Category", "Amount", "Payment", "Description")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, e := range expenses {
			fmt.Fprintf(w, "%-5d %-12s %-20s %s%9s %-15s %-30s\n",
				e.ID, e.Date, e.Category, currency, e.Amount, e.PaymentMethod, e.Description)
		}
		fmt.Fprintln(w, strings.Repeat("-", 110))
		fmt.Fprintf(w, "%-58s %s%9s\n", "Total:", currency, core.Sum(expenses))
		return
	}

	fmt.Fprintf(w, "%-5s %-12s %10s %-15s %-30s\n", "ID", "Date", "Amount", "Payment", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range expenses {
		fmt.Fprintf(w, "%-5d %-12s %s%9s %-15s %-30s\n",
			e.ID, e.Date, currency, e.Amount, e.PaymentMethod, e.Description)
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "%-28s %s%9s\n", "Total:", currency, core.Sum(expenses))
}

func printExpense(w io.Writer, e core.Expense) {
	fmt.Fprintf(w, "ID:             %d\n", e.ID)
	fmt.Fprintf(w, "Date:           %s\n", e.Date)
	fmt.Fprintf(w, "Category:       %s\n", e.Category)
	fmt.Fprintf(w, "Amount:         %s\n", money(e.Amount))
	fmt.Fprintf(w, "Payment Method: %s\n", e.PaymentMethod)
	fmt.Fprintf(w, "Description:    %s\n", e.Description)
}

func printCategorySummary(w io.Writer, rows []core.CategoryTotal) {
	total := core.SumCategories(rows)

	fmt.Fprintf(w, "%-25s %15s %10s %12s\n", "Category", "Total Amount", "Count", "Percentage")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range rows {
		fmt.Fprintf(w, "%-25s %s%14s %10d %11.1f%%\n",
			r.Category, currency, r.Total, r.Count, core.Percent(r.Total, total))
	}
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "%-25s %s%14s\n", "TOTAL:", currency, total)
}

func monthTitle(year, month int) string {
	return fmt.Sprintf("SUMMARY FOR %s %d", time.Month(month), year)
}

func printMonthSummary(w io.Writer, s core.MonthSummary) {
	if !s.HasData {
		fmt.Fprintln(w, "No expenses found for this month.")
		return
	}
	fmt.Fprintf(w, "Total Expenses: %s\n", money(s.Total))
	fmt.Fprintf(w, "Number of Transactions: %d\n", s.Count)
	fmt.Fprintf(w, "Average per Transaction: %s\n", money(s.Average()))
}

func printTotals(w io.Writer, total core.Money, count int64) {
	fmt.Fprintf(w, "Total Amount Spent: %s\n", money(total))
	fmt.Fprintf(w, "Total Transactions: %d\n", count)
	if count > 0 {
		fmt.Fprintf(w, "Average per Transaction: %s\n", money(core.Average(total, count)))
	}
}
