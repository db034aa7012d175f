package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ledger/internal/core"
)

func (m *Menu) addExpense(ctx context.Context) error {
	m.screen("ADD NEW EXPENSE")

	date, err := m.askDate(ctx, "Enter date (YYYY-MM-DD) or press Enter for today: ", true)
	if err != nil {
		return err
	}
	category, err := m.askCategory(ctx)
	if err != nil {
		return err
	}
	amount, err := m.askAmount(ctx, "\nEnter amount: "+currency)
	if err != nil {
		return err
	}
	method, err := m.askPaymentMethod(ctx)
	if err != nil {
		return err
	}
	description, err := m.ask(ctx, "\nEnter description (optional): ")
	if err != nil {
		return err
	}

	id, err := m.svc.CreateExpense(store(ctx), core.Expense{
		Date:          date,
		Category:      category,
		Amount:        amount,
		Description:   description,
		PaymentMethod: method,
	})
	switch {
	case isValidation(err):
		fmt.Fprintf(m.out, "\n✗ Expense not saved: %v\n", err)
	case err != nil:
		return fmt.Errorf("add expense: %w", err)
	default:
		fmt.Fprintf(m.out, "\n✓ Expense added successfully! (ID: %d)\n", id)
	}
	return m.pause(ctx)
}

func (m *Menu) viewAll(ctx context.Context) error {
	m.screen("ALL EXPENSES")

	expenses, err := m.svc.ListAll(store(ctx))
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	if len(expenses) == 0 {
		fmt.Fprintln(m.out, "No expenses found.")
	} else {
		printExpenses(m.out, expenses, true)
	}
	return m.pause(ctx)
}

func (m *Menu) viewByCategory(ctx context.Context) error {
	m.screen("VIEW EXPENSES BY CATEGORY")

	category, err := m.askCategory(ctx)
	if err != nil {
		return err
	}
	expenses, err := m.svc.ListByCategory(store(ctx), category)
	if err != nil {
		return fmt.Errorf("list expenses by category: %w", err)
	}

	m.screen("EXPENSES - " + category.String())
	if len(expenses) == 0 {
		fmt.Fprintf(m.out, "No expenses found for category: %s\n", category)
	} else {
		printExpenses(m.out, expenses, false)
	}
	return m.pause(ctx)
}

func (m *Menu) viewByDateRange(ctx context.Context) error {
	m.screen("VIEW EXPENSES BY DATE RANGE")

	start, err := m.askDate(ctx, "Enter start date (YYYY-MM-DD): ", false)
	if err != nil {
		return err
	}
	end, err := m.askDate(ctx, "Enter end date (YYYY-MM-DD): ", false)
	if err != nil {
		return err
	}
	expenses, err := m.svc.ListByDateRange(store(ctx), start, end)
	if err != nil {
		return fmt.Errorf("list expenses by date range: %w", err)
	}

	m.screen(fmt.Sprintf("EXPENSES FROM %s TO %s", start, end))
	if len(expenses) == 0 {
		fmt.Fprintln(m.out, "No expenses found in this date range.")
	} else {
		printExpenses(m.out, expenses, true)
	}
	return m.pause(ctx)
}

func (m *Menu) search(ctx context.Context) error {
	m.screen("SEARCH EXPENSES")

	keyword, err := m.ask(ctx, "Enter keyword to search: ")
	if err != nil {
		return err
	}
	expenses, err := m.svc.Search(store(ctx), keyword)
	if err != nil {
		return fmt.Errorf("search expenses: %w", err)
	}

	m.screen("SEARCH RESULTS FOR: " + keyword)
	if len(expenses) == 0 {
		fmt.Fprintln(m.out, "No expenses found matching your search.")
	} else {
		printExpenses(m.out, expenses, true)
	}
	return m.pause(ctx)
}

func (m *Menu) categorySummary(ctx context.Context) error {
	m.screen("CATEGORY SUMMARY")

	rows, err := m.svc.CategorySummary(store(ctx))
	if err != nil {
		return fmt.Errorf("category summary: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "No expenses found.")
	} else {
		printCategorySummary(m.out, rows)
	}
	return m.pause(ctx)
}

func (m *Menu) monthlySummary(ctx context.Context) error {
	m.screen("MONTHLY SUMMARY")

	yearLine, err := m.ask(ctx, "Enter year (YYYY): ")
	if err != nil {
		return err
	}
	year, yearErr := strconv.Atoi(yearLine)
	if yearErr != nil || year < 1 || year > 9999 {
		fmt.Fprintln(m.out, "Invalid input. Please enter valid numbers.")
		return m.pause(ctx)
	}
	monthLine, err := m.ask(ctx, "Enter month (1-12): ")
	if err != nil {
		return err
	}
	month, monthErr := strconv.Atoi(monthLine)
	if monthErr != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter valid numbers.")
		return m.pause(ctx)
	}
	if core.ValidateMonth(month) != nil {
		fmt.Fprintln(m.out, "Invalid month. Please enter 1-12")
		return m.pause(ctx)
	}

	summary, err := m.svc.MonthlySummary(store(ctx), year, month)
	if err != nil {
		return fmt.Errorf("monthly summary: %w", err)
	}

	m.screen(monthTitle(year, month))
	printMonthSummary(m.out, summary)
	return m.pause(ctx)
}

func (m *Menu) totals(ctx context.Context) error {
	m.screen("TOTAL EXPENSES")

	total, count, err := m.svc.Totals(store(ctx))
	if err != nil {
		return fmt.Errorf("total expenses: %w", err)
	}
	printTotals(m.out, total, count)
	return m.pause(ctx)
}

// updateExpense builds a sparse patch. A blank answer keeps the stored
// value; there is no way to clear a field from here.
func (m *Menu) updateExpense(ctx context.Context) error {
	m.screen("UPDATE EXPENSE")

	idLine, err := m.ask(ctx, "Enter expense ID to update: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.ParseInt(idLine, 10, 64)
	if convErr != nil {
		fmt.Fprintln(m.out, "Invalid input.")
		return m.pause(ctx)
	}

	current, err := m.svc.GetExpense(store(ctx), id)
	if errors.Is(err, core.ErrNotFound) {
		fmt.Fprintln(m.out, "\n✗ Expense not found or update failed.")
		return m.pause(ctx)
	}
	if err != nil {
		return fmt.Errorf("get expense: %w", err)
	}
	fmt.Fprintln(m.out, "\nCurrent details:")
	printExpense(m.out, current)

	var patch core.Patch
	fmt.Fprintln(m.out, "\nEnter new details (press Enter to skip):")

	dateLine, err := m.ask(ctx, "New date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	if dateLine != "" {
		d, parseErr := core.ParseDate(dateLine)
		if parseErr != nil {
			fmt.Fprintln(m.out, "Invalid date format.")
			return m.pause(ctx)
		}
		patch.Date = &d
	}

	yes, err := m.askYes(ctx, "Update category? (y/n): ")
	if err != nil {
		return err
	}
	if yes {
		c, err := m.askCategory(ctx)
		if err != nil {
			return err
		}
		patch.Category = &c
	}

	amountLine, err := m.ask(ctx, "New amount: ")
	if err != nil {
		return err
	}
	if amountLine != "" {
		amount, parseErr := core.ParseAmount(amountLine)
		if parseErr != nil {
			fmt.Fprintln(m.out, amountError(amountLine))
			return m.pause(ctx)
		}
		patch.Amount = &amount
	}

	yes, err = m.askYes(ctx, "Update payment method? (y/n): ")
	if err != nil {
		return err
	}
	if yes {
		p, err := m.askPaymentMethod(ctx)
		if err != nil {
			return err
		}
		patch.PaymentMethod = &p
	}

	description, err := m.ask(ctx, "New description: ")
	if err != nil {
		return err
	}
	if description != "" {
		patch.Description = &description
	}

	ok, err := m.svc.UpdateExpense(store(ctx), id, patch)
	switch {
	case isValidation(err):
		fmt.Fprintf(m.out, "\n✗ Expense not updated: %v\n", err)
	case err != nil:
		return fmt.Errorf("update expense: %w", err)
	case ok:
		fmt.Fprintln(m.out, "\n✓ Expense updated successfully!")
	default:
		fmt.Fprintln(m.out, "\n✗ Expense not found or update failed.")
	}
	return m.pause(ctx)
}

func (m *Menu) deleteExpense(ctx context.Context) error {
	m.screen("DELETE EXPENSE")

	idLine, err := m.ask(ctx, "Enter expense ID to delete: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.ParseInt(idLine, 10, 64)
	if convErr != nil {
		fmt.Fprintln(m.out, "Invalid ID.")
		return m.pause(ctx)
	}

	yes, err := m.askYes(ctx, fmt.Sprintf("Are you sure you want to delete expense %d? (y/n): ", id))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(m.out, "\nDeletion cancelled.")
		return m.pause(ctx)
	}

	ok, err := m.svc.DeleteExpense(store(ctx), id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if ok {
		fmt.Fprintln(m.out, "\n✓ Expense deleted successfully!")
	} else {
		fmt.Fprintln(m.out, "\n✗ Expense not found.")
	}
	return m.pause(ctx)
}
