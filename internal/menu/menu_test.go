package menu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ledger/internal/core"
	"ledger/internal/services"
	"ledger/internal/storage"
)

func newTestService(t *testing.T) *services.ExpenseService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	svc := services.NewExpenseService(repo)
	t.Cleanup(func() { svc.Close() })
	return svc
}

// run feeds the lines to a menu and returns everything it printed.
func run(t *testing.T, svc Service, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out,
		WithClearScreen(false),
		WithToday(func() core.Date { return core.NewDate(2024, 3, 15) }))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func seed(t *testing.T, svc *services.ExpenseService, expenses ...core.Expense) {
	t.Helper()
	for _, e := range expenses {
		if _, err := svc.CreateExpense(context.Background(), e); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}
}

var sample = []core.Expense{
	{Date: core.NewDate(2024, 1, 5), Category: core.FoodDining, Amount: core.Money{Cents: 2000}, Description: "Lunch", PaymentMethod: core.Cash},
	{Date: core.NewDate(2024, 1, 20), Category: core.Transportation, Amount: core.Money{Cents: 1550}, Description: "Taxi", PaymentMethod: core.UPI},
	{Date: core.NewDate(2024, 2, 1), Category: core.FoodDining, Amount: core.Money{Cents: 925}, Description: "Coffee beans", PaymentMethod: core.CreditCard},
}

func TestMenu_ExitAndEOF(t *testing.T) {
	svc := newTestService(t)

	out := run(t, svc, "11")
	if !strings.Contains(out, "PERSONAL EXPENSE TRACKER") || !strings.Contains(out, "Goodbye!") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "11. Exit") {
		t.Fatalf("menu must list the exit entry:\n%s", out)
	}

	var buf bytes.Buffer
	m := New(svc, strings.NewReader(""), &buf, WithClearScreen(false))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run on empty input: %v", err)
	}
	if !strings.Contains(buf.String(), "Goodbye!") {
		t.Fatalf("EOF should end the session politely:\n%s", buf.String())
	}
}

func TestMenu_LongInputLines(t *testing.T) {
	svc := newTestService(t)

	long := strings.Repeat("x", 200*1024)
	out := run(t, svc, long, "", "11")
	if !strings.Contains(out, "Invalid choice. Please select 1-11") || !strings.Contains(out, "Goodbye!") {
		t.Fatalf("a long line should be read like any other input")
	}
	if strings.Contains(out, "Could not read input") {
		t.Fatalf("unexpected read error for a %d byte line", len(long))
	}

	tooLong := strings.Repeat("x", maxLineSize+1)
	var buf bytes.Buffer
	m := New(svc, strings.NewReader("2\n\n"+tooLong+"\n11\n"), &buf, WithClearScreen(false))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, "ALL EXPENSES") {
		t.Fatalf("lines before the oversized one should still be handled")
	}
	if !strings.Contains(out, "Could not read input: "+bufio.ErrTooLong.Error()) {
		t.Fatalf("the user should be told why the session ended")
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Fatalf("session should still end with the goodbye")
	}
}

func TestMenu_InvalidChoice(t *testing.T) {
	svc := newTestService(t)
	out := run(t, svc, "abc", "", "0", "", "12", "", "11")
	if n := strings.Count(out, "Invalid choice. Please select 1-11"); n != 3 {
		t.Fatalf("expected 3 invalid choice messages, got %d:\n%s", n, out)
	}
}

func TestMenu_AddExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out := run(t, svc,
		"1",
		"2024-13-01", "",    // bad date, then today
		"9", "x", "1",       // category: out of range, not a number, Food & Dining
		"0", "abc", "12.50", // amount: zero, garbage, valid
		"5",                 // Net Banking
		"Lunch",             // description
		"",                  // pause
		"11")

	for _, want := range []string{
		"Invalid date format. Please use YYYY-MM-DD",
		"Invalid choice. Please select 1-8",
		"Invalid input. Please enter a number",
		"Amount must be greater than zero",
		"Invalid amount. Please enter a number",
		"✓ Expense added successfully! (ID: 1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	got, err := svc.GetExpense(ctx, 1)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	want := core.Expense{
		ID:            1,
		Date:          core.NewDate(2024, 3, 15),
		Category:      core.FoodDining,
		Amount:        core.Money{Cents: 1250},
		Description:   "Lunch",
		PaymentMethod: core.NetBanking,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMenu_Views(t *testing.T) {
	svc := newTestService(t)

	out := run(t, svc, "2", "", "11")
	if !strings.Contains(out, "No expenses found.") {
		t.Fatalf("empty ledger view:\n%s", out)
	}

	seed(t, svc, sample...)

	tests := []struct {
		name  string
		input []string
		want  []string
		not   []string
	}{
		{
			name:  "all",
			input: []string{"2", ""},
			want:  []string{"ALL EXPENSES", "Lunch", "Taxi", "Coffee beans", "₹    44.75"},
		},
		{
			name:  "by category",
			input: []string{"3", "1", ""},
			want:  []string{"EXPENSES - Food & Dining", "Lunch", "Coffee beans", "₹    29.25"},
			not:   []string{"Taxi"},
		},
		{
			name:  "empty category",
			input: []string{"3", "7", ""},
			want:  []string{"No expenses found for category: Education"},
		},
		{
			name:  "date range",
			input: []string{"4", "2024-01-01", "2024-01-31", ""},
			want:  []string{"EXPENSES FROM 2024-01-01 TO 2024-01-31", "Lunch", "Taxi"},
			not:   []string{"Coffee beans"},
		},
		{
			name:  "empty date range",
			input: []string{"4", "2023-01-01", "2023-12-31", ""},
			want:  []string{"No expenses found in this date range."},
		},
		{
			name:  "search",
			input: []string{"5", "COFFEE", ""},
			want:  []string{"SEARCH RESULTS FOR: COFFEE", "Coffee beans"},
			not:   []string{"Taxi"},
		},
		{
			name:  "search miss",
			input: []string{"5", "rent", ""},
			want:  []string{"No expenses found matching your search."},
		},
		{
			name:  "category summary",
			input: []string{"6", ""},
			want:  []string{"CATEGORY SUMMARY", "Food & Dining", "65.4%", "34.6%", "TOTAL:"},
		},
		{
			name:  "monthly summary",
			input: []string{"7", "2024", "1", ""},
			want: []string{
				"SUMMARY FOR January 2024",
				"Total Expenses: ₹35.50",
				"Number of Transactions: 2",
				"Average per Transaction: ₹17.75",
			},
		},
		{
			name:  "monthly summary without data",
			input: []string{"7", "2024", "3", ""},
			want:  []string{"No expenses found for this month."},
		},
		{
			name:  "monthly summary bad month",
			input: []string{"7", "2024", "13", ""},
			want:  []string{"Invalid month. Please enter 1-12"},
		},
		{
			name:  "monthly summary bad year",
			input: []string{"7", "twenty", ""},
			want:  []string{"Invalid input. Please enter valid numbers."},
		},
		{
			name:  "totals",
			input: []string{"8", ""},
			want: []string{
				"Total Amount Spent: ₹44.75",
				"Total Transactions: 3",
				"Average per Transaction: ₹14.92",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, svc, append(tc.input, "11")...)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, n := range tc.not {
				if strings.Contains(out, n) {
					t.Errorf("output should not contain %q:\n%s", n, out)
				}
			}
		})
	}
}

func TestMenu_UpdateExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc, sample[0])

	out := run(t, svc,
		"9", "1",
		"",           // keep date
		"y", "2",     // Transportation
		"",           // keep amount
		"n",          // keep payment method
		"Bus ticket", // description
		"",
		"11")
	if !strings.Contains(out, "Current details:") || !strings.Contains(out, "✓ Expense updated successfully!") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	got, err := svc.GetExpense(ctx, 1)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	want := sample[0]
	want.ID = 1
	want.Category = core.Transportation
	want.Description = "Bus ticket"
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"missing id", []string{"9", "42", ""}, "✗ Expense not found or update failed."},
		{"bad id", []string{"9", "one", ""}, "Invalid input."},
		{"bad date", []string{"9", "1", "yesterday", ""}, "Invalid date format."},
		{"bad amount", []string{"9", "1", "", "n", "-3", ""}, "Amount must be greater than zero"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, svc, append(tc.input, "11")...)
			if !strings.Contains(out, tc.want) {
				t.Fatalf("output missing %q:\n%s", tc.want, out)
			}
			after, err := svc.GetExpense(ctx, 1)
			if err != nil {
				t.Fatalf("GetExpense: %v", err)
			}
			if after != want {
				t.Fatalf("aborted update changed the record: %+v", after)
			}
		})
	}
}

func TestMenu_DeleteExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc, sample[0])

	out := run(t, svc, "10", "1", "n", "", "11")
	if !strings.Contains(out, "Deletion cancelled.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := svc.GetExpense(ctx, 1); err != nil {
		t.Fatalf("cancelled delete removed the expense: %v", err)
	}

	out = run(t, svc, "10", "1", "y", "", "10", "1", "y", "", "10", "x", "", "11")
	for _, want := range []string{
		"Are you sure you want to delete expense 1? (y/n): ",
		"✓ Expense deleted successfully!",
		"✗ Expense not found.",
		"Invalid ID.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if _, err := svc.GetExpense(ctx, 1); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMenu_CancelEndsSession(t *testing.T) {
	svc := newTestService(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	m := New(svc, pr, &out, WithClearScreen(false))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// brokenService fails every read.
type brokenService struct {
	Service
}

var errDisk = errors.New("disk I/O error")

func (brokenService) ListAll(context.Context) ([]core.Expense, error) { return nil, errDisk }

func TestMenu_StorageErrorEndsSession(t *testing.T) {
	var out bytes.Buffer
	m := New(brokenService{}, strings.NewReader("2\n\n11\n"), &out, WithClearScreen(false))
	if err := m.Run(context.Background()); !errors.Is(err, errDisk) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestClearScreen(t *testing.T) {
	var out bytes.Buffer
	m := New(newTestService(t), strings.NewReader("11\n"), &out)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), ansiClear) {
		t.Fatalf("screen should be cleared by default")
	}
}
