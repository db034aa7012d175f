// Package menu implements the numbered text interface of the ledger.
//
// The menu collects validated input, calls the expense service and prints
// the results. Validation problems are recovered by re-prompting, unknown
// IDs print a message, and storage errors end the session.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// Service is the subset of services.ExpenseService the menu uses.
type Service interface {
	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, id int64, p core.Patch) (bool, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
	ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error)
	ListByCategory(ctx context.Context, c core.Category) ([]core.Expense, error)
	Search(ctx context.Context, keyword string) ([]core.Expense, error)
	CategorySummary(ctx context.Context) ([]core.CategoryTotal, error)
	MonthlySummary(ctx context.Context, year, month int) (core.MonthSummary, error)
	Totals(ctx context.Context) (core.Money, int64, error)
}

type Menu struct {
	svc    Service
	in     *lineReader
	out    io.Writer
	clear  bool
	today  func() core.Date
	logger *applog.Logger
}

type Option func(*Menu)

// WithClearScreen toggles clearing the terminal before each screen.
func WithClearScreen(clear bool) Option {
	return func(m *Menu) { m.clear = clear }
}

// WithToday overrides the date used when a new expense's date is left blank.
func WithToday(today func() core.Date) Option {
	return func(m *Menu) { m.today = today }
}

func WithLogger(logger *applog.Logger) Option {
	return func(m *Menu) { m.logger = logger.WithComponent(applog.ComponentMenu) }
}

func New(svc Service, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		svc:    svc,
		in:     newLineReader(in),
		out:    out,
		clear:  true,
		today:  core.Today,
		logger: applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentMenu),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type action struct {
	label string
	run   func(*Menu, context.Context) error
}

var actions = []action{
	{"Add New Expense", (*Menu).addExpense},
	{"View All Expenses", (*Menu).viewAll},
	{"View Expenses by Category", (*Menu).viewByCategory},
	{"View Expenses by Date Range", (*Menu).viewByDateRange},
	{"Search Expenses", (*Menu).search},
	{"View Category Summary", (*Menu).categorySummary},
	{"View Monthly Summary", (*Menu).monthlySummary},
	{"View Total Expenses", (*Menu).totals},
	{"Update Expense", (*Menu).updateExpense},
	{"Delete Expense", (*Menu).deleteExpense},
}

// exitChoice is the menu number that ends the session.
var exitChoice = len(actions) + 1

// Run shows the menu until the user exits, input ends or ctx is cancelled,
// all of which return nil. A storage error ends the loop and is returned.
// Store calls run to completion even if ctx is cancelled meanwhile.
func (m *Menu) Run(ctx context.Context) error {
	defer m.in.Close()

	for {
		m.printMenu()
		line, err := m.ask(ctx, fmt.Sprintf("Enter your choice (1-%d): ", exitChoice))
		if err != nil {
			m.goodbye()
			return nil
		}

		n, err := strconv.Atoi(line)
		if n == exitChoice && err == nil {
			m.goodbye()
			return nil
		}
		if err != nil || n < 1 || n > len(actions) {
			fmt.Fprintf(m.out, "\nInvalid choice. Please select 1-%d\n", exitChoice)
			if err := m.pause(ctx); err != nil {
				m.goodbye()
				return nil
			}
			continue
		}

		if err := actions[n-1].run(m, ctx); err != nil {
			if errors.Is(err, errQuit) {
				m.goodbye()
				return nil
			}
			m.logger.ErrorContext(ctx, "Menu action failed",
				applog.FieldOperation, actions[n-1].label,
				applog.FieldError, err)
			return err
		}
	}
}

func (m *Menu) printMenu() {
	m.clearScreen()
	printHeader(m.out, "PERSONAL EXPENSE TRACKER")
	for i, a := range actions {
		fmt.Fprintf(m.out, "%-4s%s\n", strconv.Itoa(i+1)+".", a.label)
	}
	fmt.Fprintf(m.out, "%-4s%s\n", strconv.Itoa(exitChoice)+".", "Exit")
	fmt.Fprintf(m.out, "\n%s\n", strings.Repeat("-", headerWidth))
}

func (m *Menu) goodbye() {
	fmt.Fprintln(m.out, "\n\nThank you for using Personal Expense Tracker!")
	fmt.Fprintln(m.out, "Goodbye!")
}

func (m *Menu) clearScreen() {
	if m.clear {
		fmt.Fprint(m.out, ansiClear)
	}
}

func (m *Menu) screen(title string) {
	m.clearScreen()
	printHeader(m.out, title)
}

// store detaches store calls from cancellation so that an interrupt never
// aborts a statement half way.
func store(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func isValidation(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrInvalidPaymentMethod) ||
		errors.Is(err, core.ErrInvalidMonth)
}
