package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ledger/internal/core"
	applog "ledger/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository owns the expenses table of a single SQLite file.
// It is not safe for concurrent writers; the ledger has exactly one.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	path    string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection: every statement is serialized and immediately durable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("SQLite schema ready", "path", dbPath, "version", version)

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		path:    dbPath,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Path returns the database file location.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Append inserts a new expense and returns its assigned ID.
// It does not validate e; ExpenseService does.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (int64, error) {
	id, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Date:          e.Date.String(),
		Category:      e.Category.String(),
		Amount:        e.Amount.Float64(),
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod.String(),
	})
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", e.Date.String(),
		"category", e.Category,
		"amount_cents", e.Amount.Cents,
		"payment_method", e.PaymentMethod)

	return id, nil
}

// Get retrieves a single expense by ID
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return toExpense(ctx, row), nil
}

// ListAll returns every expense, newest date first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return toExpenses(ctx, rows), nil
}

// ListByDateRange returns expenses with start <= date <= end, newest first.
// Dates compare as YYYY-MM-DD strings, which orders them chronologically.
func (r *SQLiteRepository) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	rows, err := r.queries.ListExpensesByDateRange(ctx, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("list expenses from %s to %s: %w", start, end, err)
	}
	return toExpenses(ctx, rows), nil
}

// ListByCategory returns the expenses of one category, newest first.
func (r *SQLiteRepository) ListByCategory(ctx context.Context, c core.Category) ([]core.Expense, error) {
	rows, err := r.queries.ListExpensesByCategory(ctx, c.String())
	if err != nil {
		return nil, fmt.Errorf("list expenses for category %s: %w", c, err)
	}
	return toExpenses(ctx, rows), nil
}

// Search matches keyword case-insensitively as a substring of the
// description or the category. Wildcard characters match literally.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string) ([]core.Expense, error) {
	rows, err := r.queries.SearchExpenses(ctx, likePattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("search expenses for %q: %w", keyword, err)
	}
	return toExpenses(ctx, rows), nil
}

// CategorySummary returns one row per category present, largest total first.
func (r *SQLiteRepository) CategorySummary(ctx context.Context) ([]core.CategoryTotal, error) {
	sums, err := r.queries.GetCategorySums(ctx)
	if err != nil {
		return nil, fmt.Errorf("get category sums: %w", err)
	}

	out := make([]core.CategoryTotal, 0, len(sums))
	for _, cs := range sums {
		out = append(out, core.CategoryTotal{
			// Unknown categories from older files are shown as stored.
			Category: core.Category(cs.Category),
			Total:    core.Money{Cents: cs.TotalCents},
			Count:    cs.Count,
		})
	}
	return out, nil
}

// MonthlySummary totals the expenses dated in the given year and month.
func (r *SQLiteRepository) MonthlySummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	summary := core.MonthSummary{Year: year, Month: month}
	if err := core.ValidateMonth(month); err != nil {
		return summary, err
	}

	row, err := r.queries.GetMonthTotal(ctx, summary.Key())
	if err != nil {
		return summary, fmt.Errorf("get month total: %w", err)
	}

	if row.TotalCents.Valid {
		summary.HasData = true
		summary.Total = core.Money{Cents: row.TotalCents.Int64}
		summary.Count = row.Count
	}
	return summary, nil
}

// Total sums every expense; zero when there are none.
func (r *SQLiteRepository) Total(ctx context.Context) (core.Money, error) {
	total, err := r.queries.GetTotal(ctx)
	if err != nil {
		return core.Money{}, fmt.Errorf("get total: %w", err)
	}
	return core.Money{Cents: total}, nil
}

// Count returns the number of stored expenses.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// Update applies a sparse patch and reports whether the expense exists.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, p core.Patch) (bool, error) {
	arg := UpdateExpenseParams{ID: id}
	if p.Date != nil {
		arg.Date = sql.NullString{String: p.Date.String(), Valid: true}
	}
	if p.Category != nil {
		arg.Category = sql.NullString{String: p.Category.String(), Valid: true}
	}
	if p.Amount != nil {
		arg.Amount = sql.NullFloat64{Float64: p.Amount.Float64(), Valid: true}
	}
	if p.Description != nil {
		arg.Description = sql.NullString{String: *p.Description, Valid: true}
	}
	if p.PaymentMethod != nil {
		arg.PaymentMethod = sql.NullString{String: p.PaymentMethod.String(), Valid: true}
	}

	n, err := r.queries.UpdateExpense(ctx, arg)
	if err != nil {
		return false, fmt.Errorf("update expense %d: %w", id, err)
	}
	if n == 0 {
		slog.DebugContext(ctx, "Update matched no expense", "id", id)
		return false, nil
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "empty_patch", p.IsEmpty())
	return true, nil
}

// Delete removes an expense and reports whether it existed.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n == 0 {
		slog.DebugContext(ctx, "Delete matched no expense", "id", id)
		return false, nil
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

func toExpenses(ctx context.Context, rows []ExpenseRow) []core.Expense {
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExpense(ctx, row))
	}
	return out
}

// toExpense converts a stored row. Values the menu would not accept, as left
// by earlier versions, are logged and returned as stored. An unreadable date
// is left zero.
func toExpense(ctx context.Context, row ExpenseRow) core.Expense {
	e := core.Expense{
		ID:            row.ID,
		Category:      core.Category(row.Category),
		Amount:        core.Money{Cents: row.AmountCents},
		Description:   row.Description,
		PaymentMethod: core.PaymentMethod(row.PaymentMethod),
	}

	var problems []error
	date, err := core.ParseStoredDate(row.Date)
	if err != nil {
		problems = append(problems, err)
	}
	e.Date = date
	if _, err := core.ParseCategory(row.Category); err != nil {
		problems = append(problems, err)
	}
	if _, err := core.ParsePaymentMethod(row.PaymentMethod); err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		applog.FromContext(ctx).WithComponent(applog.ComponentStorage).WarnContext(ctx, "Stored expense has invalid fields",
			applog.NewFields().
				WithOperation(applog.OpRead).
				WithExpenseID(row.ID).
				WithError(errors.Join(problems...)).
				ToSlice()...)
	}
	return e
}
