package storage

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Amounts are read back as integer cents so that sums stay exact. Text
// columns are coalesced because files created by earlier versions allow
// NULL payment methods.
const expenseColumns = `id, date, category, CAST(ROUND(amount * 100) AS INTEGER) AS amount_cents,
	COALESCE(description, '') AS description, COALESCE(payment_method, '') AS payment_method`

// ExpenseRow mirrors one row of the expenses table.
type ExpenseRow struct {
	ID            int64
	Date          string
	Category      string
	AmountCents   int64
	Description   string
	PaymentMethod string
}

type CreateExpenseParams struct {
	Date          string
	Category      string
	Amount        float64
	Description   string
	PaymentMethod string
}

const createExpense = `INSERT INTO expenses (date, category, amount, description, payment_method)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createExpense,
		arg.Date,
		arg.Category,
		arg.Amount,
		arg.Description,
		arg.PaymentMethod,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getExpense = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id int64) (ExpenseRow, error) {
	row := q.db.QueryRowContext(ctx, getExpense, id)
	var i ExpenseRow
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.Category,
		&i.AmountCents,
		&i.Description,
		&i.PaymentMethod,
	)
	return i, err
}

const listExpenses = `SELECT ` + expenseColumns + ` FROM expenses
ORDER BY date DESC, id DESC`

func (q *Queries) ListExpenses(ctx context.Context) ([]ExpenseRow, error) {
	return q.listRows(ctx, listExpenses)
}

const listExpensesByDateRange = `SELECT ` + expenseColumns + ` FROM expenses
WHERE date BETWEEN ? AND ?
ORDER BY date DESC, id DESC`

func (q *Queries) ListExpensesByDateRange(ctx context.Context, start, end string) ([]ExpenseRow, error) {
	return q.listRows(ctx, listExpensesByDateRange, start, end)
}

const listExpensesByCategory = `SELECT ` + expenseColumns + ` FROM expenses
WHERE category = ?
ORDER BY date DESC, id DESC`

func (q *Queries) ListExpensesByCategory(ctx context.Context, category string) ([]ExpenseRow, error) {
	return q.listRows(ctx, listExpensesByCategory, category)
}

const searchExpenses = `SELECT ` + expenseColumns + ` FROM expenses
WHERE description LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\'
ORDER BY date DESC, id DESC`

// SearchExpenses matches pattern, which must already carry its wildcards.
func (q *Queries) SearchExpenses(ctx context.Context, pattern string) ([]ExpenseRow, error) {
	return q.listRows(ctx, searchExpenses, pattern, pattern)
}

type CategorySumRow struct {
	Category   string
	TotalCents int64
	Count      int64
}

const getCategorySums = `SELECT category, SUM(CAST(ROUND(amount * 100) AS INTEGER)) AS total_cents, COUNT(*) AS count
FROM expenses
GROUP BY category
ORDER BY total_cents DESC, category ASC`

func (q *Queries) GetCategorySums(ctx context.Context) ([]CategorySumRow, error) {
	rows, err := q.db.QueryContext(ctx, getCategorySums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategorySumRow
	for rows.Next() {
		var i CategorySumRow
		if err := rows.Scan(&i.Category, &i.TotalCents, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type MonthTotalRow struct {
	TotalCents sql.NullInt64
	Count      int64
}

const getMonthTotal = `SELECT SUM(CAST(ROUND(amount * 100) AS INTEGER)) AS total_cents, COUNT(*) AS count
FROM expenses
WHERE strftime('%Y-%m', date) = ?`

func (q *Queries) GetMonthTotal(ctx context.Context, monthKey string) (MonthTotalRow, error) {
	row := q.db.QueryRowContext(ctx, getMonthTotal, monthKey)
	var i MonthTotalRow
	err := row.Scan(&i.TotalCents, &i.Count)
	return i, err
}

const getTotal = `SELECT COALESCE(SUM(CAST(ROUND(amount * 100) AS INTEGER)), 0) FROM expenses`

func (q *Queries) GetTotal(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, getTotal)
	var total int64
	err := row.Scan(&total)
	return total, err
}

const countExpenses = `SELECT COUNT(*) FROM expenses`

func (q *Queries) CountExpenses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countExpenses)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// Nil parameters keep the stored column value.
type UpdateExpenseParams struct {
	ID            int64
	Date          sql.NullString
	Category      sql.NullString
	Amount        sql.NullFloat64
	Description   sql.NullString
	PaymentMethod sql.NullString
}

const updateExpense = `UPDATE expenses SET
	date = COALESCE(?, date),
	category = COALESCE(?, category),
	amount = COALESCE(?, amount),
	description = COALESCE(?, description),
	payment_method = COALESCE(?, payment_method)
WHERE id = ?`

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateExpense,
		arg.Date,
		arg.Category,
		arg.Amount,
		arg.Description,
		arg.PaymentMethod,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteExpense = `DELETE FROM expenses WHERE id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) listRows(ctx context.Context, query string, args ...interface{}) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExpenseRow
	for rows.Next() {
		var i ExpenseRow
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.Category,
			&i.AmountCents,
			&i.Description,
			&i.PaymentMethod,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
