package services

import (
	"context"
	"fmt"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// Store is the ledger storage the service drives. storage.SQLiteRepository
// satisfies it.
type Store interface {
	Append(ctx context.Context, e core.Expense) (int64, error)
	Get(ctx context.Context, id int64) (core.Expense, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
	ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error)
	ListByCategory(ctx context.Context, c core.Category) ([]core.Expense, error)
	Search(ctx context.Context, keyword string) ([]core.Expense, error)
	CategorySummary(ctx context.Context) ([]core.CategoryTotal, error)
	MonthlySummary(ctx context.Context, year, month int) (core.MonthSummary, error)
	Total(ctx context.Context) (core.Money, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, p core.Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Close() error
}

// ExpenseService validates expenses before they reach the store
type ExpenseService struct {
	storage Store
}

func NewExpenseService(storage Store) *ExpenseService {
	return &ExpenseService{
		storage: storage,
	}
}

// CreateExpense validates e and saves it, returning the new ID
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentExpense)

	if err := e.Validate(); err != nil {
		logger.WarnContext(ctx, "Rejected expense",
			applog.NewFields().
				WithOperation(applog.OpCreate).
				WithExpense(e.Date.String(), e.Category.String(), e.Amount.Cents, e.PaymentMethod.String()).
				WithError(err).
				ToSlice()...)
		return 0, err
	}

	id, err := s.storage.Append(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	return id, nil
}

// UpdateExpense applies a sparse patch. It returns false when no expense
// has the given ID.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, p core.Patch) (bool, error) {
	if err := p.Validate(); err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentExpense).WarnContext(ctx, "Rejected expense update",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldExpenseID, id,
			applog.FieldError, err)
		return false, err
	}

	ok, err := s.storage.Update(ctx, id, p)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}
	return ok, nil
}

// DeleteExpense removes an expense. It returns false when no expense
// has the given ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	ok, err := s.storage.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return ok, nil
}

// GetExpense returns core.ErrNotFound (wrapped) for an unknown ID.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.storage.Get(ctx, id)
}

func (s *ExpenseService) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListAll(ctx)
}

// ListByDateRange returns expenses dated start through end inclusive.
func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}
	return s.storage.ListByDateRange(ctx, start, end)
}

func (s *ExpenseService) ListByCategory(ctx context.Context, c core.Category) ([]core.Expense, error) {
	if !c.IsValid() {
		return nil, core.ErrInvalidCategory
	}
	return s.storage.ListByCategory(ctx, c)
}

func (s *ExpenseService) Search(ctx context.Context, keyword string) ([]core.Expense, error) {
	return s.storage.Search(ctx, keyword)
}

func (s *ExpenseService) CategorySummary(ctx context.Context) ([]core.CategoryTotal, error) {
	return s.storage.CategorySummary(ctx)
}

func (s *ExpenseService) MonthlySummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	if err := core.ValidateMonth(month); err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentExpense).WarnContext(ctx, "Rejected month summary",
			applog.FieldOperation, applog.OpSummary,
			applog.FieldYear, year,
			applog.FieldMonth, month)
		return core.MonthSummary{Year: year, Month: month}, err
	}
	return s.storage.MonthlySummary(ctx, year, month)
}

// Totals returns the sum and number of all expenses.
func (s *ExpenseService) Totals(ctx context.Context) (core.Money, int64, error) {
	total, err := s.storage.Total(ctx)
	if err != nil {
		return core.Money{}, 0, err
	}
	count, err := s.storage.Count(ctx)
	if err != nil {
		return core.Money{}, 0, err
	}
	return total, count, nil
}

// Close closes the underlying store
func (s *ExpenseService) Close() error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}
