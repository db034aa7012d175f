package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and on-screen date format.
const DateLayout = "2006-01-02"

const (
	FoodDining     Category = "Food & Dining"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Entertainment  Category = "Entertainment"
	BillsUtilities Category = "Bills & Utilities"
	Healthcare     Category = "Healthcare"
	Education      Category = "Education"
	Others         Category = "Others"
)

const (
	Cash       PaymentMethod = "Cash"
	CreditCard PaymentMethod = "Credit Card"
	DebitCard  PaymentMethod = "Debit Card"
	UPI        PaymentMethod = "UPI"
	NetBanking PaymentMethod = "Net Banking"
)

type (
	Category      string
	PaymentMethod string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID            int64 // Assigned by the store
		Date          Date
		Category      Category
		Amount        Money
		Description   string
		PaymentMethod PaymentMethod
	}

	// Patch is a sparse update. Nil fields keep the stored value.
	Patch struct {
		Date          *Date
		Category      *Category
		Amount        *Money
		Description   *string
		PaymentMethod *PaymentMethod
	}
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidMonth         = errors.New("invalid month")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNotFound             = errors.New("expense not found")
)

var categories = []Category{
	FoodDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsUtilities,
	Healthcare,
	Education,
	Others,
}

var paymentMethods = []PaymentMethod{
	Cash,
	CreditCard,
	DebitCard,
	UPI,
	NetBanking,
}

// Categories returns the closed set of categories in menu order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// PaymentMethods returns the closed set of payment methods in menu order.
func PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), paymentMethods...)
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory maps a stored string back to a Category. The storage
// layer uses it to report rows with an unknown category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsValid() bool {
	for _, v := range paymentMethods {
		if p == v {
			return true
		}
	}
	return false
}

// ParsePaymentMethod maps a stored string back to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	p := PaymentMethod(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
	return p, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// storedDateLayouts are tried in order when reading dates back from the
// database. Files written by earlier versions may hold unpadded dates.
var storedDateLayouts = []string{DateLayout, "2006-1-2", "2006-01-02 15:04:05"}

// ParseStoredDate parses a date read from storage. It accepts unpadded
// month and day and a trailing time of day, which ParseDate rejects.
func ParseStoredDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// IsEmpty reports whether the patch leaves every field unchanged.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Category == nil && p.Amount == nil &&
		p.Description == nil && p.PaymentMethod == nil
}

func (p Patch) Validate() error {
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return err
		}
	}
	if p.Category != nil && !p.Category.IsValid() {
		return ErrInvalidCategory
	}
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return err
		}
	}
	if p.PaymentMethod != nil && !p.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// ValidateMonth checks a calendar month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}
