package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-05", true},
		{" 2024-12-31 ", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-1-5", false},
		{"05/01/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q expected ok, got %v", tc.in, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v (date %v)", tc.in, err, d)
		}
	}
}

func TestParseStoredDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024-1-5", "2024-01-05"},
		{" 2024-12-1 ", "2024-12-01"},
		{"2024-01-05 13:45:00", "2024-01-05"},
	}
	for _, tc := range tests {
		d, err := ParseStoredDate(tc.in)
		if err != nil {
			t.Fatalf("ParseStoredDate(%q): %v", tc.in, err)
		}
		if d.String() != tc.want {
			t.Errorf("ParseStoredDate(%q) = %s, want %s", tc.in, d, tc.want)
		}
	}

	for _, in := range []string{"", "yesterday", "2024-13-01", "05/01/2024"} {
		if _, err := ParseStoredDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseStoredDate(%q) expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(2024, 1, 5).String(); got != "2024-01-05" {
		t.Fatalf("String() = %q", got)
	}
	d, err := ParseDate("2024-02-01")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-02-01" {
		t.Fatalf("round trip = %q", d.String())
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}
	if cats[0] != FoodDining || cats[7] != Others {
		t.Fatalf("unexpected order: %v", cats)
	}
	cats[0] = "mutated"
	if Categories()[0] != FoodDining {
		t.Fatalf("Categories must return a copy")
	}

	if _, err := ParseCategory("Bills & Utilities"); err != nil {
		t.Fatalf("expected valid category, got %v", err)
	}
	if _, err := ParseCategory("food & dining"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestPaymentMethods(t *testing.T) {
	methods := PaymentMethods()
	if len(methods) != 5 || methods[3] != UPI {
		t.Fatalf("unexpected payment methods: %v", methods)
	}
	if _, err := ParsePaymentMethod("Net Banking"); err != nil {
		t.Fatalf("expected valid method, got %v", err)
	}
	if _, err := ParsePaymentMethod("Cheque"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:          NewDate(2025, 1, 1),
		Category:      Shopping,
		Amount:        Money{Cents: 100},
		PaymentMethod: Cash,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{Category: Shopping, Amount: Money{Cents: 1}, PaymentMethod: Cash}, ErrInvalidDate},
		{Expense{Date: NewDate(2025, 1, 1), Category: "Rent", Amount: Money{Cents: 1}, PaymentMethod: Cash}, ErrInvalidCategory},
		{Expense{Date: NewDate(2025, 1, 1), Category: Shopping, Amount: Money{Cents: 0}, PaymentMethod: Cash}, ErrInvalidAmount},
		{Expense{Date: NewDate(2025, 1, 1), Category: Shopping, Amount: Money{Cents: 1}, PaymentMethod: ""}, ErrInvalidPaymentMethod},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestPatchValidate(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Fatalf("zero patch should be empty")
	}
	if err := (Patch{}).Validate(); err != nil {
		t.Fatalf("empty patch should validate, got %v", err)
	}

	zero := Money{}
	if err := (Patch{Amount: &zero}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	bad := Category("Rent")
	if err := (Patch{Category: &bad}).Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	desc := ""
	p := Patch{Description: &desc}
	if p.IsEmpty() {
		t.Fatalf("patch with description should not be empty")
	}
}

func TestValidateMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		if err := ValidateMonth(m); err != nil {
			t.Fatalf("month %d expected ok, got %v", m, err)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if err := ValidateMonth(m); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("month %d expected ErrInvalidMonth, got %v", m, err)
		}
	}
}
