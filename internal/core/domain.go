package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the day/month/year layout used by the bank export.
	// Single-digit days and months are accepted.
	DateLayout = "2/1/2006"

	// ISODateLayout is the layout of HTML date inputs and JSON keys.
	ISODateLayout = "2006-01-02"
)

type (
	// Date is a calendar day at UTC midnight. The zero value means "not set".
	Date struct {
		time.Time
	}

	Transaction struct {
		Category string
		Amount   decimal.Decimal // negative for expenses, positive for income
		Date     Date
	}

	// SpendingReport is the result of one aggregation pass. It is built fresh
	// per call and never shared.
	SpendingReport struct {
		TotalIncome          decimal.Decimal
		TotalExpenses        decimal.Decimal
		TotalSavings         decimal.Decimal
		RemainingBudget      decimal.Decimal
		ExpensesWithoutBills decimal.Decimal

		CategoryExpenses map[string]decimal.Decimal
		DailySpending    map[Date]decimal.Decimal
		DailyIncome      map[Date]decimal.Decimal

		Transactions []Transaction
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a DD/MM/YYYY string. Calendar-invalid days such as
// 31/02/2024 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ParseISODate parses a YYYY-MM-DD string as sent by <input type="date">.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is zero (used for optional bounds)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Within reports whether d lies in [start, end], both bounds inclusive.
func (d Date) Within(start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format(ISODateLayout)
}

// String formats the date the way the bank export writes it.
func (d Date) String() string {
	return d.Format("02/01/2006")
}

// NewSpendingReport returns a report with empty accumulators.
func NewSpendingReport() SpendingReport {
	return SpendingReport{
		CategoryExpenses: make(map[string]decimal.Decimal),
		DailySpending:    make(map[Date]decimal.Decimal),
		DailyIncome:      make(map[Date]decimal.Decimal),
		Transactions:     []Transaction{},
	}
}

// Add folds one retained transaction into the running sums. Zero amounts are
// kept in Transactions but touch no total.
func (r *SpendingReport) Add(tx Transaction) {
	r.Transactions = append(r.Transactions, tx)

	switch tx.Amount.Sign() {
	case -1:
		spent := tx.Amount.Abs()
		r.TotalExpenses = r.TotalExpenses.Add(spent)
		r.CategoryExpenses[tx.Category] = r.CategoryExpenses[tx.Category].Add(spent)
		r.DailySpending[tx.Date] = r.DailySpending[tx.Date].Add(spent)
		if !IsBill(tx.Category) {
			r.ExpensesWithoutBills = r.ExpensesWithoutBills.Add(spent)
		}
	case 1:
		r.TotalIncome = r.TotalIncome.Add(tx.Amount)
		r.DailyIncome[tx.Date] = r.DailyIncome[tx.Date].Add(tx.Amount)
	}
}

// Finalize computes the derived fields once all rows have been added.
func (r *SpendingReport) Finalize(monthlyIncome decimal.Decimal) {
	r.TotalSavings = r.TotalIncome.Sub(r.TotalExpenses)
	r.RemainingBudget = monthlyIncome.Sub(r.TotalExpenses)
}
