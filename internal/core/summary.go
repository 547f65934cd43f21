package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// DayPoint is one bar of the daily income/spending/remaining chart.
// Remaining is the monthly income minus spending accumulated up to Date.
type DayPoint struct {
	Date      Date
	Income    decimal.Decimal
	Spending  decimal.Decimal
	Remaining decimal.Decimal
}
