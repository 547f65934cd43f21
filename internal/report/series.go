package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"spending/internal/core"
)

// CategoryBreakdown returns category totals, largest first. Ties are broken
// by name so the order is stable across runs.
func CategoryBreakdown(rep core.SpendingReport) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(rep.CategoryExpenses))
	for name, amount := range rep.CategoryExpenses {
		out = append(out, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DailySeries returns one point per day that had income or spending, in
// date order. Remaining is monthlyIncome minus the spending accumulated up
// to and including that day.
func DailySeries(rep core.SpendingReport, monthlyIncome decimal.Decimal) []core.DayPoint {
	days := make(map[core.Date]struct{}, len(rep.DailySpending)+len(rep.DailyIncome))
	for d := range rep.DailySpending {
		days[d] = struct{}{}
	}
	for d := range rep.DailyIncome {
		days[d] = struct{}{}
	}

	ordered := make([]core.Date, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j].Time) })

	out := make([]core.DayPoint, 0, len(ordered))
	spent := decimal.Zero
	for _, d := range ordered {
		spending := rep.DailySpending[d]
		spent = spent.Add(spending)
		out = append(out, core.DayPoint{
			Date:      d,
			Income:    rep.DailyIncome[d],
			Spending:  spending,
			Remaining: monthlyIncome.Sub(spent),
		})
	}
	return out
}
