package http

import (
	"github.com/shopspring/decimal"

	"spending/internal/core"
	"spending/internal/report"
)

type (
	indexView struct {
		DefaultIncome string
		MaxUploadMB   int64
	}

	totalRow struct {
		Label string
		Value string
	}

	categoryRow struct {
		Name   string
		Amount string
		Bill   bool
	}

	// chartData is emitted into the page as JSON and drawn by charts.js.
	chartData struct {
		Categories      []string  `json:"categories"`
		CategoryAmounts []float64 `json:"category_amounts"`
		Days            []string  `json:"days"`
		Income          []float64 `json:"income"`
		Spending        []float64 `json:"spending"`
		Remaining       []float64 `json:"remaining"`
	}

	reportView struct {
		ID           string
		Income       string
		Start        string
		End          string
		Filtered     bool
		Totals       []totalRow
		Categories   []categoryRow
		Transactions int
		Chart        chartData
	}

	errorView struct {
		Status  int
		Title   string
		Message string
	}
)

func newReportView(id string, params ReportParams, rep core.SpendingReport) reportView {
	v := reportView{
		ID:           id,
		Income:       params.Income.String(),
		Start:        params.StartISO(),
		End:          params.EndISO(),
		Filtered:     params.Filtered(),
		Transactions: len(rep.Transactions),
		Totals: []totalRow{
			{"Total Income", core.FormatEuros(rep.TotalIncome)},
			{"Total Expenses", core.FormatEuros(rep.TotalExpenses)},
			{"Total Savings", core.FormatEuros(rep.TotalSavings)},
			{"Remaining Budget", core.FormatEuros(rep.RemainingBudget)},
			{"Expenses without Bills", core.FormatEuros(rep.ExpensesWithoutBills)},
		},
	}

	for _, c := range report.CategoryBreakdown(rep) {
		v.Categories = append(v.Categories, categoryRow{
			Name:   c.Name,
			Amount: core.FormatEuros(c.Amount),
			Bill:   core.IsBill(c.Name),
		})
		v.Chart.Categories = append(v.Chart.Categories, c.Name)
		v.Chart.CategoryAmounts = append(v.Chart.CategoryAmounts, c.Amount.InexactFloat64())
	}

	for _, p := range report.DailySeries(rep, params.Income) {
		v.Chart.Days = append(v.Chart.Days, p.Date.ISO())
		v.Chart.Income = append(v.Chart.Income, p.Income.InexactFloat64())
		v.Chart.Spending = append(v.Chart.Spending, p.Spending.InexactFloat64())
		v.Chart.Remaining = append(v.Chart.Remaining, p.Remaining.InexactFloat64())
	}

	return v
}

type (
	transactionResponse struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
	}

	categoryResponse struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	dayResponse struct {
		Date      string  `json:"date"`
		Income    float64 `json:"income"`
		Spending  float64 `json:"spending"`
		Remaining float64 `json:"remaining"`
	}

	// reportResponse is the JSON rendering of a SpendingReport. Maps keyed by
	// date use YYYY-MM-DD.
	reportResponse struct {
		ID                   string                `json:"id,omitempty"`
		MonthlyIncome        float64               `json:"monthly_income"`
		Start                string                `json:"start,omitempty"`
		End                  string                `json:"end,omitempty"`
		TotalIncome          float64               `json:"total_income"`
		TotalExpenses        float64               `json:"total_expenses"`
		TotalSavings         float64               `json:"total_savings"`
		RemainingBudget      float64               `json:"remaining_budget"`
		ExpensesWithoutBills float64               `json:"expenses_without_bills"`
		CategoryExpenses     map[string]float64    `json:"category_expenses"`
		DailySpending        map[string]float64    `json:"daily_spending"`
		DailyIncome          map[string]float64    `json:"daily_income"`
		Transactions         []transactionResponse `json:"transactions"`
		Categories           []categoryResponse    `json:"categories"`
		Daily                []dayResponse         `json:"daily"`
	}
)

func newReportResponse(id string, params ReportParams, rep core.SpendingReport) reportResponse {
	resp := reportResponse{
		ID:                   id,
		MonthlyIncome:        params.Income.InexactFloat64(),
		Start:                params.StartISO(),
		End:                  params.EndISO(),
		TotalIncome:          rep.TotalIncome.InexactFloat64(),
		TotalExpenses:        rep.TotalExpenses.InexactFloat64(),
		TotalSavings:         rep.TotalSavings.InexactFloat64(),
		RemainingBudget:      rep.RemainingBudget.InexactFloat64(),
		ExpensesWithoutBills: rep.ExpensesWithoutBills.InexactFloat64(),
		CategoryExpenses:     make(map[string]float64, len(rep.CategoryExpenses)),
		DailySpending:        dailyMap(rep.DailySpending),
		DailyIncome:          dailyMap(rep.DailyIncome),
		Transactions:         make([]transactionResponse, 0, len(rep.Transactions)),
		Categories:           []categoryResponse{},
		Daily:                []dayResponse{},
	}

	for name, amount := range rep.CategoryExpenses {
		resp.CategoryExpenses[name] = amount.InexactFloat64()
	}
	for _, tx := range rep.Transactions {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			Category: tx.Category,
			Amount:   tx.Amount.InexactFloat64(),
			Date:     tx.Date.ISO(),
		})
	}
	for _, c := range report.CategoryBreakdown(rep) {
		resp.Categories = append(resp.Categories, categoryResponse{Name: c.Name, Amount: c.Amount.InexactFloat64()})
	}
	for _, p := range report.DailySeries(rep, params.Income) {
		resp.Daily = append(resp.Daily, dayResponse{
			Date:      p.Date.ISO(),
			Income:    p.Income.InexactFloat64(),
			Spending:  p.Spending.InexactFloat64(),
			Remaining: p.Remaining.InexactFloat64(),
		})
	}

	return resp
}

func dailyMap(m map[core.Date]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for d, v := range m {
		out[d.ISO()] = v.InexactFloat64()
	}
	return out
}
