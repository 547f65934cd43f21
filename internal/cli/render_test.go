package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"spending/internal/core"
)

func TestRenderReport(t *testing.T) {
	rep := core.NewSpendingReport()
	rep.Add(core.Transaction{Category: "Rent", Amount: decimal.RequireFromString("-500"), Date: core.NewDate(2024, 3, 1)})
	rep.Add(core.Transaction{Category: "Salary", Amount: decimal.RequireFromString("1800"), Date: core.NewDate(2024, 3, 1)})
	rep.Add(core.Transaction{Category: "Coffee", Amount: decimal.RequireFromString("-3.5"), Date: core.NewDate(2024, 3, 2)})
	rep.Finalize(decimal.NewFromInt(1150))

	out := RenderReport(rep)

	for _, want := range []string{
		"Spending Report",
		"Total Income", "1800.00€",
		"Total Expenses", "503.50€",
		"Total Savings", "1296.50€",
		"Remaining Budget", "646.50€",
		"Total Expenses without bills", "3.50€",
		"Expenses per Category",
		"Rent (bill)", "500.00€",
		"3 transactions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "Rent (bill)") > strings.Index(out, "Coffee") {
		t.Errorf("categories should be listed largest first:\n%s", out)
	}
}

func TestRenderReportEmpty(t *testing.T) {
	rep := core.NewSpendingReport()
	rep.Finalize(decimal.NewFromInt(1150))

	out := RenderReport(rep)
	if !strings.Contains(out, "no expenses") || !strings.Contains(out, "1150.00€") {
		t.Errorf("unexpected empty render:\n%s", out)
	}
}

func TestRenderReportNegativeBudget(t *testing.T) {
	rep := core.NewSpendingReport()
	rep.Add(core.Transaction{Category: "Rent", Amount: decimal.RequireFromString("-1200"), Date: core.NewDate(2024, 3, 1)})
	rep.Finalize(decimal.NewFromInt(1150))

	if out := RenderReport(rep); !strings.Contains(out, "-50.00€") {
		t.Errorf("negative remaining budget not rendered:\n%s", out)
	}
}
