package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"spending/internal/cli"
	"spending/internal/core"
	"spending/internal/report"
)

var (
	flagIncome string
	flagStart  string
	flagEnd    string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "spending-report [file.csv]",
	Short: "Print a spending report for a bank CSV export",
	Long: "Aggregate a bank CSV export (category, DD/MM/YYYY date, amount) into totals\n" +
		"by category and by day. Reads standard input when no file is given.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func init() {
	rootCmd.Flags().StringVarP(&flagIncome, "income", "i", "", "Monthly income (default MONTHLY_INCOME or 1150)")
	rootCmd.Flags().StringVar(&flagStart, "start", "", "First day to include, YYYY-MM-DD")
	rootCmd.Flags().StringVar(&flagEnd, "end", "", "Last day to include, YYYY-MM-DD")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log aggregation details to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cli.LoadEnvFile()
	if flagDebug {
		cli.SetupCLILogger("debug", cmd.ErrOrStderr())
	}

	income, start, end, err := parseFlags()
	if err != nil {
		return err
	}

	var rep core.SpendingReport
	if len(args) == 1 && args[0] != "-" {
		rep, err = report.AggregateFile(args[0], income, start, end)
	} else {
		rep, err = report.Aggregate(cmd.InOrStdin(), income, start, end)
	}
	if err != nil {
		return fmt.Errorf("cannot read export: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderReport(rep))
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func parseFlags() (decimal.Decimal, core.Date, core.Date, error) {
	raw := strings.TrimSpace(flagIncome)
	if raw == "" {
		raw = os.Getenv("MONTHLY_INCOME")
	}
	if raw == "" {
		raw = "1150"
	}
	income, err := core.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, core.Date{}, core.Date{}, fmt.Errorf("--income: %w", err)
	}

	var start, end core.Date
	if flagStart != "" {
		if start, err = core.ParseISODate(flagStart); err != nil {
			return decimal.Zero, core.Date{}, core.Date{}, fmt.Errorf("--start: %w", err)
		}
	}
	if flagEnd != "" {
		if end, err = core.ParseISODate(flagEnd); err != nil {
			return decimal.Zero, core.Date{}, core.Date{}, fmt.Errorf("--end: %w", err)
		}
	}
	return income, start, end, nil
}
