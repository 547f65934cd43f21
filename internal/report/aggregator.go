// Package report turns a bank CSV export into a core.SpendingReport.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"spending/internal/core"
	"spending/internal/log"
)

// strayHeaderMarker starts the header row that some exports repeat mid-file.
const strayHeaderMarker = "Ημερομηνία"

const minFields = 3

// Aggregate reads a CSV export from r in one forward pass and returns the
// spending report. The first record is a header and is discarded.
//
// Rows are filtered to [start, end] only when both bounds are set; a single
// bound is ignored. Any row that cannot be decoded aborts the whole call with
// a *core.ParseError and no report. Aggregate does not close r.
func Aggregate(r io.Reader, monthlyIncome decimal.Decimal, start, end core.Date) (core.SpendingReport, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true
	rd.LazyQuotes = true

	rep := core.NewSpendingReport()
	filter := !start.IsEmpty() && !end.IsEmpty()

	if _, err := rd.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			rep.Finalize(monthlyIncome)
			return rep, nil
		}
		return core.SpendingReport{}, csvError(err)
	}

	var rows, skipped, outside int
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.SpendingReport{}, csvError(err)
		}
		rows++
		line, _ := rd.FieldPos(0)

		if isBlank(rec) || strings.HasPrefix(rec[0], strayHeaderMarker) {
			skipped++
			continue
		}
		tx, err := decodeRow(rec, line)
		if err != nil {
			return core.SpendingReport{}, err
		}
		if filter && !tx.Date.Within(start, end) {
			outside++
			continue
		}
		rep.Add(tx)
	}

	rep.Finalize(monthlyIncome)

	slog.Debug("Transactions aggregated",
		log.FieldComponent, log.ComponentReport,
		log.FieldRows, rows,
		log.FieldSkipped, skipped+outside,
		log.FieldRetained, len(rep.Transactions))

	return rep, nil
}

// AggregateFile opens path, aggregates it and closes it on every path.
func AggregateFile(path string, monthlyIncome decimal.Decimal, start, end core.Date) (core.SpendingReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.SpendingReport{}, fmt.Errorf("open transactions file: %w", err)
	}
	defer f.Close()

	return Aggregate(f, monthlyIncome, start, end)
}

// decodeRow converts [category, date, amount, ...] into a transaction. The
// amount is decoded before the date, so a row with both fields broken
// reports InvalidAmount.
func decodeRow(rec []string, line int) (core.Transaction, error) {
	if len(rec) < minFields {
		return core.Transaction{}, &core.ParseError{
			Kind:  core.MalformedRow,
			Line:  line,
			Value: strings.Join(rec, ","),
			Err:   fmt.Errorf("want at least %d fields, got %d", minFields, len(rec)),
		}
	}

	amount, err := core.ParseAmount(rec[2])
	if err != nil {
		return core.Transaction{}, &core.ParseError{Kind: core.InvalidAmount, Line: line, Value: rec[2], Err: err}
	}

	date, err := core.ParseDate(rec[1])
	if err != nil {
		return core.Transaction{}, &core.ParseError{Kind: core.InvalidDate, Line: line, Value: rec[1], Err: err}
	}

	return core.Transaction{
		Category: strings.TrimSpace(rec[0]),
		Amount:   amount,
		Date:     date,
	}, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func csvError(err error) error {
	line := 0
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		line = perr.StartLine
	}
	return &core.ParseError{Kind: core.MalformedRow, Line: line, Err: err}
}
