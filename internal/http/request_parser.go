// Package http provides HTTP server and handler implementations.
//
// This file parses report parameters and multipart uploads. Parameters use
// the same decimal-comma rule as the CSV amounts and the YYYY-MM-DD layout
// of HTML date inputs.

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"spending/internal/core"
)

var (
	// ErrInvalidParams is returned for an unparsable income or date bound.
	ErrInvalidParams = errors.New("invalid report parameters")

	// ErrUploadTooLarge is returned when the body exceeds the configured limit.
	ErrUploadTooLarge = errors.New("upload too large")

	// ErrMissingFile is returned when the multipart form has no "file" part.
	ErrMissingFile = errors.New("missing file")
)

// ReportParams are the knobs of one aggregation. A zero Start or End means
// the bound is absent.
type ReportParams struct {
	Income decimal.Decimal
	Start  core.Date
	End    core.Date
}

// ParseReportParams reads income, start and end from values. A blank income
// falls back to defaultIncome; blank dates are left unset.
func ParseReportParams(values url.Values, defaultIncome decimal.Decimal) (ReportParams, error) {
	params := ReportParams{Income: defaultIncome}

	if v := strings.TrimSpace(values.Get("income")); v != "" {
		income, err := core.ParseAmount(v)
		if err != nil {
			return ReportParams{}, fmt.Errorf("%w: income %q", ErrInvalidParams, v)
		}
		params.Income = income
	}

	var err error
	if params.Start, err = parseOptionalDate(values.Get("start")); err != nil {
		return ReportParams{}, fmt.Errorf("%w: start %q", ErrInvalidParams, values.Get("start"))
	}
	if params.End, err = parseOptionalDate(values.Get("end")); err != nil {
		return ReportParams{}, fmt.Errorf("%w: end %q", ErrInvalidParams, values.Get("end"))
	}

	return params, nil
}

func parseOptionalDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, nil
	}
	return core.ParseISODate(s)
}

// Query encodes the parameters so they survive a redirect.
func (p ReportParams) Query() url.Values {
	q := url.Values{}
	q.Set("income", p.Income.String())
	if !p.Start.IsEmpty() {
		q.Set("start", p.Start.ISO())
	}
	if !p.End.IsEmpty() {
		q.Set("end", p.End.ISO())
	}
	return q
}

// StartISO returns the start bound for an <input type="date">, or "".
func (p ReportParams) StartISO() string {
	if p.Start.IsEmpty() {
		return ""
	}
	return p.Start.ISO()
}

// EndISO returns the end bound for an <input type="date">, or "".
func (p ReportParams) EndISO() string {
	if p.End.IsEmpty() {
		return ""
	}
	return p.End.ISO()
}

// Filtered reports whether both bounds are set and rows will be filtered.
func (p ReportParams) Filtered() bool {
	return !p.Start.IsEmpty() && !p.End.IsEmpty()
}

// Upload is a CSV file read from a multipart request.
type Upload struct {
	FileName string
	Data     []byte
}

// ReadUpload parses a multipart form capped at maxBytes and returns the
// "file" part. The form values are available in r.PostForm afterwards.
func ReadUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if isTooLarge(err) {
			return Upload{}, ErrUploadTooLarge
		}
		return Upload{}, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return Upload{}, ErrMissingFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			return Upload{}, ErrUploadTooLarge
		}
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}

	return Upload{FileName: sanitizeInput(header.Filename), Data: data}, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
