package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spending/internal/cache"
	"spending/internal/log"
	"spending/internal/middleware/ratelimit"
)

const sampleCSV = `Category,Date,Amount
Rent,01/03/2024,"-500,00"
Salary,01/03/2024,"1800,00"
Coffee,02/03/2024,"-3,50"
`

func newTestServer(t *testing.T, opts Options) (*Server, *cache.LRU[[]byte]) {
	t.Helper()
	if opts.DefaultIncome.IsZero() {
		opts.DefaultIncome = decimal.NewFromInt(1150)
	}
	uploads := cache.NewLRU[[]byte](8, time.Minute)
	logger := log.New(log.Config{Output: io.Discard})
	return NewServer(":0", uploads, logger, opts), uploads
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func uploadRequest(t *testing.T, path, content string, fields map[string]string) *http.Request {
	t.Helper()
	body, ct := multipartBody(t, "export.csv", content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	return req
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Upload bank export") || !strings.Contains(body, `value="1150"`) {
		t.Fatalf("index body missing form: %s", body)
	}
	if rr.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("security headers not applied")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id not set")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(srv, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestStaticAssets(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rr := do(srv, httptest.NewRequest(http.MethodGet, "/static/charts.js", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("static status=%d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Cache-Control"), "max-age=3600") {
		t.Fatalf("Cache-Control = %q", rr.Header().Get("Cache-Control"))
	}
}

func TestUploadRedirectsToReport(t *testing.T) {
	srv, uploads := newTestServer(t, Options{})

	rr := do(srv, uploadRequest(t, "/reports", sampleCSV, map[string]string{"income": "1150"}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("upload status=%d body=%s", rr.Code, rr.Body.String())
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil || !strings.HasPrefix(loc.Path, "/reports/") {
		t.Fatalf("Location = %q", rr.Header().Get("Location"))
	}
	if loc.Query().Get("income") != "1150" {
		t.Fatalf("income not carried in redirect: %s", loc)
	}
	if uploads.Len() != 1 {
		t.Fatalf("uploads.Len = %d, want 1", uploads.Len())
	}

	rr = do(srv, httptest.NewRequest(http.MethodGet, loc.String(), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("report status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{"1800.00€", "503.50€", "1296.50€", "646.50€", "3.50€", "Rent", "Coffee", "chart-data"} {
		if !strings.Contains(body, want) {
			t.Errorf("report page missing %q", want)
		}
	}
}

func TestUploadHTMXUsesHXRedirect(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	req := uploadRequest(t, "/reports", sampleCSV, nil)
	req.Header.Set("HX-Request", "true")

	rr := do(srv, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("HX-Redirect"), "/reports/") {
		t.Fatalf("HX-Redirect = %q", rr.Header().Get("HX-Redirect"))
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	srv, uploads := newTestServer(t, Options{MaxUploadBytes: 1024})

	tests := []struct {
		name   string
		req    func() *http.Request
		status int
	}{
		{
			name:   "invalid amount",
			req:    func() *http.Request { return uploadRequest(t, "/reports", "h,h,h\nRent,01/03/2024,abc\n", nil) },
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "exponent amount",
			req: func() *http.Request {
				return uploadRequest(t, "/reports", "h,d,a\nFood,01/03/2024,\"-1e400000000\"\nCoffee,01/03/2024,\"-3,50\"\n", nil)
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "invalid income",
			req:    func() *http.Request { return uploadRequest(t, "/reports", sampleCSV, map[string]string{"income": "x"}) },
			status: http.StatusBadRequest,
		},
		{
			name:   "too large",
			req:    func() *http.Request { return uploadRequest(t, "/reports", strings.Repeat("a,b,c\n", 1000), nil) },
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, tt.req())
			if rr.Code != tt.status {
				t.Fatalf("status=%d, want %d body=%s", rr.Code, tt.status, rr.Body.String())
			}
		})
	}
	if uploads.Len() != 0 {
		t.Fatalf("rejected uploads must not be stored, have %d", uploads.Len())
	}
}

func TestParseErrorHidesDetails(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rr := do(srv, uploadRequest(t, "/api/reports", "h,h,h\nRent,31/02/2024,-1\n", nil))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body["error"], "Processing error") || strings.Contains(body["error"], "31/02") {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestReportJSON(t *testing.T) {
	srv, uploads := newTestServer(t, Options{})
	uploads.Set("known", []byte(sampleCSV))

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/reports/known?income=1000&start=2024-03-02&end=2024-03-31", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var got reportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalExpenses != 3.5 || got.TotalIncome != 0 || got.RemainingBudget != 996.5 {
		t.Fatalf("totals = %+v", got)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Date != "2024-03-02" {
		t.Fatalf("transactions = %+v", got.Transactions)
	}
	if got.DailySpending["2024-03-02"] != 3.5 {
		t.Fatalf("daily_spending = %v", got.DailySpending)
	}
	if len(got.Daily) != 1 || got.Daily[0].Remaining != 996.5 {
		t.Fatalf("daily = %+v", got.Daily)
	}
}

func TestCreateReportJSON(t *testing.T) {
	srv, uploads := newTestServer(t, Options{})
	rr := do(srv, uploadRequest(t, "/api/reports", sampleCSV, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var got reportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalSavings != 1296.5 || got.ExpensesWithoutBills != 3.5 || got.MonthlyIncome != 1150 {
		t.Fatalf("totals = %+v", got)
	}
	if len(got.Categories) != 2 || got.Categories[0].Name != "Rent" {
		t.Fatalf("categories = %+v", got.Categories)
	}
	if uploads.Len() != 0 {
		t.Fatalf("one-shot reports must not be stored")
	}
}

func TestUnknownUpload(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/reports/nope", nil))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "expired") {
		t.Fatalf("html: status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/api/reports/nope", nil))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("json: status=%d ct=%s", rr.Code, rr.Header().Get("Content-Type"))
	}
}

func TestReportBadParams(t *testing.T) {
	srv, uploads := newTestServer(t, Options{})
	uploads.Set("known", []byte(sampleCSV))

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/reports/known?start=yesterday", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestUploadRateLimited(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: 1})
	srv, _ := newTestServer(t, Options{UploadLimiter: limiter})

	if rr := do(srv, uploadRequest(t, "/api/reports", sampleCSV, nil)); rr.Code != http.StatusOK {
		t.Fatalf("first upload status=%d", rr.Code)
	}
	if rr := do(srv, uploadRequest(t, "/api/reports", sampleCSV, nil)); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload status=%d, want 429", rr.Code)
	}
	if rr := do(srv, httptest.NewRequest(http.MethodGet, "/", nil)); rr.Code != http.StatusOK {
		t.Fatalf("page views must not be limited, got %d", rr.Code)
	}
}
