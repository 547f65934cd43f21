package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentHTTP, Output: &buf})

	logger.Info("hello", FieldRows, 3)
	logger.WithComponent(ComponentReport).Debug("aggregated")

	out := buf.String()
	if !strings.Contains(out, "component=http") || !strings.Contains(out, "rows=3") {
		t.Fatalf("missing fields in %q", out)
	}
	if !strings.Contains(out, "component=report") {
		t.Fatalf("expected component override in %q", out)
	}
}

func TestMiddlewareStoresLogger(t *testing.T) {
	logger := New(Config{Component: ComponentHTTP, Output: &bytes.Buffer{}})

	var got *Logger
	h := Middleware(logger)(RequestIDMiddleware(func(*http.Request) string { return "req_1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.Component() != ComponentHTTP {
		t.Fatalf("expected http logger in context, got %+v", got)
	}
}

func TestFromContextFallback(t *testing.T) {
	if l := FromContext(context.Background()); l.Component() != "unknown" {
		t.Fatalf("expected fallback logger, got %q", l.Component())
	}
}

func TestLogFieldsToSlice(t *testing.T) {
	got := NewFields().
		WithOperation(OpUpload).
		WithUpload("abc", 42).
		WithError(errors.New("boom")).
		WithError(nil).
		ToSlice()

	want := []any{
		FieldError, "boom",
		FieldOperation, OpUpload,
		FieldUploadBytes, 42,
		FieldUploadID, "abc",
	}
	if len(got) != len(want) {
		t.Fatalf("ToSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ToSlice()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	var buf bytes.Buffer
	New(Config{Component: ComponentHTTP, Output: &buf}).Info("Upload stored", got...)
	if !strings.Contains(buf.String(), "upload_id=abc") || !strings.Contains(buf.String(), "operation=upload") {
		t.Fatalf("fields not rendered: %q", buf.String())
	}
}
