package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusCreated).
		Body([]byte("test")).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if w.Body.String() != "test" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "test")
	}
}

func TestResponseBuilder_TriggersAndRedirect(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		HXRedirect("/reports/abc?income=1150").
		TriggerErrorNotification("Test message").
		Write(w)

	if got := w.Header().Get("HX-Redirect"); got != "/reports/abc?income=1150" {
		t.Errorf("HX-Redirect = %q", got)
	}
	trigger := w.Header().Get("HX-Trigger")
	for _, part := range []string{`"show-notification"`, `"type":"error"`, `"message":"Test message"`} {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestResponseBuilder_NoTriggerHeaderWhenEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().Write(w)
	if w.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger should not be set without triggers")
	}
}

func TestResponseBuilder_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().JSON(map[string]float64{"total": 12.5}).Write(w)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != `{"total":12.5}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestResponseBuilder_JSONEncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().JSON(map[string]interface{}{"ch": make(chan int)}).Write(w)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", w.Code)
	}
}

func TestErrorResponse_EscapesHTML(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusUnprocessableEntity, "<script>alert(1)</script>").Write(w)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Errorf("missing error wrapper: %s", body)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(http.StatusBadRequest, "bad").Write(w)
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"bad"}` {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
}
