package http

import (
	"bytes"
	"net/http"
	"time"

	"spending/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady reports whether templates loaded and how full the upload
// store is.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	checks["uploads"] = map[string]interface{}{
		"entries": s.uploads.Len(),
		"status":  "ok",
	}

	if s.limiter != nil {
		checks["rate_limiter"] = map[string]interface{}{
			"active_clients": s.limiter.ActiveClients(),
			"status":         "ok",
		}
	}

	NewResponse().Status(httpStatus).JSON(map[string]interface{}{
		"status":         status,
		"timestamp":      time.Now().Format(time.RFC3339),
		"requests_total": s.trace.TotalRequests(),
		"checks":         checks,
	}).Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index.html", indexView{
		DefaultIncome: s.opts.DefaultIncome.String(),
		MaxUploadMB:   s.opts.MaxUploadBytes >> 20,
	})
}

// render executes a named template into a buffer so a failing template never
// produces a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTemplate)

	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldOperation, log.OpRender)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldOperation, log.OpRender,
			"template", name,
			log.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	NewResponse().Status(status).BodyHTML(buf.String()).Write(w)
}

// writeError answers in the shape the caller expects: JSON for the API, an
// HTML fragment for htmx and a full page otherwise.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	switch {
	case wantsJSON(r):
		JSONError(status, message).Write(w)
	case isHTMX(r):
		ErrorResponse(status, message).TriggerErrorNotification(message).Write(w)
	default:
		s.render(w, r, status, "error.html", errorView{
			Status:  status,
			Title:   http.StatusText(status),
			Message: message,
		})
	}
}
