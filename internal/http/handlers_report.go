package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spending/internal/core"
	"spending/internal/log"
	"spending/internal/report"
)

const (
	msgProcessingError = "Processing error: the file could not be read as a bank export."
	msgUploadNotFound  = "This upload has expired or does not exist. Please upload the file again."
	msgInternalError   = "Something went wrong. Please try again."
)

// handleUpload stores an uploaded CSV and redirects to its report page. The
// file is aggregated once here so a broken export is rejected before it is
// kept.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	upload, params, ok := s.readReportRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.aggregate(ctx, upload.Data, params); err != nil {
		s.writeAggregateError(w, r, err)
		return
	}

	id := uuid.NewString()
	s.uploads.Set(id, upload.Data)

	fields := log.NewFields().WithOperation(log.OpUpload).WithUpload(id, len(upload.Data))
	logger.InfoContext(ctx, "Upload stored", append(fields.ToSlice(), log.FieldFileName, upload.FileName)...)

	location := "/reports/" + id + "?" + params.Query().Encode()
	if isHTMX(r) {
		NewResponse().HXRedirect(location).Write(w)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// handleReport re-runs the aggregation for a stored upload with the query
// parameters and renders the dashboard.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, params, rep, ok := s.reportFromStore(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "report.html", newReportView(id, params, rep))
}

// handleReportJSON is handleReport for API clients.
func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	id, params, rep, ok := s.reportFromStore(w, r)
	if !ok {
		return
	}
	NewResponse().JSON(newReportResponse(id, params, rep)).Write(w)
}

// handleCreateReportJSON aggregates an upload in one shot without storing it.
func (s *Server) handleCreateReportJSON(w http.ResponseWriter, r *http.Request) {
	upload, params, ok := s.readReportRequest(w, r)
	if !ok {
		return
	}

	rep, err := s.aggregate(r.Context(), upload.Data, params)
	if err != nil {
		s.writeAggregateError(w, r, err)
		return
	}
	NewResponse().JSON(newReportResponse("", params, rep)).Write(w)
}

func (s *Server) readReportRequest(w http.ResponseWriter, r *http.Request) (Upload, ReportParams, bool) {
	logger := log.FromContext(r.Context())

	upload, err := ReadUpload(w, r, s.opts.MaxUploadBytes)
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		logger.WarnContext(r.Context(), "Upload rejected", log.NewFields().WithOperation(log.OpUpload).WithError(err).ToSlice()...)
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "The file is too large.")
		return Upload{}, ReportParams{}, false
	case errors.Is(err, ErrMissingFile):
		s.writeError(w, r, http.StatusBadRequest, "Please choose a CSV file to upload.")
		return Upload{}, ReportParams{}, false
	case err != nil:
		logger.WarnContext(r.Context(), "Upload rejected", log.NewFields().WithOperation(log.OpUpload).WithError(err).ToSlice()...)
		s.writeError(w, r, http.StatusBadRequest, "The upload could not be read.")
		return Upload{}, ReportParams{}, false
	}

	params, err := ParseReportParams(r.PostForm, s.opts.DefaultIncome)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return Upload{}, ReportParams{}, false
	}

	return upload, params, true
}

func (s *Server) reportFromStore(w http.ResponseWriter, r *http.Request) (string, ReportParams, core.SpendingReport, bool) {
	id := chi.URLParam(r, "id")
	data, found := s.uploads.Get(id)
	if !found {
		s.writeError(w, r, http.StatusNotFound, msgUploadNotFound)
		return "", ReportParams{}, core.SpendingReport{}, false
	}

	params, err := ParseReportParams(r.URL.Query(), s.opts.DefaultIncome)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return "", ReportParams{}, core.SpendingReport{}, false
	}

	rep, err := s.aggregate(r.Context(), data, params)
	if err != nil {
		s.writeAggregateError(w, r, err)
		return "", ReportParams{}, core.SpendingReport{}, false
	}

	return id, params, rep, true
}

func (s *Server) aggregate(ctx context.Context, data []byte, params ReportParams) (core.SpendingReport, error) {
	log.FromContext(ctx).DebugContext(ctx, "Aggregating upload",
		log.FieldOperation, log.OpAggregate,
		log.FieldUploadBytes, len(data),
		log.FieldStartDate, params.StartISO(),
		log.FieldEndDate, params.EndISO())

	return report.Aggregate(bytes.NewReader(data), params.Income, params.Start, params.End)
}

// writeAggregateError maps a failed aggregation to a response. Row details
// are logged and never shown to the user.
func (s *Server) writeAggregateError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.FromContext(r.Context())

	var pe *core.ParseError
	if errors.As(err, &pe) {
		logger.WarnContext(r.Context(), "Aggregation failed",
			log.FieldOperation, log.OpAggregate,
			log.FieldErrorKind, pe.Kind.String(),
			log.FieldLine, pe.Line,
			log.FieldError, err)
		s.writeError(w, r, http.StatusUnprocessableEntity, msgProcessingError)
		return
	}

	logger.ErrorContext(r.Context(), "Aggregation failed",
		log.FieldOperation, log.OpAggregate,
		log.FieldError, err)
	s.writeError(w, r, http.StatusInternalServerError, msgInternalError)
}
