package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"policy-illustrator/domain"
	"policy-illustrator/report"
	"policy-illustrator/service"
)

const maxBodyBytes = 1 << 16

type IllustrationHandler struct {
	service    *service.IllustrationService
	comparison *service.PayTermComparisonService
	log        *zap.Logger
}

func NewIllustrationHandler(
	svc *service.IllustrationService,
	comparison *service.PayTermComparisonService,
	log *zap.Logger,
) *IllustrationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &IllustrationHandler{service: svc, comparison: comparison, log: log}
}

func (h *IllustrationHandler) decode(w http.ResponseWriter, r *http.Request) (domain.ProjectionRequest, bool) {
	var req domain.ProjectionRequest
	if !requireJSON(w, r) {
		return req, false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.log.Debug("invalid request body", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeJSON(w, r, h.log, http.StatusBadRequest, errorResponse{
			Error:     "invalid request body: " + err.Error(),
			RequestID: RequestIDFrom(r.Context()),
		})
		return req, false
	}
	return req, true
}

// Illustrate handles POST /illustrations.
func (h *IllustrationHandler) Illustrate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	result, err := h.service.Illustrate(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, h.log, http.StatusOK, result)
}

// Compare handles POST /illustrations/compare.
func (h *IllustrationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	result, err := h.comparison.Compare(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, h.log, http.StatusOK, result)
}

// ReportPDF handles POST /illustrations/report.pdf.
func (h *IllustrationHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/pdf", "pdf", func(buf *bytes.Buffer, req domain.ProjectionRequest, res domain.ProjectionResult) error {
		return report.WritePDF(buf, req, res)
	})
}

// ReportCSV handles POST /illustrations/report.csv.
func (h *IllustrationHandler) ReportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv; charset=utf-8", "csv", func(buf *bytes.Buffer, req domain.ProjectionRequest, res domain.ProjectionResult) error {
		return report.WriteCSV(buf, req.Age, res)
	})
}

func (h *IllustrationHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	contentType, ext string,
	render func(*bytes.Buffer, domain.ProjectionRequest, domain.ProjectionResult) error,
) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	result, err := h.service.Illustrate(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, req, result); err != nil {
		writeError(w, r, h.log, fmt.Errorf("render %s: %w", ext, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="illustration.%s"`, ext))
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn("write report", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
	}
}
