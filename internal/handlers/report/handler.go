package report

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// Provider exposes the report produced by the last grading run.
type Provider interface {
	GetReport() *domain.GradingReport
}

// ReportHandler handles report API requests
type ReportHandler struct {
	provider Provider
	logger   primary.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(provider Provider, logger primary.Logger) *ReportHandler {
	return &ReportHandler{
		provider: provider,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes for ReportHandler
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/report", h.GetReport).Methods("GET")
	router.HandleFunc("/api/report/submissions/{name}", h.GetSubmission).Methods("GET")
	router.HandleFunc("/healthz", h.Healthz).Methods("GET")
}

// GetReport returns the full report of the last grading run
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	rpt := h.provider.GetReport()
	if rpt == nil {
		http.Error(w, "No grading run completed yet", http.StatusNotFound)
		return
	}

	ResponseWithJson(w, http.StatusOK, rpt)
}

// GetSubmission returns a single submission's record
func (h *ReportHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	rpt := h.provider.GetReport()
	if rpt == nil {
		http.Error(w, "No grading run completed yet", http.StatusNotFound)
		return
	}

	vars := mux.Vars(r)
	name := vars["name"]
	for _, entry := range rpt.Results {
		if entry.Submission == name {
			ResponseWithJson(w, http.StatusOK, entry)
			return
		}
	}

	http.Error(w, "Submission not found", http.StatusNotFound)
}

// Healthz reports process liveness
func (h *ReportHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
