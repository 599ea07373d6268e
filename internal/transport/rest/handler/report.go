package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"surveykit/internal/model"
	"surveykit/internal/service"
	"surveykit/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ReportHandler handles response listing, charts and feedback
type ReportHandler struct {
	reportSvc ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// FeedbackResponse lists feedback, or says why there is none
type FeedbackResponse struct {
	Feedback []model.Feedback `json:"feedback"`
	Message  string           `json:"message,omitempty"`
}

// Responses handles GET /v1/admin/surveys/{id}/responses
func (h *ReportHandler) Responses(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportSvc.Responses(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	respond(w, view, err)
}

// Charts handles GET /v1/admin/surveys/{id}/charts
func (h *ReportHandler) Charts(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportSvc.RatingCharts(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	if errors.Is(err, model.ErrServer) || errors.Is(err, model.ErrNetwork) {
		// charts degrade to empty; the failure went out as a notification
		writeJSON(w, http.StatusOK, service.ChartsView{Source: "none", Charts: []model.RatingChart{}})
		return
	}
	respond(w, view, err)
}

// UserRatings handles GET /v1/admin/surveys/{id}/user-ratings?order=
func (h *ReportHandler) UserRatings(w http.ResponseWriter, r *http.Request) {
	order, err := service.ParseRespondentOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	series, err := h.reportSvc.UserRatings(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if series == nil {
		series = []model.RespondentSeriesPoint{}
	}
	writeJSON(w, http.StatusOK, series)
}

// ExportCSV handles GET /v1/admin/surveys/{id}/responses.csv
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// buffer so a failed fetch can still become a JSON error
	var buf bytes.Buffer
	if err := h.reportSvc.ExportCSV(r.Context(), middleware.GetSession(r.Context()), id, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "responses-"+id+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Answered handles GET /v1/me/answered
func (h *ReportHandler) Answered(w http.ResponseWriter, r *http.Request) {
	records, err := h.reportSvc.Answered(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []model.SubmissionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Feedback handles GET /v1/me/feedback
func (h *ReportHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.reportSvc.Feedback(r.Context(), middleware.GetSession(r.Context()))
	if errors.Is(err, model.ErrNoRatingSurveys) {
		writeJSON(w, http.StatusOK, FeedbackResponse{Feedback: []model.Feedback{}, Message: model.NoRatingSurveysMessage})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FeedbackResponse{Feedback: feedback})
}
