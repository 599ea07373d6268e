package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"surveykit/internal/model"
	"surveykit/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// List handles GET /v1/surveys
// @Summary List published surveys
// @Tags surveys
// @Produce json
// @Success 200 {array} model.SurveySummary
// @Router /surveys [get]
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.List(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if surveys == nil {
		surveys = []model.SurveySummary{}
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Get handles GET /v1/surveys/{id}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.GetByID(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// ListMine handles GET /v1/admin/surveys/mine
func (h *SurveyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.ListMine(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if surveys == nil {
		surveys = []model.Survey{}
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Create handles POST /v1/admin/surveys
// @Summary Create a survey
// @Tags admin
// @Accept json
// @Produce json
// @Param body body model.Survey true "survey"
// @Success 201 {object} model.Survey
// @Failure 400 {object} map[string]string
// @Router /admin/surveys [post]
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var survey model.Survey
	if !decodeBody(w, r, &survey) {
		return
	}

	created, err := h.surveySvc.Create(r.Context(), middleware.GetSession(r.Context()), survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/surveys/{id}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var survey model.Survey
	if !decodeBody(w, r, &survey) {
		return
	}
	survey.ID = mux.Vars(r)["id"]

	updated, err := h.surveySvc.Update(r.Context(), middleware.GetSession(r.Context()), survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/surveys/{id}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Delete(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reports schema failures raised while decoding questions as
// such, anything else as a bad body
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, model.ErrSchema) || errors.Is(err, model.ErrValidation) {
			writeServiceError(w, err)
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}
