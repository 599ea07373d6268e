package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"surveykit/internal/model"
	"surveykit/internal/service"
	"surveykit/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// DraftHandler handles author draft endpoints
type DraftHandler struct {
	draftSvc DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftSvc DraftService) *DraftHandler {
	return &DraftHandler{draftSvc: draftSvc}
}

// CreateDraftRequest is the request body for starting a draft
type CreateDraftRequest struct {
	Template string `json:"template,omitempty"`
}

// DraftMetaRequest is the request body for PATCH /v1/admin/drafts/{id}
type DraftMetaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FieldUpdateRequest sets one question attribute
type FieldUpdateRequest struct {
	Field service.QuestionField `json:"field"`
	Value json.RawMessage       `json:"value"`
}

// OptionRequest carries one option text
type OptionRequest struct {
	Value string `json:"value"`
}

// Create handles POST /v1/admin/drafts
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	draft, err := h.draftSvc.Create(r.Context(), middleware.GetSession(r.Context()), req.Template)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

// List handles GET /v1/admin/drafts
func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.draftSvc.List(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if drafts == nil {
		drafts = []*model.SurveyDraft{}
	}
	writeJSON(w, http.StatusOK, drafts)
}

// Get handles GET /v1/admin/drafts/{id}
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftSvc.Get(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	respond(w, draft, err)
}

// Delete handles DELETE /v1/admin/drafts/{id}
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.draftSvc.Delete(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMeta handles PATCH /v1/admin/drafts/{id}
func (h *DraftHandler) SetMeta(w http.ResponseWriter, r *http.Request) {
	var req DraftMetaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	draft, err := h.draftSvc.SetMeta(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], req.Title, req.Description)
	respond(w, draft, err)
}

// AddQuestion handles POST /v1/admin/drafts/{id}/questions
func (h *DraftHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftSvc.AddQuestion(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	respond(w, draft, err)
}

// RemoveQuestion handles DELETE /v1/admin/drafts/{id}/questions/{index}
func (h *DraftHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	draft, err := h.draftSvc.RemoveQuestion(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index)
	respond(w, draft, err)
}

// UpdateQuestionField handles PATCH /v1/admin/drafts/{id}/questions/{index}
func (h *DraftHandler) UpdateQuestionField(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var req FieldUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	value, err := fieldValue(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	draft, err := h.draftSvc.UpdateQuestionField(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index, req.Field, value)
	respond(w, draft, err)
}

// ReplaceQuestion handles PUT /v1/admin/drafts/{id}/questions/{index}
func (h *DraftHandler) ReplaceQuestion(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var raw model.RawQuestion
	if !decodeBody(w, r, &raw) {
		return
	}
	draft, err := h.draftSvc.ReplaceQuestion(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index, raw)
	respond(w, draft, err)
}

// AddOption handles POST /v1/admin/drafts/{id}/questions/{index}/options
func (h *DraftHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	draft, err := h.draftSvc.AddOption(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index)
	respond(w, draft, err)
}

// UpdateOption handles PUT /v1/admin/drafts/{id}/questions/{index}/options/{option}
func (h *DraftHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	option, ok := pathInt(w, r, "option")
	if !ok {
		return
	}
	var req OptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	draft, err := h.draftSvc.UpdateOption(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index, option, req.Value)
	respond(w, draft, err)
}

// RemoveOption handles DELETE /v1/admin/drafts/{id}/questions/{index}/options/{option}
func (h *DraftHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	option, ok := pathInt(w, r, "option")
	if !ok {
		return
	}
	draft, err := h.draftSvc.RemoveOption(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"], index, option)
	respond(w, draft, err)
}

// Publish handles POST /v1/admin/drafts/{id}/publish
func (h *DraftHandler) Publish(w http.ResponseWriter, r *http.Request) {
	survey, err := h.draftSvc.Publish(r.Context(), middleware.GetSession(r.Context()), mux.Vars(r)["id"])
	respond(w, survey, err)
}

// fieldValue decodes the raw value into the Go type the field expects
func fieldValue(req FieldUpdateRequest) (interface{}, error) {
	var err error
	switch req.Field {
	case service.FieldText, service.FieldType:
		var s string
		if err = json.Unmarshal(req.Value, &s); err == nil {
			return s, nil
		}
	case service.FieldOptions:
		var options []string
		if err = json.Unmarshal(req.Value, &options); err == nil {
			return options, nil
		}
	case service.FieldMaxRating:
		var n int
		if err = json.Unmarshal(req.Value, &n); err == nil {
			return n, nil
		}
	default:
		return nil, &model.SchemaError{Field: string(req.Field), Reason: "unknown field"}
	}
	return nil, &model.SchemaError{Field: string(req.Field), Reason: "unexpected value " + string(req.Value)}
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func respond(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
