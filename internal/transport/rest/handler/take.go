package handler

import (
	"errors"
	"net/http"

	"surveykit/internal/model"
	"surveykit/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// TakeHandler handles survey taking endpoints
type TakeHandler struct {
	responseSvc ResponseService
}

// NewTakeHandler creates a new take handler
func NewTakeHandler(responseSvc ResponseService) *TakeHandler {
	return &TakeHandler{responseSvc: responseSvc}
}

// AnswerRequest sets the answer at one position
type AnswerRequest struct {
	Answer model.AnswerValue `json:"answer"`
}

// ToggleRequest flips one option of a multi-select answer
type ToggleRequest struct {
	Option string `json:"option"`
}

// DraftAnswersResponse echoes the answers collected so far
type DraftAnswersResponse struct {
	DraftKey string                    `json:"draftKey"`
	Answers  map[int]model.AnswerValue `json:"answers"`
}

// Begin handles GET /v1/surveys/{id}/take
func (h *TakeHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.responseSvc.Begin(ctx, middleware.GetSession(ctx), mux.Vars(r)["id"], middleware.GetDraftKey(ctx))
	respond(w, view, err)
}

// SetAnswer handles PUT /v1/surveys/{id}/take/answers/{position}
func (h *TakeHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	position, ok := pathInt(w, r, "position")
	if !ok {
		return
	}
	var req AnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	key := middleware.GetDraftKey(ctx)
	answers, err := h.responseSvc.SetAnswer(ctx, middleware.GetSession(ctx), mux.Vars(r)["id"], key, position, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DraftAnswersResponse{DraftKey: key, Answers: answers})
}

// Toggle handles POST /v1/surveys/{id}/take/answers/{position}/toggle
func (h *TakeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	position, ok := pathInt(w, r, "position")
	if !ok {
		return
	}
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	key := middleware.GetDraftKey(ctx)
	answers, err := h.responseSvc.Toggle(ctx, middleware.GetSession(ctx), mux.Vars(r)["id"], key, position, req.Option)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DraftAnswersResponse{DraftKey: key, Answers: answers})
}

// Submit handles POST /v1/surveys/{id}/take/submit
// @Summary Submit the collected answers
// @Tags take
// @Produce json
// @Param X-Draft-Key header string false "anonymous draft key"
// @Success 200 {object} model.SubmissionBatch
// @Failure 401 {object} map[string]string
// @Router /surveys/{id}/take/submit [post]
func (h *TakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	batch, err := h.responseSvc.Submit(ctx, middleware.GetSession(ctx), mux.Vars(r)["id"], middleware.GetDraftKey(ctx))
	if errors.Is(err, model.ErrAuthRequired) {
		// answers stay cached under the draft key until the retry
		middleware.Unauthorized(w, "log in to submit your answers")
		return
	}
	respond(w, batch, err)
}
