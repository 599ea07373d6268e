package handler

import (
	"net/http"

	"surveykit/internal/model"
	"surveykit/internal/service"
)

// TemplateResponse is one built-in template with its rendered rating labels
type TemplateResponse struct {
	service.SurveyTemplate
	RatingLabels map[int][]string `json:"ratingLabels,omitempty"`
}

// Templates handles GET /v1/templates
func Templates(w http.ResponseWriter, r *http.Request) {
	templates := service.Templates()
	out := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp := TemplateResponse{SurveyTemplate: t}
		for i, q := range t.Survey.Questions {
			if q.Type == model.QuestionTypeRating {
				if resp.RatingLabels == nil {
					resp.RatingLabels = map[int][]string{}
				}
				resp.RatingLabels[i] = service.RatingLabels(q.MaxRating())
			}
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}
