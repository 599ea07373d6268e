package service

import (
	"fmt"
	"strconv"

	"surveykit/internal/model"
)

const (
	TemplateCustomerSatisfaction = "customer-satisfaction"
	TemplatePartyInvitation      = "party-invitation"
)

// SurveyTemplate is a ready-made survey an author can start a draft from
type SurveyTemplate struct {
	Key    string       `json:"key"`
	Survey model.Survey `json:"survey"`
}

// Templates returns the built-in templates with fresh question ids
func Templates() []SurveyTemplate {
	return []SurveyTemplate{
		{Key: TemplateCustomerSatisfaction, Survey: customerSatisfaction()},
		{Key: TemplatePartyInvitation, Survey: partyInvitation()},
	}
}

// TemplateByKey looks up one built-in template
func TemplateByKey(key string) (model.Survey, error) {
	for _, t := range Templates() {
		if t.Key == key {
			return t.Survey, nil
		}
	}
	return model.Survey{}, fmt.Errorf("%w: template %q", model.ErrNotFound, key)
}

func customerSatisfaction() model.Survey {
	return model.Survey{
		Title:       "Customer Satisfaction Survey",
		Description: "Please fill out this customer satisfaction survey.",
		Questions: []model.Question{
			ratingQuestion("How satisfied are you with our product/service?", model.DefaultMaxRating),
			textQuestion("What did you like the most about our product/service?", model.QuestionTypeLongText),
			choiceQuestion("Would you recommend our product/service to others?", model.QuestionTypeMultipleChoice, "Yes", "No"),
			textQuestion("Any suggestions for improvement?", model.QuestionTypeLongText),
		},
	}
}

func partyInvitation() model.Survey {
	return model.Survey{
		Title:       "Party Invitation Form",
		Description: "Please fill out this party invitation form.",
		Questions: []model.Question{
			textQuestion("What is your name?", model.QuestionTypeShortText),
			choiceQuestion("Will you attend the party?", model.QuestionTypeMultipleChoice, "Yes", "No", "Maybe"),
			textQuestion("How many guests will you bring?", model.QuestionTypeShortText),
			textQuestion("Do you have any dietary preferences?", model.QuestionTypeLongText),
		},
	}
}

func textQuestion(text string, qt model.QuestionType) model.Question {
	return model.Question{ID: model.NewQuestionID(), Text: text, Type: qt}
}

func choiceQuestion(text string, qt model.QuestionType, options ...string) model.Question {
	return model.Question{
		ID:     model.NewQuestionID(),
		Text:   text,
		Type:   qt,
		Choice: &model.ChoiceSpec{Options: options},
	}
}

func ratingQuestion(text string, maxRating int) model.Question {
	return model.Question{
		ID:     model.NewQuestionID(),
		Text:   text,
		Type:   model.QuestionTypeRating,
		Rating: &model.RatingSpec{MaxRating: maxRating},
	}
}

var ratingLabels = map[int][]string{
	5: {"Very Dissatisfied", "Dissatisfied", "Neutral", "Satisfied", "Very Satisfied"},
	6: {"Very Dissatisfied", "Dissatisfied", "Neutral", "Satisfied", "Very Satisfied", "Extremely Satisfied"},
	7: {"Very Dissatisfied", "Dissatisfied", "Somewhat Dissatisfied", "Neutral", "Somewhat Satisfied", "Satisfied", "Very Satisfied"},
	8: {"Very Dissatisfied", "Dissatisfied", "Somewhat Dissatisfied", "Neutral", "Somewhat Satisfied", "Satisfied", "Very Satisfied", "Extremely Satisfied"},
	9: {"Very Dissatisfied", "Dissatisfied", "Somewhat Dissatisfied", "Neutral", "Slightly Satisfied", "Somewhat Satisfied", "Satisfied", "Very Satisfied", "Extremely Satisfied"},
	10: {"Very Dissatisfied", "Dissatisfied", "Somewhat Dissatisfied", "Slightly Dissatisfied", "Neutral",
		"Slightly Satisfied", "Somewhat Satisfied", "Satisfied", "Very Satisfied", "Extremely Satisfied"},
}

// RatingLabels returns the respondent-facing choices for a rating scale,
// e.g. "1 - Very Dissatisfied". Scales under 5 are plain numbers.
func RatingLabels(maxRating int) []string {
	out := make([]string, 0, maxRating)
	names, ok := ratingLabels[maxRating]
	for v := 1; v <= maxRating; v++ {
		if ok {
			out = append(out, fmt.Sprintf("%d - %s", v, names[v-1]))
		} else {
			out = append(out, strconv.Itoa(v))
		}
	}
	return out
}
