package service

import (
	"fmt"
	"strings"

	"surveykit/internal/model"
)

// QuestionField names the single attribute UpdateQuestionField replaces
type QuestionField string

const (
	FieldText      QuestionField = "question"
	FieldType      QuestionField = "type"
	FieldOptions   QuestionField = "options"
	FieldMaxRating QuestionField = "maxRating"
)

// NewQuestion returns the default-shaped question the author form starts with
func NewQuestion() model.Question {
	return model.Question{
		ID:   model.NewQuestionID(),
		Type: model.QuestionTypeShortText,
	}
}

// AddQuestion appends a default question
func AddQuestion(s model.Survey) model.Survey {
	out := s.Clone()
	out.Questions = append(out.Questions, NewQuestion())
	return out
}

// RemoveQuestion excises the question at index. Later questions shift down,
// so it must not be used once answers correlate by position.
func RemoveQuestion(s model.Survey, index int) (model.Survey, error) {
	if err := checkQuestionIndex(s, index); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Questions = append(out.Questions[:index], out.Questions[index+1:]...)
	return out, nil
}

// UpdateQuestionField replaces one attribute of the question at index
func UpdateQuestionField(s model.Survey, index int, field QuestionField, value interface{}) (model.Survey, error) {
	if err := checkQuestionIndex(s, index); err != nil {
		return s, err
	}

	out := s.Clone()
	q := out.Questions[index]

	switch field {
	case FieldText:
		text, ok := value.(string)
		if !ok {
			return s, wrongValue(field, value)
		}
		q.Text = text

	case FieldType:
		qt, ok := asQuestionType(value)
		if !ok {
			return s, wrongValue(field, value)
		}
		q = retype(q, qt)

	case FieldOptions:
		options, ok := value.([]string)
		if !ok {
			return s, wrongValue(field, value)
		}
		if !q.Type.IsChoice() {
			return s, &model.SchemaError{Field: string(field), Reason: "not allowed for " + string(q.Type)}
		}
		q.Choice = &model.ChoiceSpec{Options: append([]string{}, options...)}

	case FieldMaxRating:
		maxRating, ok := value.(int)
		if !ok {
			return s, wrongValue(field, value)
		}
		if q.Type != model.QuestionTypeRating {
			return s, &model.SchemaError{Field: string(field), Reason: "not allowed for " + string(q.Type)}
		}
		q.Rating = &model.RatingSpec{MaxRating: maxRating}

	default:
		return s, &model.SchemaError{Field: string(field), Reason: "unknown field"}
	}

	if err := model.CheckQuestion(q); err != nil {
		return s, err
	}
	out.Questions[index] = q
	return out, nil
}

// ReplaceQuestion re-parses a whole question in place and keeps its id
func ReplaceQuestion(s model.Survey, index int, raw model.RawQuestion) (model.Survey, error) {
	if err := checkQuestionIndex(s, index); err != nil {
		return s, err
	}
	raw.ID = s.Questions[index].ID
	q, err := model.ParseQuestion(raw)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	out.Questions[index] = q
	return out, nil
}

// AddOption appends an empty option to a choice question
func AddOption(s model.Survey, index int) (model.Survey, error) {
	if err := checkQuestionIndex(s, index); err != nil {
		return s, err
	}
	out := s.Clone()
	q := out.Questions[index]
	if q.Choice == nil {
		return s, &model.SchemaError{Field: string(FieldOptions), Reason: "not allowed for " + string(q.Type)}
	}
	q.Choice.Options = append(q.Choice.Options, "")
	out.Questions[index] = q
	return out, nil
}

// UpdateOption replaces one option of a choice question
func UpdateOption(s model.Survey, index, option int, value string) (model.Survey, error) {
	if err := checkOptionIndex(s, index, option); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Questions[index].Choice.Options[option] = value
	return out, nil
}

// RemoveOption drops one option; a choice question keeps at least one
func RemoveOption(s model.Survey, index, option int) (model.Survey, error) {
	if err := checkOptionIndex(s, index, option); err != nil {
		return s, err
	}
	out := s.Clone()
	q := out.Questions[index]
	if len(q.Choice.Options) == 1 {
		return s, &model.SchemaError{Field: string(FieldOptions), Reason: "required for " + string(q.Type)}
	}
	q.Choice.Options = append(q.Choice.Options[:option], q.Choice.Options[option+1:]...)
	out.Questions[index] = q
	return out, nil
}

// ValidateSurvey checks a survey is complete enough to send to the API
func ValidateSurvey(s model.Survey) error {
	var problems []string
	if strings.TrimSpace(s.Title) == "" {
		problems = append(problems, "title is required")
	}
	if len(s.Questions) == 0 {
		problems = append(problems, "at least one question is required")
	}
	for i, q := range s.Questions {
		if strings.TrimSpace(q.Text) == "" {
			problems = append(problems, fmt.Sprintf("question %d: text is required", i+1))
		}
		if err := model.CheckQuestion(q); err != nil {
			problems = append(problems, fmt.Sprintf("question %d: %v", i+1, err))
		}
	}
	if len(problems) > 0 {
		return &model.ValidationError{Problems: problems}
	}
	return nil
}

// retype converts a question to another variant, carrying over what fits
func retype(q model.Question, qt model.QuestionType) model.Question {
	out := model.Question{ID: q.ID, Text: q.Text, Type: qt}
	switch {
	case qt.IsChoice():
		if q.Choice != nil {
			out.Choice = &model.ChoiceSpec{Options: q.Choice.Options}
		} else {
			out.Choice = &model.ChoiceSpec{}
		}
	case qt == model.QuestionTypeRating:
		if q.Rating != nil {
			out.Rating = q.Rating
		} else {
			out.Rating = &model.RatingSpec{MaxRating: model.DefaultMaxRating}
		}
	}
	return out
}

func asQuestionType(v interface{}) (model.QuestionType, bool) {
	switch t := v.(type) {
	case model.QuestionType:
		return t, true
	case string:
		return model.QuestionType(t), true
	}
	return "", false
}

func wrongValue(field QuestionField, v interface{}) error {
	return &model.SchemaError{Field: string(field), Reason: fmt.Sprintf("unexpected value %T", v)}
}

func checkQuestionIndex(s model.Survey, index int) error {
	if index < 0 || index >= len(s.Questions) {
		return &model.IndexError{What: "question", Index: index, Len: len(s.Questions)}
	}
	return nil
}

func checkOptionIndex(s model.Survey, index, option int) error {
	if err := checkQuestionIndex(s, index); err != nil {
		return err
	}
	options := s.Questions[index].Options()
	if option < 0 || option >= len(options) {
		return &model.IndexError{What: "option", Index: option, Len: len(options)}
	}
	return nil
}
