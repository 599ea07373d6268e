package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewQuestionID generates question identifiers. Tests may replace it.
var NewQuestionID = func() string {
	return uuid.New().String()
}

// ParseQuestion validates a raw question and returns the typed variant.
// Fields that do not belong to the variant are dropped.
func ParseQuestion(raw RawQuestion) (Question, error) {
	if !raw.Type.Valid() {
		return Question{}, &SchemaError{Field: "type", Reason: fmt.Sprintf("unknown type %q", raw.Type)}
	}

	q := Question{
		ID:   raw.ID,
		Text: raw.Question,
		Type: raw.Type,
	}
	if q.ID == "" {
		q.ID = NewQuestionID()
	}

	switch {
	case raw.Type.IsChoice():
		if len(raw.Options) == 0 {
			return Question{}, &SchemaError{Field: "options", Reason: "required for " + string(raw.Type)}
		}
		q.Choice = &ChoiceSpec{Options: append([]string{}, raw.Options...)}
	case raw.Type == QuestionTypeRating:
		maxRating := raw.MaxRating
		if maxRating == 0 {
			maxRating = DefaultMaxRating
		}
		if maxRating < MinMaxRating || maxRating > MaxMaxRating {
			return Question{}, &SchemaError{Field: "maxRating", Reason: fmt.Sprintf("%d outside [%d,%d]", maxRating, MinMaxRating, MaxMaxRating)}
		}
		q.Rating = &RatingSpec{MaxRating: maxRating}
	}

	return q, nil
}

// CheckQuestion re-validates an already typed question
func CheckQuestion(q Question) error {
	if !q.Type.Valid() {
		return &SchemaError{Field: "type", Reason: fmt.Sprintf("unknown type %q", q.Type)}
	}
	if q.Type.IsChoice() {
		if q.Choice == nil || len(q.Choice.Options) == 0 {
			return &SchemaError{Field: "options", Reason: "required for " + string(q.Type)}
		}
	} else if q.Choice != nil {
		return &SchemaError{Field: "options", Reason: "not allowed for " + string(q.Type)}
	}
	if q.Type == QuestionTypeRating {
		if q.Rating == nil || q.Rating.MaxRating < MinMaxRating || q.Rating.MaxRating > MaxMaxRating {
			return &SchemaError{Field: "maxRating", Reason: fmt.Sprintf("%d outside [%d,%d]", q.MaxRating(), MinMaxRating, MaxMaxRating)}
		}
	} else if q.Rating != nil {
		return &SchemaError{Field: "maxRating", Reason: "not allowed for " + string(q.Type)}
	}
	return nil
}

// ValidateAnswer checks a recorded value against the question's variant
func ValidateAnswer(q Question, v AnswerValue) error {
	bad := func(reason string) error {
		return &ValidationError{Problems: []string{fmt.Sprintf("question %q: %s", q.Text, reason)}}
	}

	switch q.Type {
	case QuestionTypeShortText, QuestionTypeLongText:
		if v.Kind != AnswerText {
			return bad("expected text")
		}
	case QuestionTypeDropdown, QuestionTypeCheckbox:
		if v.Kind != AnswerText {
			return bad("expected a single option")
		}
		if !contains(q.Options(), v.Text) {
			return bad(fmt.Sprintf("%q is not an option", v.Text))
		}
	case QuestionTypeMultipleChoice:
		if v.Kind != AnswerChoices {
			return bad("expected a set of options")
		}
		for _, c := range v.Choices {
			if !contains(q.Options(), c) {
				return bad(fmt.Sprintf("%q is not an option", c))
			}
		}
	case QuestionTypeRating:
		if v.Kind != AnswerRating {
			return bad("expected a rating")
		}
		if v.Rating < 1 || v.Rating > q.MaxRating() {
			return bad(fmt.Sprintf("rating %d outside [1,%d]", v.Rating, q.MaxRating()))
		}
	case QuestionTypeDate:
		if v.Kind != AnswerText {
			return bad("expected a date")
		}
		if _, err := time.Parse(time.DateOnly, v.Text); err != nil {
			return bad(fmt.Sprintf("%q is not a YYYY-MM-DD date", v.Text))
		}
	default:
		return &SchemaError{Field: "type", Reason: fmt.Sprintf("unknown type %q", q.Type)}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
