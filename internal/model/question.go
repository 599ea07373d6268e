package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeShortText      QuestionType = "short_text"
	QuestionTypeLongText       QuestionType = "long_text"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice" // Multi-select
	QuestionTypeCheckbox       QuestionType = "checkbox"        // Single choice
	QuestionTypeDropdown       QuestionType = "dropdown"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeDate           QuestionType = "date"
)

const (
	DefaultMaxRating = 5
	MinMaxRating     = 1
	MaxMaxRating     = 10
)

// QuestionTypes lists the closed set in display order
var QuestionTypes = []QuestionType{
	QuestionTypeShortText,
	QuestionTypeLongText,
	QuestionTypeMultipleChoice,
	QuestionTypeCheckbox,
	QuestionTypeDropdown,
	QuestionTypeRating,
	QuestionTypeDate,
}

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsChoice reports whether the type carries an options list
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeCheckbox || t == QuestionTypeDropdown
}

// IsText reports whether answers are free text
func (t QuestionType) IsText() bool {
	return t == QuestionTypeShortText || t == QuestionTypeLongText
}

// Label returns the author-facing name of the type
func (t QuestionType) Label() string {
	switch t {
	case QuestionTypeShortText:
		return "Short Text"
	case QuestionTypeLongText:
		return "Long Text"
	case QuestionTypeMultipleChoice:
		return "Multiple Choice"
	case QuestionTypeCheckbox:
		return "Checkbox"
	case QuestionTypeDropdown:
		return "Dropdown"
	case QuestionTypeRating:
		return "Rating"
	case QuestionTypeDate:
		return "Date"
	}
	return string(t)
}

// ChoiceSpec holds the fields only choice questions have
type ChoiceSpec struct {
	Options []string
}

// RatingSpec holds the fields only rating questions have
type RatingSpec struct {
	MaxRating int
}

// Question is one entry of a survey form. Choice is set only for choice
// types and Rating only for rating; the schema parser keeps that true.
type Question struct {
	ID     string
	Text   string
	Type   QuestionType
	Choice *ChoiceSpec
	Rating *RatingSpec
}

// Options returns the choice options, nil for non-choice questions
func (q Question) Options() []string {
	if q.Choice == nil {
		return nil
	}
	return q.Choice.Options
}

// MaxRating returns the rating scale, 0 for non-rating questions
func (q Question) MaxRating() int {
	if q.Rating == nil {
		return 0
	}
	return q.Rating.MaxRating
}

// Clone returns a deep copy
func (q Question) Clone() Question {
	out := q
	if q.Choice != nil {
		out.Choice = &ChoiceSpec{Options: append([]string{}, q.Choice.Options...)}
	}
	if q.Rating != nil {
		r := *q.Rating
		out.Rating = &r
	}
	return out
}

// RawQuestion is the loosely typed wire shape exchanged with the survey API
type RawQuestion struct {
	ID        string       `json:"_id,omitempty" bson:"id,omitempty"`
	Question  string       `json:"question" bson:"question"`
	Type      QuestionType `json:"type" bson:"type"`
	Options   []string     `json:"options" bson:"options"`
	MaxRating int          `json:"maxRating" bson:"maxRating"`
}

// Raw converts the question to its wire shape
func (q Question) Raw() RawQuestion {
	raw := RawQuestion{
		ID:        q.ID,
		Question:  q.Text,
		Type:      q.Type,
		Options:   []string{},
		MaxRating: DefaultMaxRating,
	}
	if q.Choice != nil {
		raw.Options = append(raw.Options, q.Choice.Options...)
	}
	if q.Rating != nil {
		raw.MaxRating = q.Rating.MaxRating
	}
	return raw
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Raw())
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw RawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseQuestion(raw)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func (q Question) MarshalBSON() ([]byte, error) {
	return bson.Marshal(q.Raw())
}

func (q *Question) UnmarshalBSON(data []byte) error {
	var raw RawQuestion
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseQuestion(raw)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
