package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// AnswerKind tags what an AnswerValue holds
type AnswerKind int

const (
	AnswerNone    AnswerKind = iota
	AnswerText               // text, dropdown, checkbox, date
	AnswerChoices            // multiple_choice
	AnswerRating             // rating
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerText:
		return "text"
	case AnswerChoices:
		return "choices"
	case AnswerRating:
		return "rating"
	}
	return "none"
}

// AnswerValue is a respondent's value for one question. On the wire it is a
// string, an array of strings or a number.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Choices []string
	Rating  int
}

func TextAnswer(s string) AnswerValue { return AnswerValue{Kind: AnswerText, Text: s} }

func ChoicesAnswer(c ...string) AnswerValue {
	return AnswerValue{Kind: AnswerChoices, Choices: append([]string{}, c...)}
}

func RatingAnswer(n int) AnswerValue { return AnswerValue{Kind: AnswerRating, Rating: n} }

// IsZero reports whether no value was recorded
func (v AnswerValue) IsZero() bool { return v.Kind == AnswerNone }

// IsNumeric reports whether the value counts toward rating totals
func (v AnswerValue) IsNumeric() bool { return v.Kind == AnswerRating }

// Clone returns a copy that shares no slice with v
func (v AnswerValue) Clone() AnswerValue {
	if v.Choices != nil {
		v.Choices = append([]string{}, v.Choices...)
	}
	return v
}

// String renders the value for exports and logs
func (v AnswerValue) String() string {
	switch v.Kind {
	case AnswerText:
		return v.Text
	case AnswerChoices:
		var buf bytes.Buffer
		for i, c := range v.Choices {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(c)
		}
		return buf.String()
	case AnswerRating:
		return fmt.Sprintf("%d", v.Rating)
	}
	return ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerChoices:
		if v.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Choices)
	case AnswerRating:
		return json.Marshal(v.Rating)
	}
	return []byte("null"), nil
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
	case '[':
		var c []string
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = AnswerValue{Kind: AnswerChoices, Choices: c}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("answer must be a string, array or number: %w", err)
		}
		if n != math.Trunc(n) {
			return fmt.Errorf("rating answer %v is not an integer", n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("rating answer %v is out of range", n)
		}
		*v = RatingAnswer(int(n))
	}
	return nil
}

// Answer is one submitted entry keyed by the question's stable id
type Answer struct {
	QuestionID string      `json:"questionId"`
	Answer     AnswerValue `json:"answer"`
}

// SubmissionBatch is the immutable payload sent once per respondent
type SubmissionBatch struct {
	SurveyID string   `json:"-"`
	Answers  []Answer `json:"answers"`
	User     string   `json:"user"`
}

// DraftAnswers is an in-progress submission kept across requests
type DraftAnswers struct {
	SurveyID  string              `json:"surveyId"`
	DraftKey  string              `json:"draftKey"`
	Answers   map[int]AnswerValue `json:"answers"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
