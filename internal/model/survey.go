package model

import "time"

// Survey is a form owned by an author. Question order is significant.
type Survey struct {
	ID          string     `json:"_id,omitempty" bson:"id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"`
	Owner       string     `json:"user,omitempty" bson:"owner,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Clone returns a deep copy so document operations never alias their input
func (s Survey) Clone() Survey {
	out := s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

// QuestionIndex returns the position of the question with the given id, or -1
func (s Survey) QuestionIndex(id string) int {
	for i, q := range s.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// SurveySummary is a list entry
type SurveySummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SurveyDraft is an author's unpublished copy of a survey
type SurveyDraft struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Owner       string    `json:"owner" bson:"owner"`
	Template    string    `json:"template,omitempty" bson:"template,omitempty"`
	PublishedID string    `json:"publishedId,omitempty" bson:"publishedId,omitempty"`
	Survey      Survey    `json:"survey" bson:"survey"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
