package model

import "time"

// RespondentAnswer is one user's value inside a ResponseRecord
type RespondentAnswer struct {
	User   string      `json:"user"`
	Answer AnswerValue `json:"answer"`
}

// ResponseRecord is the per-question raw answer list returned for a survey
type ResponseRecord struct {
	QuestionID string             `json:"questionId,omitempty"`
	Question   string             `json:"question"`
	Type       QuestionType       `json:"type"`
	Options    []string           `json:"options"`
	MaxRating  int                `json:"maxRating,omitempty"`
	Answers    []RespondentAnswer `json:"answers"`
}

// AnsweredQuestion is one row of a respondent's grouped answers
type AnsweredQuestion struct {
	Question string       `json:"question"`
	Answer   AnswerValue  `json:"answer"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options"`
}

// RespondentAnswers is one bucket of the group-by-respondent view
type RespondentAnswers struct {
	Respondent string             `json:"respondent"`
	Answers    []AnsweredQuestion `json:"answers"`
}

// SubmittedAnswer is one entry of a SubmissionRecord
type SubmittedAnswer struct {
	Question  string       `json:"question"`
	Type      QuestionType `json:"type"`
	Options   []string     `json:"options"`
	Answer    AnswerValue  `json:"answer"`
	User      string       `json:"user"`
	MaxRating int          `json:"maxRating"`
}

// SubmissionRecord is one respondent's answered survey as the API returns it
type SubmissionRecord struct {
	SurveyTitle       string            `json:"surveyTitle"`
	SurveyDescription string            `json:"surveyDescription"`
	SubmittedAt       time.Time         `json:"submittedAt"`
	Answers           []SubmittedAnswer `json:"answers"`
}
