package model

import "time"

// RatingQuestionAggregate counts how often each rating value was chosen
type RatingQuestionAggregate struct {
	QuestionID string      `json:"questionId,omitempty"`
	Question   string      `json:"question"`
	MaxRating  int         `json:"maxRating,omitempty"`
	Ratings    map[int]int `json:"ratings"` // value -> count
}

// SeriesPoint is one bar or slice handed to a chart renderer
type SeriesPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// PieSeries is a labelled, colored series for pie renderers
type PieSeries struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// UserRating is a respondent's summed rating for one survey
type UserRating struct {
	UserName    string `json:"userName"`
	TotalRating int    `json:"totalRating"`
}

// RespondentSeriesPoint is one point of the per-respondent chart
type RespondentSeriesPoint struct {
	Name        string `json:"name"`
	TotalRating int    `json:"totalRating"`
}

// Feedback is the qualitative score of one answered survey
type Feedback struct {
	SurveyTitle       string    `json:"surveyTitle"`
	SurveyDescription string    `json:"surveyDescription"`
	SubmittedAt       time.Time `json:"submittedAt"`
	UserRating        int       `json:"userRating"`
	TotalMaxRating    int       `json:"totalMaxRating"`
	Percentage        float64   `json:"percentage"`
	Label             string    `json:"label"`
	Message           string    `json:"message"`
}

// RatingChart bundles the prepared series for one rating question
type RatingChart struct {
	Aggregate RatingQuestionAggregate `json:"aggregate"`
	Bar       []SeriesPoint           `json:"bar"`
	Pie       PieSeries               `json:"pie"`
}
