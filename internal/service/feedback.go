package service

import (
	"errors"
	"fmt"

	"surveykit/internal/model"
)

type feedbackBucket struct {
	min   float64
	label string
}

// Descending cut points; anything below the last one is "Very Poor"
var feedbackBuckets = []feedbackBucket{
	{90, "Excellent! You rated this survey very highly."},
	{80, "Very Good! You rated this survey positively."},
	{70, "Good! You seemed mostly satisfied with the survey."},
	{60, "Satisfactory! You found some aspects acceptable."},
	{50, "Average! There were some aspects you were satisfied with."},
	{40, "Below Average! You found some aspects lacking."},
	{30, "Below Average! You had some concerns."},
	{20, "Poor! You had many concerns with this survey."},
}

const veryPoorLabel = "Very Poor! You were largely dissatisfied with this survey."

// FeedbackLabel maps a rating percentage to its qualitative label
func FeedbackLabel(percentage float64) string {
	for _, b := range feedbackBuckets {
		if percentage >= b.min {
			return b.label
		}
	}
	return veryPoorLabel
}

// FeedbackScore sums the chosen and maximum ratings over the numeric answers
// of one submission
func FeedbackScore(answers []model.SubmittedAnswer) (userRating, totalMaxRating int, percentage float64, err error) {
	counted := 0
	for _, a := range answers {
		if !a.Answer.IsNumeric() {
			continue
		}
		counted++
		userRating += a.Answer.Rating
		totalMaxRating += a.MaxRating
	}
	if counted == 0 {
		return 0, 0, 0, model.ErrNoRatingAnswers
	}
	if totalMaxRating <= 0 {
		return userRating, totalMaxRating, 0, fmt.Errorf("%w: rating answers carry no maxRating", model.ErrValidation)
	}
	percentage = float64(userRating) / float64(totalMaxRating) * 100
	return userRating, totalMaxRating, percentage, nil
}

// Feedback scores one answered survey
func Feedback(record model.SubmissionRecord) (model.Feedback, error) {
	fb := model.Feedback{
		SurveyTitle:       record.SurveyTitle,
		SurveyDescription: record.SurveyDescription,
		SubmittedAt:       record.SubmittedAt,
	}

	userRating, totalMaxRating, pct, err := FeedbackScore(record.Answers)
	if err != nil {
		if errors.Is(err, model.ErrNoRatingAnswers) {
			fb.Message = model.NoRatingQuestionsMessage
		}
		return fb, err
	}

	fb.UserRating = userRating
	fb.TotalMaxRating = totalMaxRating
	fb.Percentage = pct
	fb.Label = FeedbackLabel(pct)
	fb.Message = fmt.Sprintf("You rated %d out of %d. %s", userRating, totalMaxRating, fb.Label)
	return fb, nil
}

// FeedbackList scores every answered survey that has at least one rating
// answer
func FeedbackList(records []model.SubmissionRecord) ([]model.Feedback, error) {
	out := []model.Feedback{}
	for _, r := range records {
		fb, err := Feedback(r)
		if errors.Is(err, model.ErrNoRatingAnswers) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	if len(out) == 0 {
		return out, model.ErrNoRatingSurveys
	}
	return out, nil
}
