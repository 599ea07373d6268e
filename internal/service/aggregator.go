package service

import "surveykit/internal/model"

// GroupByRespondent buckets raw answer records by the respondent embedded in
// each answer. Respondents appear in first-seen order and each bucket keeps
// arrival order, not question order.
func GroupByRespondent(records []model.ResponseRecord) []model.RespondentAnswers {
	groups := []model.RespondentAnswers{}
	index := make(map[string]int)

	for _, record := range records {
		for _, a := range record.Answers {
			i, ok := index[a.User]
			if !ok {
				i = len(groups)
				index[a.User] = i
				groups = append(groups, model.RespondentAnswers{Respondent: a.User})
			}
			groups[i].Answers = append(groups[i].Answers, model.AnsweredQuestion{
				Question: record.Question,
				Answer:   a.Answer.Clone(),
				Type:     record.Type,
				Options:  append([]string{}, record.Options...),
			})
		}
	}

	return groups
}

// FindRespondent returns the bucket for one respondent
func FindRespondent(groups []model.RespondentAnswers, respondent string) (model.RespondentAnswers, bool) {
	for _, g := range groups {
		if g.Respondent == respondent {
			return g, true
		}
	}
	return model.RespondentAnswers{}, false
}

// BuildRatingAggregate counts chosen values for every rating question of the
// survey, in survey order. Every value 1..maxRating is present, zero or not.
// Records match by question id, then by the first unused record with the
// same question text, so repeated texts pair up in order.
func BuildRatingAggregate(survey model.Survey, records []model.ResponseRecord) []model.RatingQuestionAggregate {
	out := []model.RatingQuestionAggregate{}
	used := make([]bool, len(records))

	for _, q := range survey.Questions {
		if q.Type != model.QuestionTypeRating {
			continue
		}
		maxRating := q.MaxRating()

		agg := model.RatingQuestionAggregate{
			QuestionID: q.ID,
			Question:   q.Text,
			MaxRating:  maxRating,
			Ratings:    make(map[int]int, maxRating),
		}
		for v := 1; v <= maxRating; v++ {
			agg.Ratings[v] = 0
		}

		if i := matchRecord(q, records, used); i >= 0 {
			used[i] = true
			for _, a := range records[i].Answers {
				if a.Answer.Kind != model.AnswerRating {
					continue
				}
				if a.Answer.Rating < 1 || a.Answer.Rating > maxRating {
					continue
				}
				agg.Ratings[a.Answer.Rating]++
			}
		}

		out = append(out, agg)
	}

	return out
}

func matchRecord(q model.Question, records []model.ResponseRecord, used []bool) int {
	if q.ID != "" {
		for i, r := range records {
			if r.QuestionID == q.ID {
				return i
			}
		}
	}
	for i, r := range records {
		if !used[i] && r.Question == q.Text {
			return i
		}
	}
	return -1
}

// CountRatingAnswers counts how many rating-valued answers a record holds
func CountRatingAnswers(record model.ResponseRecord) int {
	n := 0
	for _, a := range record.Answers {
		if a.Answer.Kind == model.AnswerRating {
			n++
		}
	}
	return n
}
