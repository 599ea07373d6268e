package service

import (
	"sort"

	"surveykit/internal/model"
	"surveykit/internal/session"
)

// AnswerCollector holds one respondent's in-progress answers keyed by
// question position. Writes are not validated; Submit decides.
type AnswerCollector struct {
	answers map[int]model.AnswerValue

	// Strict makes Submit validate every answer against its question
	Strict bool
}

// NewAnswerCollector creates an empty collector
func NewAnswerCollector() *AnswerCollector {
	return &AnswerCollector{answers: make(map[int]model.AnswerValue)}
}

// SetAnswer records value at position. Last write wins.
func (c *AnswerCollector) SetAnswer(position int, value model.AnswerValue) {
	c.answers[position] = value.Clone()
}

// ToggleMultiChoice adds option to the selection at position or removes it
// if already selected. Selections keep the order they were made in.
func (c *AnswerCollector) ToggleMultiChoice(position int, option string) {
	current := c.answers[position]
	selected := current.Choices
	if current.Kind != model.AnswerChoices {
		selected = nil
	}

	next := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == option {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, option)
	}

	c.answers[position] = model.AnswerValue{Kind: model.AnswerChoices, Choices: next}
}

// Answer returns the value recorded at position
func (c *AnswerCollector) Answer(position int) (model.AnswerValue, bool) {
	v, ok := c.answers[position]
	return v.Clone(), ok
}

// Answers returns a copy of everything collected so far
func (c *AnswerCollector) Answers() map[int]model.AnswerValue {
	out := make(map[int]model.AnswerValue, len(c.answers))
	for p, v := range c.answers {
		out[p] = v.Clone()
	}
	return out
}

// Restore replaces the collected answers, e.g. after a login redirect
func (c *AnswerCollector) Restore(answers map[int]model.AnswerValue) {
	c.answers = make(map[int]model.AnswerValue, len(answers))
	for p, v := range answers {
		c.answers[p] = v.Clone()
	}
}

// Len returns the number of answered positions
func (c *AnswerCollector) Len() int {
	return len(c.answers)
}

// Submit builds the batch for survey. Unanswered positions are left out.
// Without a user and credential it fails with ErrAuthRequired and keeps
// every collected answer for the next attempt.
func (c *AnswerCollector) Submit(survey model.Survey, user session.CurrentUser, cred session.Credential) (model.SubmissionBatch, error) {
	if user == nil || cred == nil {
		return model.SubmissionBatch{}, model.ErrAuthRequired
	}
	u, ok := user.User()
	if !ok {
		return model.SubmissionBatch{}, model.ErrAuthRequired
	}
	if _, ok := cred.Token(); !ok {
		return model.SubmissionBatch{}, model.ErrAuthRequired
	}

	positions := make([]int, 0, len(c.answers))
	for p := range c.answers {
		if p >= 0 && p < len(survey.Questions) {
			positions = append(positions, p)
		}
	}
	sort.Ints(positions)

	if c.Strict {
		var problems []string
		for _, p := range positions {
			if err := model.ValidateAnswer(survey.Questions[p], c.answers[p]); err != nil {
				problems = append(problems, err.Error())
			}
		}
		if len(problems) > 0 {
			return model.SubmissionBatch{}, &model.ValidationError{Problems: problems}
		}
	}

	batch := model.SubmissionBatch{
		SurveyID: survey.ID,
		Answers:  make([]model.Answer, 0, len(positions)),
		User:     u.ID,
	}
	for _, p := range positions {
		batch.Answers = append(batch.Answers, model.Answer{
			QuestionID: survey.Questions[p].ID,
			Answer:     c.answers[p].Clone(),
		})
	}
	return batch, nil
}
