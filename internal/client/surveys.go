package client

import (
	"context"
	"fmt"
	"net/http"

	"surveykit/internal/model"
	"surveykit/internal/session"
)

type authRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// surveyPayload is the body sent on create and edit
type surveyPayload struct {
	ID          string           `json:"_id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
	User        string           `json:"user"`
}

func newSurveyPayload(s model.Survey) surveyPayload {
	questions := s.Questions
	if questions == nil {
		questions = []model.Question{}
	}
	return surveyPayload{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Questions:   questions,
		User:        s.Owner,
	}
}

// Login exchanges credentials for a token
func (c *APIClient) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.doJSON(ctx, nil, http.MethodPost, "users/login-user", authRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login returned no token", model.ErrServer)
	}
	return &resp, nil
}

// Register creates an account and returns its token
func (c *APIClient) Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.doJSON(ctx, nil, http.MethodPost, "users/register-user", authRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: register returned no token", model.ErrServer)
	}
	return &resp, nil
}

// CreateSurvey creates a survey owned by survey.Owner
func (c *APIClient) CreateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error) {
	payload := newSurveyPayload(survey)
	payload.ID = ""

	var created model.Survey
	if err := c.doJSON(ctx, cred, http.MethodPost, "survey/create-survey", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetSurvey fetches one survey with its questions
func (c *APIClient) GetSurvey(ctx context.Context, cred session.Credential, id string) (*model.Survey, error) {
	var survey model.Survey
	if err := c.doJSON(ctx, cred, http.MethodGet, "survey/surveys/"+escape(id), nil, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

// UpdateSurvey replaces a survey, questions included
func (c *APIClient) UpdateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error) {
	var updated model.Survey
	if err := c.doJSON(ctx, cred, http.MethodPut, "survey/edit-survey/"+escape(survey.ID), newSurveyPayload(survey), &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		updated = survey
	}
	return &updated, nil
}

// DeleteSurvey removes a survey
func (c *APIClient) DeleteSurvey(ctx context.Context, cred session.Credential, id string) error {
	_, err := c.doRequest(ctx, cred, http.MethodDelete, "survey/delete-survey/"+escape(id), nil)
	return err
}

// ListSurveys lists every published survey
func (c *APIClient) ListSurveys(ctx context.Context, cred session.Credential) ([]model.SurveySummary, error) {
	surveys := []model.SurveySummary{}
	if err := c.doJSON(ctx, cred, http.MethodGet, "survey/all-surveys", nil, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// ListUserSurveys lists the surveys created by the calling user
func (c *APIClient) ListUserSurveys(ctx context.Context, cred session.Credential) ([]model.Survey, error) {
	var resp struct {
		Surveys []model.Survey `json:"surveys"`
	}
	if err := c.doJSON(ctx, cred, http.MethodGet, "survey/get-user-survey", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Surveys == nil {
		resp.Surveys = []model.Survey{}
	}
	return resp.Surveys, nil
}

// SubmitAnswers sends a respondent's answers once
func (c *APIClient) SubmitAnswers(ctx context.Context, cred session.Credential, batch model.SubmissionBatch) error {
	path := fmt.Sprintf("survey/surveys/%s/answers", escape(batch.SurveyID))
	_, err := c.doRequest(ctx, cred, http.MethodPost, path, batch)
	return err
}

// GetResponses fetches the raw per-question answers of a survey
func (c *APIClient) GetResponses(ctx context.Context, cred session.Credential, surveyID string) ([]model.ResponseRecord, error) {
	records := []model.ResponseRecord{}
	path := fmt.Sprintf("survey/surveys/%s/answers", escape(surveyID))
	if err := c.doJSON(ctx, cred, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRatingData fetches the server-side rating aggregate of a survey
func (c *APIClient) GetRatingData(ctx context.Context, cred session.Credential, surveyID string) ([]model.RatingQuestionAggregate, error) {
	aggs := []model.RatingQuestionAggregate{}
	path := fmt.Sprintf("survey/survey/%s/rating-data", escape(surveyID))
	if err := c.doJSON(ctx, cred, http.MethodGet, path, nil, &aggs); err != nil {
		return nil, err
	}
	return aggs, nil
}

// GetUserRatings fetches each respondent's total rating for a survey
func (c *APIClient) GetUserRatings(ctx context.Context, cred session.Credential, surveyID string) ([]model.UserRating, error) {
	var resp struct {
		UserRatings []model.UserRating `json:"userRatings"`
	}
	path := fmt.Sprintf("survey/survey-ratings/%s", escape(surveyID))
	if err := c.doJSON(ctx, cred, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.UserRatings == nil {
		resp.UserRatings = []model.UserRating{}
	}
	return resp.UserRatings, nil
}

// GetAnsweredSurveys fetches the calling user's submissions
func (c *APIClient) GetAnsweredSurveys(ctx context.Context, cred session.Credential) ([]model.SubmissionRecord, error) {
	records := []model.SubmissionRecord{}
	if err := c.doJSON(ctx, cred, http.MethodGet, "survey/get-answered-survey", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
