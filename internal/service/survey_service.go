package service

import (
	"context"
	"log/slog"

	"surveykit/internal/client"
	"surveykit/internal/model"
	"surveykit/internal/session"
)

// SurveyService handles survey CRUD against the survey API
type SurveyService struct {
	api      client.SurveyAPI
	notifier Notifier
	log      *slog.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(api client.SurveyAPI, notifier Notifier, log *slog.Logger) *SurveyService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &SurveyService{
		api:      api,
		notifier: notifier,
		log:      log,
	}
}

// Create validates and creates a new survey owned by the session user
func (s *SurveyService) Create(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error) {
	user, ok := sc.User()
	if !ok {
		return nil, model.ErrAuthRequired
	}
	if err := ValidateSurvey(survey); err != nil {
		return nil, err
	}
	survey.Owner = user.ID

	created, err := s.api.CreateSurvey(ctx, sc, survey)
	if err != nil {
		notify(s.notifier, user, model.NotifyError, "Failed to create survey.")
		return nil, err
	}

	s.log.Info("survey created", slog.String("survey", created.ID), slog.String("owner", user.ID))
	notify(s.notifier, user, model.NotifySuccess, "Survey created successfully!")
	return created, nil
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, sc *session.Context, id string) (*model.Survey, error) {
	return s.api.GetSurvey(ctx, sc, id)
}

// List retrieves every published survey
func (s *SurveyService) List(ctx context.Context, sc *session.Context) ([]model.SurveySummary, error) {
	return s.api.ListSurveys(ctx, sc)
}

// ListMine retrieves the surveys the session user created
func (s *SurveyService) ListMine(ctx context.Context, sc *session.Context) ([]model.Survey, error) {
	if _, ok := sc.User(); !ok {
		return nil, model.ErrAuthRequired
	}
	return s.api.ListUserSurveys(ctx, sc)
}

// Update validates and replaces an existing survey
func (s *SurveyService) Update(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error) {
	user, ok := sc.User()
	if !ok {
		return nil, model.ErrAuthRequired
	}
	if err := ValidateSurvey(survey); err != nil {
		return nil, err
	}
	survey.Owner = user.ID

	updated, err := s.api.UpdateSurvey(ctx, sc, survey)
	if err != nil {
		notify(s.notifier, user, model.NotifyError, "Error updating survey.")
		return nil, err
	}

	notify(s.notifier, user, model.NotifySuccess, "Survey updated successfully.")
	return updated, nil
}

// Delete deletes a survey
func (s *SurveyService) Delete(ctx context.Context, sc *session.Context, id string) error {
	user, ok := sc.User()
	if !ok {
		return model.ErrAuthRequired
	}
	if err := s.api.DeleteSurvey(ctx, sc, id); err != nil {
		notify(s.notifier, user, model.NotifyError, "Failed to delete survey.")
		return err
	}

	s.log.Info("survey deleted", slog.String("survey", id), slog.String("owner", user.ID))
	notify(s.notifier, user, model.NotifySuccess, "Survey deleted successfully.")
	return nil
}
