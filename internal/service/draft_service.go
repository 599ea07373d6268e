package service

import (
	"context"
	"fmt"
	"log/slog"

	"surveykit/internal/client"
	"surveykit/internal/model"
	"surveykit/internal/repository"
	"surveykit/internal/session"
)

// DraftService applies survey document operations to stored author drafts
// and publishes them to the survey API
type DraftService struct {
	drafts   repository.DraftRepo
	api      client.SurveyAPI
	notifier Notifier
	log      *slog.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(drafts repository.DraftRepo, api client.SurveyAPI, notifier Notifier, log *slog.Logger) *DraftService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &DraftService{
		drafts:   drafts,
		api:      api,
		notifier: notifier,
		log:      log,
	}
}

// Create starts a draft, empty or from a built-in template
func (s *DraftService) Create(ctx context.Context, sc *session.Context, template string) (*model.SurveyDraft, error) {
	user, ok := sc.User()
	if !ok {
		return nil, model.ErrAuthRequired
	}

	survey := model.Survey{}
	if template != "" {
		t, err := TemplateByKey(template)
		if err != nil {
			return nil, err
		}
		survey = t
	}
	survey.Owner = user.ID

	draft := &model.SurveyDraft{
		Owner:    user.ID,
		Template: template,
		Survey:   survey,
	}
	if _, err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get loads a draft owned by the session user
func (s *DraftService) Get(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error) {
	user, ok := sc.User()
	if !ok {
		return nil, model.ErrAuthRequired
	}
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.Owner != user.ID {
		return nil, fmt.Errorf("%w: draft %s", model.ErrNotFound, id)
	}
	return draft, nil
}

// List returns the session user's drafts, most recently edited first
func (s *DraftService) List(ctx context.Context, sc *session.Context) ([]*model.SurveyDraft, error) {
	user, ok := sc.User()
	if !ok {
		return nil, model.ErrAuthRequired
	}
	return s.drafts.GetByOwner(ctx, user.ID)
}

// Delete removes a draft
func (s *DraftService) Delete(ctx context.Context, sc *session.Context, id string) error {
	if _, err := s.Get(ctx, sc, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}

// SetMeta replaces the title and description
func (s *DraftService) SetMeta(ctx context.Context, sc *session.Context, id, title, description string) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		out := sv.Clone()
		out.Title = title
		out.Description = description
		return out, nil
	})
}

func (s *DraftService) AddQuestion(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return AddQuestion(sv), nil
	})
}

func (s *DraftService) RemoveQuestion(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return RemoveQuestion(sv, index)
	})
}

func (s *DraftService) UpdateQuestionField(ctx context.Context, sc *session.Context, id string, index int, field QuestionField, value interface{}) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return UpdateQuestionField(sv, index, field, value)
	})
}

func (s *DraftService) ReplaceQuestion(ctx context.Context, sc *session.Context, id string, index int, raw model.RawQuestion) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return ReplaceQuestion(sv, index, raw)
	})
}

func (s *DraftService) AddOption(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return AddOption(sv, index)
	})
}

func (s *DraftService) UpdateOption(ctx context.Context, sc *session.Context, id string, index, option int, value string) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return UpdateOption(sv, index, option, value)
	})
}

func (s *DraftService) RemoveOption(ctx context.Context, sc *session.Context, id string, index, option int) (*model.SurveyDraft, error) {
	return s.edit(ctx, sc, id, func(sv model.Survey) (model.Survey, error) {
		return RemoveOption(sv, index, option)
	})
}

// Publish sends the draft to the survey API. The first publish creates the
// survey; later ones replace it.
func (s *DraftService) Publish(ctx context.Context, sc *session.Context, id string) (*model.Survey, error) {
	draft, err := s.Get(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	user, _ := sc.User()

	if err := ValidateSurvey(draft.Survey); err != nil {
		return nil, err
	}

	survey := draft.Survey.Clone()
	survey.Owner = user.ID

	var published *model.Survey
	if draft.PublishedID == "" {
		published, err = s.api.CreateSurvey(ctx, sc, survey)
	} else {
		survey.ID = draft.PublishedID
		published, err = s.api.UpdateSurvey(ctx, sc, survey)
	}
	if err != nil {
		notify(s.notifier, user, model.NotifyError, "Failed to publish survey.")
		return nil, err
	}

	if published.ID != "" {
		draft.PublishedID = published.ID
	}
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}

	s.log.Info("draft published", slog.String("draft", id), slog.String("survey", draft.PublishedID))
	notify(s.notifier, user, model.NotifySuccess, "Survey published successfully!")
	return published, nil
}

func (s *DraftService) edit(ctx context.Context, sc *session.Context, id string, op func(model.Survey) (model.Survey, error)) (*model.SurveyDraft, error) {
	draft, err := s.Get(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	next, err := op(draft.Survey)
	if err != nil {
		return nil, err
	}
	draft.Survey = next
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}
