package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"surveykit/internal/cache"
	"surveykit/internal/client"
	"surveykit/internal/model"
	"surveykit/internal/session"
)

// TakeView is what a respondent sees while filling out a survey
type TakeView struct {
	Survey   model.Survey              `json:"survey"`
	DraftKey string                    `json:"draftKey"`
	Answers  map[int]model.AnswerValue `json:"answers"`
	Labels   map[int][]string          `json:"ratingLabels,omitempty"`
}

// ResponseService drives survey taking. Each call rebuilds the collector
// from the draft cache, so answers survive a redirect to login.
type ResponseService struct {
	api      client.SurveyAPI
	drafts   cache.DraftCache
	notifier Notifier
	strict   bool
	log      *slog.Logger
}

// NewResponseService creates a new response service. With strict set,
// submissions are validated against each question first.
func NewResponseService(api client.SurveyAPI, drafts cache.DraftCache, notifier Notifier, strict bool, log *slog.Logger) *ResponseService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ResponseService{
		api:      api,
		drafts:   drafts,
		notifier: notifier,
		strict:   strict,
		log:      log,
	}
}

// DraftKey picks the cache key for an in-progress submission. A known user
// always keys by their own id; anyone else needs a key issued by
// session.NewAnonymousKey.
func DraftKey(sc *session.Context, anonymous string) (string, error) {
	if u, ok := sc.User(); ok {
		return session.UserDraftKey(u.ID), nil
	}
	if session.IsAnonymousKey(anonymous) {
		return anonymous, nil
	}
	return "", fmt.Errorf("%w: invalid draft key", model.ErrValidation)
}

// Begin loads the survey and whatever was answered before
func (s *ResponseService) Begin(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*TakeView, error) {
	survey, err := s.api.GetSurvey(ctx, sc, surveyID)
	if err != nil {
		return nil, err
	}
	_, collector, err := s.open(ctx, sc, surveyID, draftKey)
	if err != nil {
		return nil, err
	}

	view := &TakeView{
		Survey:   *survey,
		DraftKey: draftKey,
		Answers:  collector.Answers(),
		Labels:   map[int][]string{},
	}
	for i, q := range survey.Questions {
		if q.Type == model.QuestionTypeRating {
			view.Labels[i] = RatingLabels(q.MaxRating())
		}
	}
	return view, nil
}

// SetAnswer records one answer. Nothing is validated until submit.
func (s *ResponseService) SetAnswer(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, value model.AnswerValue) (map[int]model.AnswerValue, error) {
	if position < 0 {
		return nil, &model.IndexError{What: "question", Index: position}
	}
	key, collector, err := s.open(ctx, sc, surveyID, draftKey)
	if err != nil {
		return nil, err
	}
	collector.SetAnswer(position, value)
	if err := s.save(ctx, surveyID, key, collector); err != nil {
		return nil, err
	}
	return collector.Answers(), nil
}

// Toggle flips one option of a multi-select answer
func (s *ResponseService) Toggle(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, option string) (map[int]model.AnswerValue, error) {
	if position < 0 {
		return nil, &model.IndexError{What: "question", Index: position}
	}
	key, collector, err := s.open(ctx, sc, surveyID, draftKey)
	if err != nil {
		return nil, err
	}
	collector.ToggleMultiChoice(position, option)
	if err := s.save(ctx, surveyID, key, collector); err != nil {
		return nil, err
	}
	return collector.Answers(), nil
}

// Submit sends the collected answers, even when there are none. On
// ErrAuthRequired the cached answers stay in place; the caller sends the
// respondent to login and retries with the same anonymous key.
func (s *ResponseService) Submit(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*model.SubmissionBatch, error) {
	if _, ok := sc.User(); !ok && draftKey == "" {
		return nil, model.ErrAuthRequired
	}
	key, collector, err := s.open(ctx, sc, surveyID, draftKey)
	if err != nil {
		return nil, err
	}

	survey, err := s.api.GetSurvey(ctx, sc, surveyID)
	if err != nil {
		return nil, err
	}

	batch, err := collector.Submit(*survey, sc, sc)
	if err != nil {
		return nil, err
	}

	user, _ := sc.User()
	if err := s.api.SubmitAnswers(ctx, sc, batch); err != nil {
		if !errors.Is(err, model.ErrAuthRequired) {
			notify(s.notifier, user, model.NotifyError, "Failed to submit survey answers.")
		}
		return nil, err
	}

	if err := s.drafts.Delete(ctx, surveyID, key); err != nil {
		s.log.Warn("draft answers not cleared", slog.String("survey", surveyID), slog.Any("err", err))
	}

	s.log.Info("answers submitted", slog.String("survey", surveyID), slog.String("user", user.ID), slog.Int("answers", len(batch.Answers)))
	notify(s.notifier, user, model.NotifySuccess, "Survey answers submitted successfully!")
	return &batch, nil
}

// open loads the respondent's collector. Answers left under an anonymous
// key move to the user's own key once they are logged in; anything that is
// not an anonymous key is ignored for a logged-in user.
func (s *ResponseService) open(ctx context.Context, sc *session.Context, surveyID, anonymous string) (string, *AnswerCollector, error) {
	key, err := DraftKey(sc, anonymous)
	if err != nil {
		return "", nil, err
	}
	collector, err := s.load(ctx, surveyID, key)
	if err != nil {
		return "", nil, err
	}
	if key == anonymous || !session.IsAnonymousKey(anonymous) {
		return key, collector, nil
	}

	pending, err := s.load(ctx, surveyID, anonymous)
	if err != nil {
		return "", nil, err
	}
	if pending.Len() == 0 {
		return key, collector, nil
	}
	for position, value := range pending.Answers() {
		collector.SetAnswer(position, value)
	}
	if err := s.save(ctx, surveyID, key, collector); err != nil {
		return "", nil, err
	}
	if err := s.drafts.Delete(ctx, surveyID, anonymous); err != nil {
		return "", nil, err
	}
	return key, collector, nil
}

func (s *ResponseService) load(ctx context.Context, surveyID, draftKey string) (*AnswerCollector, error) {
	if draftKey == "" {
		return nil, fmt.Errorf("%w: missing draft key", model.ErrValidation)
	}
	collector := NewAnswerCollector()
	collector.Strict = s.strict

	draft, err := s.drafts.Get(ctx, surveyID, draftKey)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		collector.Restore(draft.Answers)
	}
	return collector, nil
}

func (s *ResponseService) save(ctx context.Context, surveyID, draftKey string, collector *AnswerCollector) error {
	return s.drafts.Set(ctx, &model.DraftAnswers{
		SurveyID: surveyID,
		DraftKey: draftKey,
		Answers:  collector.Answers(),
	})
}
