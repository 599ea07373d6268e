package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"surveykit/internal/model"
	"surveykit/internal/session"

	"github.com/stretchr/testify/mock"
)

// MockSurveyAPI is a mock type for the client.SurveyAPI interface
type MockSurveyAPI struct {
	mock.Mock
}

func (m *MockSurveyAPI) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockSurveyAPI) Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockSurveyAPI) CreateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error) {
	args := m.Called(ctx, cred, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyAPI) GetSurvey(ctx context.Context, cred session.Credential, id string) (*model.Survey, error) {
	args := m.Called(ctx, cred, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyAPI) UpdateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error) {
	args := m.Called(ctx, cred, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyAPI) DeleteSurvey(ctx context.Context, cred session.Credential, id string) error {
	args := m.Called(ctx, cred, id)
	return args.Error(0)
}

func (m *MockSurveyAPI) ListSurveys(ctx context.Context, cred session.Credential) ([]model.SurveySummary, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveySummary), args.Error(1)
}

func (m *MockSurveyAPI) ListUserSurveys(ctx context.Context, cred session.Credential) ([]model.Survey, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *MockSurveyAPI) SubmitAnswers(ctx context.Context, cred session.Credential, batch model.SubmissionBatch) error {
	args := m.Called(ctx, cred, batch)
	return args.Error(0)
}

func (m *MockSurveyAPI) GetResponses(ctx context.Context, cred session.Credential, surveyID string) ([]model.ResponseRecord, error) {
	args := m.Called(ctx, cred, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ResponseRecord), args.Error(1)
}

func (m *MockSurveyAPI) GetRatingData(ctx context.Context, cred session.Credential, surveyID string) ([]model.RatingQuestionAggregate, error) {
	args := m.Called(ctx, cred, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingQuestionAggregate), args.Error(1)
}

func (m *MockSurveyAPI) GetUserRatings(ctx context.Context, cred session.Credential, surveyID string) ([]model.UserRating, error) {
	args := m.Called(ctx, cred, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRating), args.Error(1)
}

func (m *MockSurveyAPI) GetAnsweredSurveys(ctx context.Context, cred session.Credential) ([]model.SubmissionRecord, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubmissionRecord), args.Error(1)
}

// memDraftCache is an in-memory cache.DraftCache
type memDraftCache struct {
	mu     sync.Mutex
	drafts map[string]model.DraftAnswers
}

func newMemDraftCache() *memDraftCache {
	return &memDraftCache{drafts: map[string]model.DraftAnswers{}}
}

func (c *memDraftCache) key(surveyID, draftKey string) string {
	return fmt.Sprintf("draft:%s:%s", surveyID, draftKey)
}

func (c *memDraftCache) Get(_ context.Context, surveyID, draftKey string) (*model.DraftAnswers, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[c.key(surveyID, draftKey)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *memDraftCache) Set(_ context.Context, draft *model.DraftAnswers) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[c.key(draft.SurveyID, draft.DraftKey)] = *draft
	return nil
}

func (c *memDraftCache) Delete(_ context.Context, surveyID, draftKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, c.key(surveyID, draftKey))
	return nil
}

// memSessionCache is an in-memory cache.SessionCache
type memSessionCache struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{sessions: map[string]model.Session{}}
}

func (c *memSessionCache) Set(_ context.Context, s *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = *s
	return nil
}

func (c *memSessionCache) Get(_ context.Context, id string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *memSessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

// memDraftRepo is an in-memory repository.DraftRepo
type memDraftRepo struct {
	mu     sync.Mutex
	next   int
	drafts map[string]model.SurveyDraft
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{drafts: map[string]model.SurveyDraft{}}
}

func (r *memDraftRepo) Create(_ context.Context, draft *model.SurveyDraft) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	draft.ID = fmt.Sprintf("draft-%d", r.next)
	r.drafts[draft.ID] = *draft
	return draft.ID, nil
}

func (r *memDraftRepo) GetByID(_ context.Context, id string) (*model.SurveyDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	d.Survey = d.Survey.Clone()
	return &d, nil
}

func (r *memDraftRepo) GetByOwner(_ context.Context, owner string) ([]*model.SurveyDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.SurveyDraft{}
	for _, d := range r.drafts {
		if d.Owner == owner {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *memDraftRepo) Update(_ context.Context, draft *model.SurveyDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[draft.ID]; !ok {
		return fmt.Errorf("no draft %s", draft.ID)
	}
	r.drafts[draft.ID] = *draft
	return nil
}

func (r *memDraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

// recordingNotifier keeps every notification it was handed
type recordingNotifier struct {
	mu   sync.Mutex
	sent map[string][]model.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: map[string][]model.Notification{}}
}

func (n *recordingNotifier) Notify(userID string, note model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[userID] = append(n.sent[userID], note)
}

func (n *recordingNotifier) last(userID string) (model.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notes := n.sent[userID]
	if len(notes) == 0 {
		return model.Notification{}, false
	}
	return notes[len(notes)-1], true
}

func userSession(id string, admin bool) *session.Context {
	return session.New("sess-"+id, "token-"+id, model.User{ID: id, Name: id, IsAdmin: admin}, time.Time{})
}
