package handler

import (
	"context"
	"io"

	"surveykit/internal/model"
	"surveykit/internal/service"
	"surveykit/internal/session"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock type for the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockSurveyService is a mock type for the SurveyService interface
type MockSurveyService struct {
	mock.Mock
}

func (m *MockSurveyService) Create(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error) {
	args := m.Called(ctx, sc, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyService) GetByID(ctx context.Context, sc *session.Context, id string) (*model.Survey, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyService) List(ctx context.Context, sc *session.Context) ([]model.SurveySummary, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveySummary), args.Error(1)
}

func (m *MockSurveyService) ListMine(ctx context.Context, sc *session.Context) ([]model.Survey, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *MockSurveyService) Update(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error) {
	args := m.Called(ctx, sc, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyService) Delete(ctx context.Context, sc *session.Context, id string) error {
	args := m.Called(ctx, sc, id)
	return args.Error(0)
}

// MockDraftService is a mock type for the DraftService interface
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) draft(args mock.Arguments) (*model.SurveyDraft, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyDraft), args.Error(1)
}

func (m *MockDraftService) Create(ctx context.Context, sc *session.Context, template string) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, template))
}

func (m *MockDraftService) Get(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id))
}

func (m *MockDraftService) List(ctx context.Context, sc *session.Context) ([]*model.SurveyDraft, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SurveyDraft), args.Error(1)
}

func (m *MockDraftService) Delete(ctx context.Context, sc *session.Context, id string) error {
	args := m.Called(ctx, sc, id)
	return args.Error(0)
}

func (m *MockDraftService) SetMeta(ctx context.Context, sc *session.Context, id, title, description string) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, title, description))
}

func (m *MockDraftService) AddQuestion(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id))
}

func (m *MockDraftService) RemoveQuestion(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index))
}

func (m *MockDraftService) UpdateQuestionField(ctx context.Context, sc *session.Context, id string, index int, field service.QuestionField, value interface{}) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index, field, value))
}

func (m *MockDraftService) ReplaceQuestion(ctx context.Context, sc *session.Context, id string, index int, raw model.RawQuestion) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index, raw))
}

func (m *MockDraftService) AddOption(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index))
}

func (m *MockDraftService) UpdateOption(ctx context.Context, sc *session.Context, id string, index, option int, value string) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index, option, value))
}

func (m *MockDraftService) RemoveOption(ctx context.Context, sc *session.Context, id string, index, option int) (*model.SurveyDraft, error) {
	return m.draft(m.Called(ctx, sc, id, index, option))
}

func (m *MockDraftService) Publish(ctx context.Context, sc *session.Context, id string) (*model.Survey, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

// MockResponseService is a mock type for the ResponseService interface
type MockResponseService struct {
	mock.Mock
}

func (m *MockResponseService) Begin(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*service.TakeView, error) {
	args := m.Called(ctx, sc, surveyID, draftKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TakeView), args.Error(1)
}

func (m *MockResponseService) SetAnswer(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, value model.AnswerValue) (map[int]model.AnswerValue, error) {
	args := m.Called(ctx, sc, surveyID, draftKey, position, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]model.AnswerValue), args.Error(1)
}

func (m *MockResponseService) Toggle(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, option string) (map[int]model.AnswerValue, error) {
	args := m.Called(ctx, sc, surveyID, draftKey, position, option)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]model.AnswerValue), args.Error(1)
}

func (m *MockResponseService) Submit(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*model.SubmissionBatch, error) {
	args := m.Called(ctx, sc, surveyID, draftKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionBatch), args.Error(1)
}

// MockReportService is a mock type for the ReportService interface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Responses(ctx context.Context, sc *session.Context, surveyID string) (*service.ResponsesView, error) {
	args := m.Called(ctx, sc, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResponsesView), args.Error(1)
}

func (m *MockReportService) RatingCharts(ctx context.Context, sc *session.Context, surveyID string) (*service.ChartsView, error) {
	args := m.Called(ctx, sc, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChartsView), args.Error(1)
}

func (m *MockReportService) UserRatings(ctx context.Context, sc *session.Context, surveyID string, order service.RespondentOrder) ([]model.RespondentSeriesPoint, error) {
	args := m.Called(ctx, sc, surveyID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RespondentSeriesPoint), args.Error(1)
}

func (m *MockReportService) Feedback(ctx context.Context, sc *session.Context) ([]model.Feedback, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockReportService) Answered(ctx context.Context, sc *session.Context) ([]model.SubmissionRecord, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubmissionRecord), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, sc *session.Context, surveyID string, w io.Writer) error {
	args := m.Called(ctx, sc, surveyID, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}
