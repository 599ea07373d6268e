package handler

import (
	"context"
	"io"

	"surveykit/internal/model"
	"surveykit/internal/service"
	"surveykit/internal/session"
)

// The handlers depend on these narrow views of the services so tests can
// swap in mocks.

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type SurveyService interface {
	Create(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error)
	GetByID(ctx context.Context, sc *session.Context, id string) (*model.Survey, error)
	List(ctx context.Context, sc *session.Context) ([]model.SurveySummary, error)
	ListMine(ctx context.Context, sc *session.Context) ([]model.Survey, error)
	Update(ctx context.Context, sc *session.Context, survey model.Survey) (*model.Survey, error)
	Delete(ctx context.Context, sc *session.Context, id string) error
}

type DraftService interface {
	Create(ctx context.Context, sc *session.Context, template string) (*model.SurveyDraft, error)
	Get(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error)
	List(ctx context.Context, sc *session.Context) ([]*model.SurveyDraft, error)
	Delete(ctx context.Context, sc *session.Context, id string) error
	SetMeta(ctx context.Context, sc *session.Context, id, title, description string) (*model.SurveyDraft, error)
	AddQuestion(ctx context.Context, sc *session.Context, id string) (*model.SurveyDraft, error)
	RemoveQuestion(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error)
	UpdateQuestionField(ctx context.Context, sc *session.Context, id string, index int, field service.QuestionField, value interface{}) (*model.SurveyDraft, error)
	ReplaceQuestion(ctx context.Context, sc *session.Context, id string, index int, raw model.RawQuestion) (*model.SurveyDraft, error)
	AddOption(ctx context.Context, sc *session.Context, id string, index int) (*model.SurveyDraft, error)
	UpdateOption(ctx context.Context, sc *session.Context, id string, index, option int, value string) (*model.SurveyDraft, error)
	RemoveOption(ctx context.Context, sc *session.Context, id string, index, option int) (*model.SurveyDraft, error)
	Publish(ctx context.Context, sc *session.Context, id string) (*model.Survey, error)
}

type ResponseService interface {
	Begin(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*service.TakeView, error)
	SetAnswer(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, value model.AnswerValue) (map[int]model.AnswerValue, error)
	Toggle(ctx context.Context, sc *session.Context, surveyID, draftKey string, position int, option string) (map[int]model.AnswerValue, error)
	Submit(ctx context.Context, sc *session.Context, surveyID, draftKey string) (*model.SubmissionBatch, error)
}

type ReportService interface {
	Responses(ctx context.Context, sc *session.Context, surveyID string) (*service.ResponsesView, error)
	RatingCharts(ctx context.Context, sc *session.Context, surveyID string) (*service.ChartsView, error)
	UserRatings(ctx context.Context, sc *session.Context, surveyID string, order service.RespondentOrder) ([]model.RespondentSeriesPoint, error)
	Feedback(ctx context.Context, sc *session.Context) ([]model.Feedback, error)
	Answered(ctx context.Context, sc *session.Context) ([]model.SubmissionRecord, error)
	ExportCSV(ctx context.Context, sc *session.Context, surveyID string, w io.Writer) error
}
