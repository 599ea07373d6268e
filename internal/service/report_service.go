package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"

	"surveykit/internal/client"
	"surveykit/internal/model"
	"surveykit/internal/session"
)

// ResponsesView is the per-respondent listing of one survey's answers
type ResponsesView struct {
	TotalResponses int                       `json:"totalResponses"`
	Respondents    []model.RespondentAnswers `json:"respondents"`
}

// ChartsView holds the prepared chart series of one survey
type ChartsView struct {
	Source string              `json:"source"` // "local" or "server"
	Charts []model.RatingChart `json:"charts"`
}

// ReportService turns fetched answer records into the author's views
type ReportService struct {
	api          client.SurveyAPI
	notifier     Notifier
	defaultOrder RespondentOrder
	log          *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(api client.SurveyAPI, notifier Notifier, defaultOrder RespondentOrder, log *slog.Logger) *ReportService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	if defaultOrder == "" {
		defaultOrder = OrderAsReturned
	}
	return &ReportService{
		api:          api,
		notifier:     notifier,
		defaultOrder: defaultOrder,
		log:          log,
	}
}

// Responses groups a survey's raw answers by respondent
func (s *ReportService) Responses(ctx context.Context, sc *session.Context, surveyID string) (*ResponsesView, error) {
	records, err := s.api.GetResponses(ctx, sc, surveyID)
	if err != nil {
		s.failed(sc, err, "Unable to fetch survey responses.")
		return nil, err
	}
	groups := GroupByRespondent(records)
	return &ResponsesView{
		TotalResponses: len(groups),
		Respondents:    groups,
	}, nil
}

// RatingCharts computes rating charts from the raw answers. When the survey
// or its answers cannot be fetched it falls back to the server aggregate.
func (s *ReportService) RatingCharts(ctx context.Context, sc *session.Context, surveyID string) (*ChartsView, error) {
	aggs, err := s.localAggregate(ctx, sc, surveyID)
	source := "local"
	if err != nil {
		if errors.Is(err, model.ErrAuthRequired) {
			return nil, err
		}
		s.log.Warn("local rating aggregate failed, using server data", slog.String("survey", surveyID), slog.Any("err", err))
		aggs, err = s.api.GetRatingData(ctx, sc, surveyID)
		source = "server"
		if err != nil {
			s.failed(sc, err, "Failed to load rating data.")
			return nil, err
		}
	}

	view := &ChartsView{Source: source, Charts: make([]model.RatingChart, 0, len(aggs))}
	for _, agg := range aggs {
		view.Charts = append(view.Charts, model.RatingChart{
			Aggregate: agg,
			Bar:       ToSeries(agg),
			Pie:       ToPieSeries(agg),
		})
	}
	return view, nil
}

func (s *ReportService) localAggregate(ctx context.Context, sc *session.Context, surveyID string) ([]model.RatingQuestionAggregate, error) {
	survey, err := s.api.GetSurvey(ctx, sc, surveyID)
	if err != nil {
		return nil, err
	}
	records, err := s.api.GetResponses(ctx, sc, surveyID)
	if err != nil {
		return nil, err
	}
	return BuildRatingAggregate(*survey, records), nil
}

// UserRatings returns every respondent's total in the requested order; an
// empty order uses the configured default
func (s *ReportService) UserRatings(ctx context.Context, sc *session.Context, surveyID string, order RespondentOrder) ([]model.RespondentSeriesPoint, error) {
	if order == "" {
		order = s.defaultOrder
	}
	ratings, err := s.api.GetUserRatings(ctx, sc, surveyID)
	if err != nil {
		s.failed(sc, err, "Error fetching data.")
		return nil, err
	}
	return ToRespondentSeries(ratings, order), nil
}

// Feedback scores every rated survey the session user has answered
func (s *ReportService) Feedback(ctx context.Context, sc *session.Context) ([]model.Feedback, error) {
	if _, ok := sc.User(); !ok {
		return nil, model.ErrAuthRequired
	}
	records, err := s.api.GetAnsweredSurveys(ctx, sc)
	if err != nil {
		s.failed(sc, err, "Unable to fetch surveys.")
		return nil, err
	}
	return FeedbackList(records)
}

// Answered lists the session user's submissions as returned
func (s *ReportService) Answered(ctx context.Context, sc *session.Context) ([]model.SubmissionRecord, error) {
	if _, ok := sc.User(); !ok {
		return nil, model.ErrAuthRequired
	}
	records, err := s.api.GetAnsweredSurveys(ctx, sc)
	if err != nil {
		s.failed(sc, err, "Unable to fetch surveys.")
		return nil, err
	}
	return records, nil
}

// ExportCSV writes one row per respondent answer
func (s *ReportService) ExportCSV(ctx context.Context, sc *session.Context, surveyID string, w io.Writer) error {
	view, err := s.Responses(ctx, sc, surveyID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"respondent", "question", "type", "answer"}); err != nil {
		return err
	}
	for _, r := range view.Respondents {
		for _, a := range r.Answers {
			if err := cw.Write([]string{r.Respondent, a.Question, string(a.Type), a.Answer.String()}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ReportService) failed(sc *session.Context, err error, message string) {
	if errors.Is(err, model.ErrAuthRequired) {
		return
	}
	user, _ := sc.User()
	notify(s.notifier, user, model.NotifyError, message)
}
