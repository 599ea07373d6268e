package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"surveykit/internal/model"
	"surveykit/internal/session"
)

// SurveyAPI is the remote survey service every view talks to
type SurveyAPI interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error)

	CreateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error)
	GetSurvey(ctx context.Context, cred session.Credential, id string) (*model.Survey, error)
	UpdateSurvey(ctx context.Context, cred session.Credential, survey model.Survey) (*model.Survey, error)
	DeleteSurvey(ctx context.Context, cred session.Credential, id string) error
	ListSurveys(ctx context.Context, cred session.Credential) ([]model.SurveySummary, error)
	ListUserSurveys(ctx context.Context, cred session.Credential) ([]model.Survey, error)

	SubmitAnswers(ctx context.Context, cred session.Credential, batch model.SubmissionBatch) error
	GetResponses(ctx context.Context, cred session.Credential, surveyID string) ([]model.ResponseRecord, error)
	GetRatingData(ctx context.Context, cred session.Credential, surveyID string) ([]model.RatingQuestionAggregate, error)
	GetUserRatings(ctx context.Context, cred session.Credential, surveyID string) ([]model.UserRating, error)
	GetAnsweredSurveys(ctx context.Context, cred session.Credential) ([]model.SubmissionRecord, error)
}

// APIClient wraps the survey API over HTTP. Calls are never retried; a
// failed call is reported and the user triggers it again.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewAPIClient creates a new survey API client
func NewAPIClient(baseURL string, timeout time.Duration, log *slog.Logger) *APIClient {
	if log == nil {
		log = slog.Default()
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With(slog.String("component", "api_client")),
	}
}

// doRequest performs one HTTP call and maps failures onto the model errors
func (c *APIClient) doRequest(ctx context.Context, cred session.Credential, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cred != nil {
		if token, ok := cred.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug("api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("api request failed", slog.String("method", method), slog.String("path", path), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %s %s: %v", model.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", model.ErrNetwork, err)
	}

	c.log.Debug("api response", slog.String("method", method), slog.String("path", path), slog.Int("status", resp.StatusCode), slog.Int("bytes", len(respBody)))

	if resp.StatusCode >= 400 {
		apiErr := &model.APIError{
			Kind:    statusKind(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(respBody),
		}
		c.log.Warn("api error", slog.String("method", method), slog.String("path", path), slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	return respBody, nil
}

func (c *APIClient) doJSON(ctx context.Context, cred session.Credential, method, path string, body, out interface{}) error {
	respBody, err := c.doRequest(ctx, cred, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to parse %s %s response: %v", model.ErrServer, method, path, err)
	}
	return nil
}

func statusKind(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return model.ErrAuthRequired
	case status == http.StatusNotFound:
		return model.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return model.ErrValidation
	}
	return model.ErrServer
}

// errorMessage pulls {message} or {error} out of an error body
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// IsAPIStatus reports whether err came back from the API with status
func IsAPIStatus(err error, status int) bool {
	var apiErr *model.APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func escape(id string) string {
	return url.PathEscape(id)
}
