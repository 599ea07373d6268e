package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"surveykit/internal/model"
	"surveykit/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/", 5*time.Second, nil)
}

func credential(token string) session.Credential {
	return session.New("s", token, model.User{ID: "u1"}, time.Time{})
}

func TestAPIClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   error
		msg    string
	}{
		{http.StatusUnauthorized, `{"message":"jwt expired"}`, model.ErrAuthRequired, "jwt expired"},
		{http.StatusForbidden, `{"error":"not admin"}`, model.ErrAuthRequired, "not admin"},
		{http.StatusNotFound, `Survey not found`, model.ErrNotFound, "Survey not found"},
		{http.StatusBadRequest, `{"message":"title required"}`, model.ErrValidation, "title required"},
		{http.StatusInternalServerError, ``, model.ErrServer, ""},
		{http.StatusBadGateway, `<html>`, model.ErrServer, "<html>"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetSurvey(context.Background(), nil, "s1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *model.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.msg, apiErr.Message)
			assert.True(t, IsAPIStatus(err, tt.status))
		})
	}
}

func TestAPIClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewAPIClient(url, time.Second, nil)
	_, err := c.ListSurveys(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestAPIClient_BearerToken(t *testing.T) {
	var gotAuth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	})
	ctx := context.Background()

	_, err := c.ListSurveys(ctx, credential("tok"))
	require.NoError(t, err)
	_, err = c.ListSurveys(ctx, session.Anonymous())
	require.NoError(t, err)
	_, err = c.ListSurveys(ctx, session.New("s", "old", model.User{ID: "u1"}, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok", "", ""}, gotAuth)
}

func TestAPIClient_Paths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.URL.Path {
		case "/api/survey/get-user-survey":
			_, _ = io.WriteString(w, `{"surveys":[{"_id":"s1","title":"Mine","questions":[]}]}`)
		case "/api/survey/survey-ratings/s1":
			_, _ = io.WriteString(w, `{"userRatings":[{"userName":"Ada","totalRating":9}]}`)
		case "/api/survey/survey/s1/rating-data":
			_, _ = io.WriteString(w, `[{"question":"Rate","ratings":{"1":0,"2":3}}]`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	})
	ctx := context.Background()
	cred := credential("tok")

	mine, err := c.ListUserSurveys(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, "Mine", mine[0].Title)

	ratings, err := c.GetUserRatings(ctx, cred, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.UserRating{{UserName: "Ada", TotalRating: 9}}, ratings)

	aggs, err := c.GetRatingData(ctx, cred, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 0, 2: 3}, aggs[0].Ratings)

	records, err := c.GetResponses(ctx, cred, "s1")
	require.NoError(t, err)
	assert.NotNil(t, records)

	_, err = c.GetAnsweredSurveys(ctx, cred)
	require.NoError(t, err)
	require.NoError(t, c.DeleteSurvey(ctx, cred, "s1"))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/survey/get-user-survey"},
		{http.MethodGet, "/api/survey/survey-ratings/s1"},
		{http.MethodGet, "/api/survey/survey/s1/rating-data"},
		{http.MethodGet, "/api/survey/surveys/s1/answers"},
		{http.MethodGet, "/api/survey/get-answered-survey"},
		{http.MethodDelete, "/api/survey/delete-survey/s1"},
	}, calls)
}

func TestAPIClient_SubmitAnswers(t *testing.T) {
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/survey/surveys/s1/answers", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	})

	err := c.SubmitAnswers(context.Background(), credential("tok"), model.SubmissionBatch{
		SurveyID: "s1",
		User:     "u1",
		Answers:  []model.Answer{{QuestionID: "q1", Answer: model.RatingAnswer(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", body["user"])
	assert.Len(t, body["answers"], 1)
}

func TestAPIClient_CreateSurveyPayload(t *testing.T) {
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/survey/create-survey", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"_id":"new","title":"T","questions":[]}`)
	})

	created, err := c.CreateSurvey(context.Background(), credential("tok"), model.Survey{ID: "stale", Title: "T", Owner: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.NotContains(t, body, "_id")
	assert.Equal(t, "u1", body["user"])
	assert.Equal(t, []interface{}{}, body["questions"])
}

func TestAPIClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, r.Header.Get("Authorization"))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"abc","user":{"_id":"u1","name":"Ada","isAdmin":true}}`)
	})
	ctx := context.Background()

	resp, err := c.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.True(t, resp.User.IsAdmin)

	_, err = c.Login(ctx, "ada@example.com", "nope")
	assert.ErrorIs(t, err, model.ErrAuthRequired)
}

func TestAPIClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"_id":`)
	})
	_, err := c.GetSurvey(context.Background(), nil, "s1")
	assert.ErrorIs(t, err, model.ErrServer)
	assert.NotErrorIs(t, err, model.ErrNetwork)
}
