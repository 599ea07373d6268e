package service

import (
	"context"
	"testing"
	"time"

	"surveykit/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	token := testToken(t, jwt.MapClaims{"id": "u1", "isAdmin": true})

	api := new(MockSurveyAPI)
	api.On("Login", mock.Anything, "ada@example.com", "secret").
		Return(&model.AuthResponse{Token: token, User: &model.User{ID: "u1", Name: "Ada"}}, nil)

	sessions := newMemSessionCache()
	svc := NewAuthService(api, sessions, time.Hour, nil)

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, token, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.True(t, resp.User.IsAdmin, "admin flag comes from claims")

	sc, err := svc.Resolve(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.True(t, sc.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(time.Hour), sc.ExpiresAt(), time.Minute)

	require.NoError(t, svc.Logout(ctx, resp.SessionID))
	_, err = svc.Resolve(ctx, resp.SessionID)
	assert.ErrorIs(t, err, model.ErrAuthRequired)
	assert.ErrorIs(t, err, ErrInvalidSession)

	api.AssertExpectations(t)
}

func TestAuthService_LoginRejected(t *testing.T) {
	api := new(MockSurveyAPI)
	api.On("Login", mock.Anything, "ada@example.com", "wrong").
		Return(nil, &model.APIError{Kind: model.ErrAuthRequired, Status: 401, Message: "bad"})

	svc := NewAuthService(api, newMemSessionCache(), time.Hour, nil)
	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, model.ErrAuthRequired)
}

func TestAuthService_ValidatesInput(t *testing.T) {
	api := new(MockSurveyAPI)
	svc := NewAuthService(api, newMemSessionCache(), time.Hour, nil)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "not-an-email"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "123"})
	assert.ErrorIs(t, err, model.ErrValidation)

	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RegisterUsesClaims(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := testToken(t, jwt.MapClaims{"_id": "u7", "exp": exp.Unix()})

	api := new(MockSurveyAPI)
	api.On("Register", mock.Anything, "Grace", "grace@example.com", "secret1").
		Return(&model.AuthResponse{Token: token}, nil)

	svc := NewAuthService(api, newMemSessionCache(), time.Hour, nil)
	resp, err := svc.Register(context.Background(), model.RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: "u7", Name: "Grace", Email: "grace@example.com"}, resp.User)

	sc, err := svc.Resolve(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.True(t, sc.ExpiresAt().Equal(exp))
}

func TestAuthService_NoUserID(t *testing.T) {
	api := new(MockSurveyAPI)
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.AuthResponse{Token: "opaque"}, nil)

	svc := NewAuthService(api, newMemSessionCache(), time.Hour, nil)
	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.co", Password: "x"})
	assert.ErrorIs(t, err, model.ErrServer)
}

func TestAuthService_ResolveEmpty(t *testing.T) {
	svc := NewAuthService(new(MockSurveyAPI), newMemSessionCache(), time.Hour, nil)
	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrAuthRequired)
}
