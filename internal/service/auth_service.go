package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"surveykit/internal/cache"
	"surveykit/internal/client"
	"surveykit/internal/model"
	"surveykit/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// AuthService logs users in against the survey API and keeps their sessions
type AuthService struct {
	api      client.SurveyAPI
	sessions cache.SessionCache
	validate *validator.Validate
	ttl      time.Duration
	log      *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(api client.SurveyAPI, sessions cache.SessionCache, ttl time.Duration, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		api:      api,
		sessions: sessions,
		validate: validator.New(),
		ttl:      ttl,
		log:      log,
	}
}

// Login validates credentials with the survey API and opens a session
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrAuthRequired) || errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", model.ErrAuthRequired, ErrInvalidCredentials)
		}
		return nil, err
	}

	return s.open(ctx, resp)
}

// Register creates an account and opens a session for it. The API returns
// only a token, so the user comes from its claims.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		resp.User = &model.User{Name: req.Name, Email: req.Email}
	}

	return s.open(ctx, resp)
}

// Logout forgets the session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Resolve maps a session id presented by a caller to its session context
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*session.Context, error) {
	if sessionID == "" {
		return nil, model.ErrAuthRequired
	}
	stored, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: %w", model.ErrAuthRequired, ErrInvalidSession)
	}
	sc := session.FromSession(stored)
	if _, ok := sc.Token(); !ok {
		return nil, fmt.Errorf("%w: %w", model.ErrAuthRequired, ErrInvalidSession)
	}
	return sc, nil
}

func (s *AuthService) open(ctx context.Context, resp *model.AuthResponse) (*model.LoginResponse, error) {
	user := model.User{}
	if resp.User != nil {
		user = *resp.User
	}

	var expiresAt time.Time
	if claims, err := session.ParseClaims(resp.Token); err == nil {
		fromToken := claims.User()
		if user.ID == "" {
			user.ID = fromToken.ID
		}
		if !user.IsAdmin {
			user.IsAdmin = fromToken.IsAdmin
		}
		if user.Name == "" {
			user.Name = fromToken.Name
		}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	} else {
		s.log.Debug("token claims not readable", slog.Any("err", err))
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: no user id in login response", model.ErrServer)
	}
	if expiresAt.IsZero() && s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	sc := session.New(uuid.New().String(), resp.Token, user, expiresAt)
	if err := s.sessions.Set(ctx, sc.Session()); err != nil {
		return nil, err
	}

	s.log.Info("session opened", slog.String("user", user.ID), slog.Bool("admin", user.IsAdmin))

	return &model.LoginResponse{
		SessionID: sc.ID(),
		Token:     resp.Token,
		User:      user,
	}, nil
}

func (s *AuthService) check(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return &model.ValidationError{Problems: problems}
		}
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}
