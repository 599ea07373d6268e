package session

import (
	"errors"
	"fmt"
	"time"

	"surveykit/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed session token")

// CurrentUser exposes the identity of whoever is acting
type CurrentUser interface {
	User() (model.User, bool)
}

// Credential exposes the bearer token presented to the survey API
type Credential interface {
	Token() (string, bool)
}

// Context is the explicit session passed to every component that needs an
// identity or a credential
type Context struct {
	id        string
	token     string
	user      model.User
	hasUser   bool
	expiresAt time.Time
}

// New builds a session from a token and a known user
func New(id, token string, user model.User, expiresAt time.Time) *Context {
	return &Context{
		id:        id,
		token:     token,
		user:      user,
		hasUser:   user.ID != "",
		expiresAt: expiresAt,
	}
}

// FromSession rebuilds a context from a stored session
func FromSession(s *model.Session) *Context {
	if s == nil {
		return Anonymous()
	}
	return New(s.ID, s.Token, s.User, s.ExpiresAt)
}

// Anonymous returns a session with neither user nor credential
func Anonymous() *Context {
	return &Context{}
}

// FromToken derives the user from the token's claims. The signature is not
// checked here; the survey API verifies every call.
func FromToken(token string) (*Context, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return New("", token, claims.User(), exp), nil
}

func (c *Context) ID() string { return c.id }

func (c *Context) ExpiresAt() time.Time { return c.expiresAt }

func (c *Context) User() (model.User, bool) {
	if c == nil || !c.hasUser {
		return model.User{}, false
	}
	return c.user, true
}

func (c *Context) Token() (string, bool) {
	if c == nil || c.token == "" {
		return "", false
	}
	if !c.expiresAt.IsZero() && time.Now().After(c.expiresAt) {
		return "", false
	}
	return c.token, true
}

// IsAdmin reports whether the current user may author surveys
func (c *Context) IsAdmin() bool {
	u, ok := c.User()
	return ok && u.IsAdmin
}

// Session converts the context into its stored form
func (c *Context) Session() *model.Session {
	return &model.Session{
		ID:        c.id,
		Token:     c.token,
		User:      c.user,
		ExpiresAt: c.expiresAt,
	}
}

// Claims are the fields the survey API puts in its tokens. Different
// deployments name the user id differently.
type Claims struct {
	ID      string `json:"id,omitempty"`
	MongoID string `json:"_id,omitempty"`
	UserID  string `json:"userId,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

// User maps the claims to a model.User
func (c *Claims) User() model.User {
	id := c.ID
	for _, candidate := range []string{c.MongoID, c.UserID, c.Subject} {
		if id != "" {
			break
		}
		id = candidate
	}
	return model.User{
		ID:      id,
		Name:    c.Name,
		Email:   c.Email,
		IsAdmin: c.IsAdmin,
	}
}

// ParseClaims decodes the token payload without verifying it
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}
