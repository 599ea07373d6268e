package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"surveykit/internal/session"
)

type contextKey string

const (
	SessionKey  contextKey = "session"
	DraftKeyKey contextKey = "draftKey"
)

// DraftKeyHeader carries the anonymous answer-draft key between requests
const DraftKeyHeader = "X-Draft-Key"

// LoginRedirect is where unauthenticated callers are sent
const LoginRedirect = "/login"

// SessionResolver maps a bearer session id to its session context
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*session.Context, error)
}

// AuthMiddleware resolves BFF sessions from the Authorization header
type AuthMiddleware struct {
	sessions SessionResolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession rejects requests without a live session
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			Unauthorized(w, "missing authorization header")
			return
		}

		sc, err := m.sessions.Resolve(r.Context(), token)
		if err != nil {
			Unauthorized(w, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalSession attaches a session when one resolves and lets anonymous
// callers through
func (m *AuthMiddleware) OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := session.Anonymous()
		if token := extractBearerToken(r); token != "" {
			if resolved, err := m.sessions.Resolve(r.Context(), token); err == nil {
				sc = resolved
			}
		}

		ctx := context.WithValue(r.Context(), SessionKey, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireSession
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSession(r.Context()).IsAdmin() {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DraftKey reads X-Draft-Key and echoes it back. Only keys shaped like
// session.NewAnonymousKey are accepted; anything else is replaced by a
// fresh one. Logged-in users are keyed by their session further down.
func DraftKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(DraftKeyHeader))
		if !session.IsAnonymousKey(key) {
			key = session.NewAnonymousKey()
		}
		w.Header().Set(DraftKeyHeader, key)

		ctx := context.WithValue(r.Context(), DraftKeyKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession extracts the session from context, anonymous when absent
func GetSession(ctx context.Context) *session.Context {
	if v, ok := ctx.Value(SessionKey).(*session.Context); ok && v != nil {
		return v
	}
	return session.Anonymous()
}

// GetDraftKey extracts the draft key from context
func GetDraftKey(ctx context.Context) string {
	if v, ok := ctx.Value(DraftKeyKey).(string); ok {
		return v
	}
	return ""
}

// Unauthorized writes a 401 that points the caller at the login view
func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":    message,
		"redirect": LoginRedirect,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
