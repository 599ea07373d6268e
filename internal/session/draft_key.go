package session

import (
	"strings"

	"github.com/google/uuid"
)

// Draft keys name a cached in-progress submission. Anonymous and user keys
// live in separate namespaces so a caller-supplied key never reaches
// another user's answers.
const (
	anonymousKeyPrefix = "anon:"
	userKeyPrefix      = "user:"
)

// NewAnonymousKey issues a draft key for a respondent without a session
func NewAnonymousKey() string {
	return anonymousKeyPrefix + uuid.New().String()
}

// IsAnonymousKey reports whether key has the shape NewAnonymousKey hands out
func IsAnonymousKey(key string) bool {
	id, ok := strings.CutPrefix(key, anonymousKeyPrefix)
	if !ok || len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// UserDraftKey is the draft key of a logged-in respondent
func UserDraftKey(userID string) string {
	return userKeyPrefix + userID
}
