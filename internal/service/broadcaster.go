package service

import (
	"time"

	"surveykit/internal/model"

	"github.com/google/uuid"
)

// Notifier pushes dismissable notifications to a user's open views
// (implemented by the ws hub; avoids import cycle)
type Notifier interface {
	Notify(userID string, n model.Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, model.Notification) {}

// NewNotification builds a notification with a fresh id
func NewNotification(level model.NotificationLevel, message string) model.Notification {
	return model.Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

func notify(n Notifier, user model.User, level model.NotificationLevel, message string) {
	if n == nil || user.ID == "" {
		return
	}
	n.Notify(user.ID, NewNotification(level, message))
}
