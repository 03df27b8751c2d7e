package model

import "time"

// NotificationType classifies a notification for presentation.
type NotificationType string

const (
	// NotificationSuccess marks a positive event.
	NotificationSuccess NotificationType = "success"
	// NotificationInfo marks a neutral informational event.
	NotificationInfo NotificationType = "info"
)

// Notification is an ephemeral, session-scoped message. Notifications are
// never persisted.
type Notification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    time.Time        `json:"time"`
	IsRead  bool             `json:"isRead"`
	Type    NotificationType `json:"type"`
}
