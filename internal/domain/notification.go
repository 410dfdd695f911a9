package domain

import "time"

// Notification is an entry in a user's notification list.
type Notification struct {
	ID            string
	UserID        string
	Type          string
	Message       string
	ReferenceType string
	ReferenceID   string
	Payload       map[string]any
	Read          bool
	CreatedAt     time.Time
}

// NotificationID derives a stable notification id from the event and recipient,
// so redelivering an event does not duplicate notifications.
func NotificationID(eventID, userID string) string {
	return eventID + ":" + userID
}
