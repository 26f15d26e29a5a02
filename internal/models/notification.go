// internal/models/notification.go
package models

import "time"

// Embed colors used by the notification sinks.
const (
	ColorSuccess = 0x2ECC71
	ColorFailure = 0xE74C3C
)

// NotificationEvent is handed to the notification sink after every dispatch. Delivery is
// best-effort.
type NotificationEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       int       `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}
