package notifications

import (
	"encoding/json"
	"time"
)

// In-app notification types.
const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
	TypeSuccess = "success"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is a message shown in a user's notification centre.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index:idx_notifications_user_created,priority:1"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"type:text"`
	Type      string    `json:"type" gorm:"type:varchar(16);not null;default:'info'"`
	Priority  string    `json:"priority" gorm:"type:varchar(16);not null;default:'medium'"`
	IsRead    bool      `json:"isRead" gorm:"not null;default:false"`
	ActionURL *string   `json:"actionUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_notifications_user_created,priority:2,sort:desc"`
}

// PasswordResetEvent is the broker message carrying a reset token to the
// delivery worker.
type PasswordResetEvent struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userId,omitempty"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *PasswordResetEvent) PartitionKey() string {
	return e.Email
}

func (e *PasswordResetEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// IsExpired reports whether the token inside can no longer be redeemed.
func (e *PasswordResetEvent) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(now)
}
