package preferences

import "time"

// UserPreferences is a free-form JSON document of UI settings.
type UserPreferences struct {
	ID          uint                   `json:"-" gorm:"primaryKey"`
	UserID      uint                   `json:"userId" gorm:"uniqueIndex;not null"`
	Preferences map[string]interface{} `json:"preferences" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time              `json:"-"`
	UpdatedAt   time.Time              `json:"-"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
