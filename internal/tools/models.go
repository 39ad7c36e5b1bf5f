package tools

import "time"

// Tool is a shortcut pinned to a user's home page.
type Tool struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"-" gorm:"not null;index:idx_tools_user_order,priority:1"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	URL          string    `json:"url" gorm:"not null"`
	Icon         string    `json:"icon" gorm:"not null"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:0;index:idx_tools_user_order,priority:2"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
