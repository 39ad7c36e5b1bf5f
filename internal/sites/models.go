package sites

import "time"

const StatusActive = "active"

// Site is a construction site users can be assigned to.
type Site struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Location  string    `json:"location" gorm:"index"`
	Status    string    `json:"status" gorm:"type:varchar(32);not null;default:'active';index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
