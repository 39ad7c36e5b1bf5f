package dashboards

import "time"

// Catalogue lists every dashboard a user may pin.
var Catalogue = []string{
	"kpi-overview",
	"safety-metrics",
	"project-timeline",
	"resource-allocation",
	"budget-tracking",
	"quality-control",
}

// DefaultSelection is what a user sees before saving a layout.
var DefaultSelection = []string{"kpi-overview", "safety-metrics"}

// Config is a user's ordered dashboard selection.
type Config struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"userId" gorm:"uniqueIndex;not null"`
	DashboardIDs []string  `json:"dashboardIds" gorm:"serializer:json;type:jsonb"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Config) TableName() string {
	return "dashboard_configs"
}

func isKnown(id string) bool {
	for _, known := range Catalogue {
		if known == id {
			return true
		}
	}
	return false
}
