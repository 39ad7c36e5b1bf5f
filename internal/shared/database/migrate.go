package database

import (
	"opshub/internal/dashboards"
	"opshub/internal/notifications"
	"opshub/internal/preferences"
	"opshub/internal/sites"
	"opshub/internal/tools"
	"opshub/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&sites.Site{},
		&tools.Tool{},
		&dashboards.Config{},
		&preferences.UserPreferences{},
		&notifications.Notification{},
	)
}
