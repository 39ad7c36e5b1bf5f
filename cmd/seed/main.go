package main

import (
	"context"
	"fmt"
	"log"

	"opshub/internal/auth"
	"opshub/internal/dashboards"
	"opshub/internal/shared/config"
	"opshub/internal/shared/database"
	"opshub/internal/shared/security"
	"opshub/internal/sites"
	"opshub/internal/tools"
	"opshub/internal/users"
	"opshub/pkg/logger"
)

// Every seeded account can sign in with this password as well as through
// the mock SSO screen.
const seedPassword = "Password123!"

type Seeder struct {
	db     *database.DB
	hasher security.PasswordHasher
}

func main() {
	fmt.Println("Starting OpsHub database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg, logger.GetDefault())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, hasher: security.NewPasswordHasher()}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\nSeeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables, dependents first.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"notifications",
		"user_preferences",
		"dashboard_configs",
		"tools",
		"users",
		"sites",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedSites(); err != nil {
		return fmt.Errorf("failed to seed sites: %w", err)
	}

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedWorkspaces(userIDs); err != nil {
		return fmt.Errorf("failed to seed workspaces: %w", err)
	}

	// cached site lists would point at the truncated rows
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

func (s *Seeder) SeedSites() error {
	fmt.Println("  Seeding sites...")

	data := []sites.Site{
		{Name: "Chantier Lyon Part-Dieu", Location: "Lyon", Status: sites.StatusActive},
		{Name: "Tour Montparnasse", Location: "Paris", Status: sites.StatusActive},
		{Name: "Entrepôt Marseille", Location: "Marseille", Status: sites.StatusActive},
		{Name: "Résidence Bordeaux Lac", Location: "Bordeaux", Status: "completed"},
	}

	for i := range data {
		if err := s.db.PostgreSQL.Create(&data[i]).Error; err != nil {
			return fmt.Errorf("failed to create site %s: %w", data[i].Name, err)
		}
		fmt.Printf("    Created site %d: %s\n", data[i].ID, data[i].Name)
	}
	return nil
}

// SeedUsers creates one account per mock SSO identity.
func (s *Seeder) SeedUsers() ([]uint, error) {
	fmt.Println("  Seeding users...")

	digest, err := s.hasher.Hash(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var ids []uint
	for _, mock := range auth.MockUsers {
		user := users.User{
			Email:               mock.Email,
			Name:                mock.Name,
			Role:                users.Role(mock.Role),
			SiteIDs:             mock.SiteIDs,
			PreferredLanguage:   users.DefaultLanguage,
			NotificationEnabled: true,
		}
		user.SetPassword(digest)

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", mock.Email, err)
		}
		ids = append(ids, user.ID)
		fmt.Printf("    Created user: %s (%s)\n", user.Email, user.Role)
	}
	return ids, nil
}

// SeedWorkspaces gives every user a couple of shortcuts and the default
// dashboard selection.
func (s *Seeder) SeedWorkspaces(userIDs []uint) error {
	fmt.Println("  Seeding tools and dashboards...")

	shortcuts := []tools.Tool{
		{Name: "Planning", Description: "Site schedules", URL: "https://planning.smartsolutions.fr", Icon: "calendar"},
		{Name: "Documents", Description: "Shared drive", URL: "https://docs.smartsolutions.fr", Icon: "folder"},
	}

	for _, userID := range userIDs {
		for order, shortcut := range shortcuts {
			tool := shortcut
			tool.UserID = userID
			tool.DisplayOrder = order
			if err := s.db.PostgreSQL.Create(&tool).Error; err != nil {
				return fmt.Errorf("failed to create tool for user %d: %w", userID, err)
			}
		}

		layout := dashboards.Config{UserID: userID, DashboardIDs: append([]string(nil), dashboards.DefaultSelection...)}
		if err := s.db.PostgreSQL.Create(&layout).Error; err != nil {
			return fmt.Errorf("failed to create dashboard config for user %d: %w", userID, err)
		}
	}
	return nil
}
