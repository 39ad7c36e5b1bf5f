package dashboards

import (
	"context"
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"
)

type Service interface {
	Available() []string
	Get(ctx context.Context, userID uint) (*Config, error)
	Save(ctx context.Context, userID uint, dashboardIDs []string) (*Config, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Available() []string {
	return append([]string(nil), Catalogue...)
}

// Get returns the user's layout, storing the default one on first read.
func (s *service) Get(ctx context.Context, userID uint) (*Config, error) {
	cfg, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("load dashboards: %w", err)
	}

	cfg = &Config{
		UserID:       userID,
		DashboardIDs: append([]string(nil), DefaultSelection...),
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("create default dashboards: %w", err)
	}
	return cfg, nil
}

// Save replaces the selection. Unknown dashboard ids are rejected.
func (s *service) Save(ctx context.Context, userID uint, dashboardIDs []string) (*Config, error) {
	for _, id := range dashboardIDs {
		if !isKnown(id) {
			return nil, apperrors.BadRequest(fmt.Sprintf("unknown dashboard: %s", id))
		}
	}

	cfg, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("load dashboards: %w", err)
		}
		cfg = &Config{UserID: userID}
	}

	cfg.DashboardIDs = append([]string{}, dashboardIDs...)
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save dashboards: %w", err)
	}
	return cfg, nil
}
