package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"opshub/pkg/logger"
)

type Service interface {
	Get(ctx context.Context, userID uint) (*UserPreferences, error)
	Replace(ctx context.Context, userID uint, prefs map[string]interface{}) (*UserPreferences, error)
	Merge(ctx context.Context, userID uint, partial map[string]interface{}) (*UserPreferences, error)
	Delete(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

// Get returns an empty document for users who never saved one.
func (s *service) Get(ctx context.Context, userID uint) (*UserPreferences, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *service) Replace(ctx context.Context, userID uint, values map[string]interface{}) (*UserPreferences, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if values == nil {
		values = map[string]interface{}{}
	}
	prefs.Preferences = values
	if err := s.repo.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.log.InfoContext(ctx, "Preferences updated", slog.Uint64("user_id", uint64(userID)))
	return prefs, nil
}

// Merge overwrites top-level keys only.
func (s *service) Merge(ctx context.Context, userID uint, partial map[string]interface{}) (*UserPreferences, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for k, v := range partial {
		prefs.Preferences[k] = v
	}
	if err := s.repo.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.log.InfoContext(ctx, "Preferences merged", slog.Uint64("user_id", uint64(userID)))
	return prefs, nil
}

func (s *service) Delete(ctx context.Context, userID uint) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	s.log.InfoContext(ctx, "Preferences deleted", slog.Uint64("user_id", uint64(userID)))
	return nil
}

func (s *service) load(ctx context.Context, userID uint) (*UserPreferences, error) {
	prefs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrPreferencesNotFound) {
			return nil, fmt.Errorf("load preferences: %w", err)
		}
		prefs = &UserPreferences{UserID: userID}
	}
	if prefs.Preferences == nil {
		prefs.Preferences = map[string]interface{}{}
	}
	return prefs, nil
}
