package users

import (
	"context"
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/security"
)

type Service interface {
	GetProfile(ctx context.Context, principal *security.Principal) (*UserResponse, error)
	UpdatePreferences(ctx context.Context, userID uint, req *UpdatePreferencesRequest) (*UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetProfile reads the stored profile, falling back to the token claims when
// the record is gone.
func (s *service) GetProfile(ctx context.Context, principal *security.Principal) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		return &UserResponse{
			ID:                  principal.UserID,
			Email:               principal.Email,
			Name:                principal.Name,
			Role:                principal.Role,
			SiteIDs:             append([]uint{}, principal.SiteIDs...),
			PreferredLanguage:   DefaultLanguage,
			NotificationEnabled: true,
		}, nil
	}

	resp := ToResponse(user)
	return &resp, nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID uint, req *UpdatePreferencesRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if req.PreferredLanguage != nil {
		user.PreferredLanguage = *req.PreferredLanguage
	}
	if req.NotificationEnabled != nil {
		user.NotificationEnabled = *req.NotificationEnabled
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	resp := ToResponse(user)
	return &resp, nil
}
