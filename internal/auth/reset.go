package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/security"
	"opshub/internal/users"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"

	"github.com/google/uuid"
)

const DefaultResetTokenTTL = time.Hour

var (
	ErrPasswordMismatch  = apperrors.BadRequest("passwords do not match")
	ErrInvalidResetToken = apperrors.BadRequest("invalid or expired reset token")
	ErrResetTokenExpired = apperrors.BadRequest("reset token has expired")
)

// ResetFlow issues single-use password reset tokens and redeems them.
type ResetFlow struct {
	repo     users.Repository
	hasher   security.PasswordHasher
	notifier ResetNotifier
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	log      *logger.Logger
	metrics  *metrics.AuthMetrics
}

func NewResetFlow(repo users.Repository, hasher security.PasswordHasher, notifier ResetNotifier, ttl time.Duration, log *logger.Logger, m *metrics.AuthMetrics) *ResetFlow {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetFlow{
		repo:     repo,
		hasher:   hasher,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
		log:      log,
		metrics:  m,
	}
}

// RequestReset stores a fresh token for email and hands it to the notifier.
// Unknown addresses succeed without any change so callers cannot probe for accounts.
func (f *ResetFlow) RequestReset(ctx context.Context, email string) error {
	user, err := f.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("lookup reset account: %w", err)
	}

	token := f.newToken()
	user.SetResetToken(token, f.now().Add(f.ttl))
	if err := f.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	f.log.LogPasswordResetRequested(ctx, user.ID)
	f.metrics.ResetRequested()

	if f.notifier != nil {
		if err := f.notifier.Send(ctx, user.Email, token); err != nil {
			f.log.ErrorWithContext(ctx, "Reset notification failed", err, map[string]interface{}{
				"user_id": user.ID,
			})
		}
	}
	return nil
}

// ResetPassword redeems token, sets the new password and unlocks the account.
func (f *ResetFlow) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := f.repo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	if user.ResetTokenExpired(f.now()) {
		return ErrResetTokenExpired
	}

	digest, err := f.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.SetPassword(digest)
	user.ClearResetToken()
	user.FailedLoginAttempts = 0
	user.Locked = false

	if err := f.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	f.log.LogPasswordReset(ctx, user.ID)
	return nil
}
