package auth

import (
	"context"
	"testing"
	"time"

	"opshub/internal/shared/security"
	"opshub/internal/users"
	"opshub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetFlow_TokenExpiresAfterTTL(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.Save(context.Background(), &users.User{Email: "a@x.com", Name: "A"}))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	flow := NewResetFlow(store, security.NewPasswordHasher(), nil, 0, logger.Discard(), nil)
	flow.now = func() time.Time { return now }
	flow.newToken = func() string { return "fixed-token" }

	require.NoError(t, flow.RequestReset(context.Background(), "a@x.com"))
	stored := store.get(t, "a@x.com")
	require.NotNil(t, stored.PasswordResetExpiresAt)
	assert.Equal(t, now.Add(DefaultResetTokenTTL), *stored.PasswordResetExpiresAt)

	now = now.Add(DefaultResetTokenTTL)
	err := flow.ResetPassword(context.Background(), "fixed-token", "pw", "pw")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetFlow_MissingExpiryCountsAsExpired(t *testing.T) {
	store := newMemoryStore()
	token := "orphan"
	require.NoError(t, store.Save(context.Background(), &users.User{Email: "a@x.com", PasswordResetToken: &token}))

	flow := NewResetFlow(store, security.NewPasswordHasher(), nil, time.Hour, logger.Discard(), nil)
	err := flow.ResetPassword(context.Background(), token, "pw", "pw")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}
