package auth

import (
	"context"
	"fmt"
	"time"

	"opshub/internal/users"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"
)

// MaxFailedAttempts is the number of consecutive bad passwords that locks an account.
const MaxFailedAttempts = 5

// LockoutPolicy tracks consecutive login failures. A locked account stays
// locked until its password is reset.
//
// Concurrent failures on the same account may lose increments; the counter is
// a heuristic, not a hard boundary.
type LockoutPolicy struct {
	repo        users.Repository
	maxAttempts int
	now         func() time.Time
	log         *logger.Logger
	metrics     *metrics.AuthMetrics
}

func NewLockoutPolicy(repo users.Repository, log *logger.Logger, m *metrics.AuthMetrics) *LockoutPolicy {
	return &LockoutPolicy{
		repo:        repo,
		maxAttempts: MaxFailedAttempts,
		now:         time.Now,
		log:         log,
		metrics:     m,
	}
}

// RecordFailure counts one more bad password and persists the user before returning.
func (p *LockoutPolicy) RecordFailure(ctx context.Context, user *users.User) error {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= p.maxAttempts && !user.Locked {
		user.Locked = true
		p.log.LogAccountLocked(ctx, user.ID, user.FailedLoginAttempts)
		p.metrics.Locked()
	}

	if err := p.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	return nil
}

// RecordSuccess clears the failure counter and stamps the login time.
func (p *LockoutPolicy) RecordSuccess(ctx context.Context, user *users.User) error {
	user.FailedLoginAttempts = 0
	now := p.now()
	user.LastLoginAt = &now

	if err := p.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}
