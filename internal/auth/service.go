package auth

import (
	"context"
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/config"
	"opshub/internal/shared/security"
	"opshub/internal/users"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"
)

// Login methods, used as log and metric labels.
const (
	MethodPassword = "password"
	MethodMockSSO  = "mock_sso"
	MethodRefresh  = "refresh"
	MethodRegister = "register"
)

var (
	ErrInvalidCredentials  = apperrors.Unauthorized("invalid email or password")
	ErrAccountLocked       = apperrors.Unauthorized("account is locked")
	ErrInvalidRefreshToken = apperrors.Unauthorized("invalid or expired refresh token")
	ErrEmailRegistered     = apperrors.BadRequest("email already registered")
	ErrUserNotFound        = apperrors.NotFound("user not found")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	MockSSO(ctx context.Context, req *MockSSORequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type service struct {
	repo    users.Repository
	tokens  *security.TokenService
	hasher  security.PasswordHasher
	lockout *LockoutPolicy
	reset   *ResetFlow
	log     *logger.Logger
	metrics *metrics.AuthMetrics
}

type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *metrics.AuthMetrics
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(m *metrics.AuthMetrics) Option {
	return func(o *options) { o.metrics = m }
}

func NewService(repo users.Repository, tokens *security.TokenService, hasher security.PasswordHasher, notifier ResetNotifier, cfg config.AuthConfig, opts ...Option) Service {
	o := options{log: logger.GetDefault()}
	for _, opt := range opts {
		opt(&o)
	}

	return &service{
		repo:    repo,
		tokens:  tokens,
		hasher:  hasher,
		lockout: NewLockoutPolicy(repo, o.log, o.metrics),
		reset:   NewResetFlow(repo, hasher, notifier, cfg.ResetTokenTTL, o.log, o.metrics),
		log:     o.log,
		metrics: o.metrics,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	email := normalizeEmail(req.Email)
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailRegistered
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := users.RoleOperational
	if users.IsValidRole(req.Role) {
		role = users.Role(req.Role)
	}
	language := req.PreferredLanguage
	if language == "" {
		language = users.DefaultLanguage
	}

	user := &users.User{
		Email:               email,
		Name:                req.Name,
		Role:                role,
		SiteIDs:             req.SiteIDs,
		PreferredLanguage:   language,
		NotificationEnabled: true,
	}
	user.SetPassword(digest)

	if err := s.repo.Save(ctx, user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.LogAuthSuccess(ctx, user.ID, MethodRegister)
	s.metrics.Attempt(MethodRegister, metrics.OutcomeSuccess)
	return s.session(user, false)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.fail(ctx, "unknown email", email, metrics.OutcomeFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Locked {
		s.fail(ctx, "account locked", email, metrics.OutcomeLocked)
		return nil, ErrAccountLocked
	}

	if !s.hasher.Verify(req.Password, user.Digest()) {
		if err := s.lockout.RecordFailure(ctx, user); err != nil {
			return nil, err
		}
		s.fail(ctx, "bad password", email, metrics.OutcomeFailure)
		return nil, ErrInvalidCredentials
	}

	if err := s.lockout.RecordSuccess(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, user.ID, MethodPassword)
	s.metrics.Attempt(MethodPassword, metrics.OutcomeSuccess)
	return s.session(user, req.RememberMe)
}

// MockSSO signs in by e-mail alone, creating an operational account on first use.
func (s *service) MockSSO(ctx context.Context, req *MockSSORequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		user = &users.User{
			Email:               email,
			Name:                NameFromEmail(email),
			Role:                users.RoleOperational,
			PreferredLanguage:   users.DefaultLanguage,
			NotificationEnabled: true,
		}
	}

	if err := s.lockout.RecordSuccess(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, user.ID, MethodMockSSO)
	s.metrics.Attempt(MethodMockSSO, metrics.OutcomeSuccess)
	return s.session(user, false)
}

// Refresh mints a new pair from a refresh token. The presented token stays
// valid until it expires.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if !s.tokens.ValidateRefresh(refreshToken) {
		s.metrics.Attempt(MethodRefresh, metrics.OutcomeFailure)
		return nil, ErrInvalidRefreshToken
	}

	email, err := s.tokens.ExtractEmail(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Locked {
		s.metrics.Attempt(MethodRefresh, metrics.OutcomeLocked)
		return nil, ErrAccountLocked
	}

	s.metrics.Attempt(MethodRefresh, metrics.OutcomeSuccess)
	return s.session(user, false)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	return s.reset.RequestReset(ctx, normalizeEmail(email))
}

func (s *service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	return s.reset.ResetPassword(ctx, req.Token, req.NewPassword, req.ConfirmPassword)
}

func (s *service) fail(ctx context.Context, reason, email, outcome string) {
	s.log.LogAuthFailure(ctx, reason, email)
	s.metrics.Attempt(MethodPassword, outcome)
}

// session issues a token pair for user. rememberMe only changes the advertised
// expiresIn; both tokens keep their configured lifetimes.
func (s *service) session(user *users.User, rememberMe bool) (*AuthResponse, error) {
	sub := subjectOf(user)

	access, err := s.tokens.IssueAccess(sub)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(sub)
	if err != nil {
		return nil, err
	}
	s.metrics.Issued(string(security.AccessToken))
	s.metrics.Issued(string(security.RefreshToken))

	ttl := s.tokens.AccessTTL()
	if rememberMe {
		ttl = s.tokens.RefreshTTL()
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int64(ttl.Seconds()),
		User:         users.ToResponse(user),
	}, nil
}

func subjectOf(user *users.User) security.Subject {
	return security.Subject{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    string(user.Role),
		SiteIDs: user.SiteIDs,
	}
}
