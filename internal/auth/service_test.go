package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/config"
	"opshub/internal/shared/security"
	"opshub/internal/users"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-process users.Repository. Records are copied on the
// way in and out so tests observe only what was saved.
type memoryStore struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]users.User
	saves  int
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, byID: map[uint]users.User{}}
}

func (m *memoryStore) find(match func(users.User) bool) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (m *memoryStore) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.find(func(u users.User) bool { return u.Email == email })
}

func (m *memoryStore) FindByID(ctx context.Context, id uint) (*users.User, error) {
	return m.find(func(u users.User) bool { return u.ID == id })
}

func (m *memoryStore) FindByResetToken(ctx context.Context, token string) (*users.User, error) {
	if token == "" {
		return nil, users.ErrUserNotFound
	}
	return m.find(func(u users.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token
	})
}

func (m *memoryStore) Save(ctx context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for id, u := range m.byID {
		if u.Email == user.Email && id != user.ID {
			return users.ErrEmailTaken
		}
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.saves++
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryStore) get(t *testing.T, email string) users.User {
	t.Helper()
	u, err := m.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return *u
}

type recordingNotifier struct {
	mu     sync.Mutex
	sent   map[string]string
	failed bool
}

func (n *recordingNotifier) Send(ctx context.Context, email, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = map[string]string{}
	}
	n.sent[email] = token
	if n.failed {
		return errors.New("broker down")
	}
	return nil
}

var testJWT = config.JWTConfig{
	Secret:     strings.Repeat("k", 32),
	AccessTTL:  24 * time.Hour,
	RefreshTTL: 7 * 24 * time.Hour,
	Issuer:     "hub-smart-solutions",
	Header:     "Authorization",
	Prefix:     "Bearer ",
}

type fixture struct {
	svc      Service
	store    *memoryStore
	tokens   *security.TokenService
	notifier *recordingNotifier
	metrics  *metrics.AuthMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := security.NewTokenService(testJWT)
	require.NoError(t, err)

	f := &fixture{
		store:    newMemoryStore(),
		tokens:   tokens,
		notifier: &recordingNotifier{},
		metrics:  metrics.NewAuthMetrics(prometheus.NewRegistry()),
	}
	f.svc = NewService(f.store, tokens, security.NewPasswordHasher(), f.notifier,
		config.AuthConfig{ResetTokenTTL: time.Hour},
		WithLogger(logger.Discard()),
		WithMetrics(f.metrics),
	)
	return f
}

func (f *fixture) register(t *testing.T, email, password string) *AuthResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), &RegisterRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		Name:            "Test User",
	})
	require.NoError(t, err)
	return resp
}

func login(f *fixture, email, password string) (*AuthResponse, error) {
	return f.svc.Login(context.Background(), &LoginRequest{Email: email, Password: password})
}

func TestRegister_CreatesUserWithDefaults(t *testing.T) {
	f := newFixture(t)

	resp := f.register(t, "A@X.com ", "Pw1!")

	assert.Equal(t, TokenTypeBearer, resp.TokenType)
	assert.Equal(t, int64(86400), resp.ExpiresIn)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "operational", resp.User.Role)
	assert.Equal(t, "fr", resp.User.PreferredLanguage)
	assert.True(t, resp.User.NotificationEnabled)

	stored := f.store.get(t, "a@x.com")
	assert.False(t, stored.Locked)
	assert.Zero(t, stored.FailedLoginAttempts)
	assert.NotEqual(t, "Pw1!", stored.Digest())
	assert.True(t, f.tokens.ValidateAccess(resp.AccessToken))
	assert.True(t, f.tokens.ValidateRefresh(resp.RefreshToken))
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	_, err := f.svc.Register(context.Background(), &RegisterRequest{
		Email: "b@x.com", Password: "one", ConfirmPassword: "two", Name: "B",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))

	_, err = f.svc.Register(context.Background(), &RegisterRequest{
		Email: "a@x.com", Password: "Pw1!", ConfirmPassword: "Pw1!", Name: "Again",
	})
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestLogin_SucceedsAndRoundTripsClaims(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	resp, err := login(f, "a@x.com", "Pw1!")
	require.NoError(t, err)
	assert.True(t, f.tokens.ValidateAccess(resp.AccessToken))
	assert.False(t, f.tokens.ValidateRefresh(resp.AccessToken))
	assert.False(t, f.tokens.ValidateAccess(resp.RefreshToken))

	email, err := f.tokens.ExtractEmail(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	id, err := f.tokens.ExtractUserID(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)

	stored := f.store.get(t, "a@x.com")
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogin_RememberMeOnlyChangesAdvertisedExpiry(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	resp, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "Pw1!", RememberMe: true})
	require.NoError(t, err)
	assert.Equal(t, int64(604800), resp.ExpiresIn)

	claims, err := f.tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestLogin_UnknownEmailAndBadPasswordShareMessage(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	_, unknown := login(f, "nobody@x.com", "Pw1!")
	_, wrong := login(f, "a@x.com", "wrong")

	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, ErrInvalidCredentials)
	assert.Equal(t, "invalid email or password", unknown.Error())
}

func TestLogin_LocksAfterFiveFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	for i := 1; i <= MaxFailedAttempts; i++ {
		_, err := login(f, "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, i, f.store.get(t, "a@x.com").FailedLoginAttempts)
	}
	assert.True(t, f.store.get(t, "a@x.com").Locked)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Lockouts))

	_, err := login(f, "a@x.com", "Pw1!")
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLogin_SuccessResetsFailureCounter(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	_, _ = login(f, "a@x.com", "wrong")
	_, _ = login(f, "a@x.com", "wrong")
	require.Equal(t, 2, f.store.get(t, "a@x.com").FailedLoginAttempts)

	_, err := login(f, "a@x.com", "Pw1!")
	require.NoError(t, err)
	assert.Zero(t, f.store.get(t, "a@x.com").FailedLoginAttempts)
}

func TestLogin_SSOAccountHasNoPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MockSSO(context.Background(), &MockSSORequest{Email: "jean.dupont@smartsolutions.fr"})
	require.NoError(t, err)

	_, err = login(f, "jean.dupont@smartsolutions.fr", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMockSSO_CreatesThenReuses(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.MockSSO(context.Background(), &MockSSORequest{Email: "jean.dupont@smartsolutions.fr"})
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", first.User.Name)
	assert.Equal(t, "operational", first.User.Role)

	second, err := f.svc.MockSSO(context.Background(), &MockSSORequest{Email: "jean.dupont@smartsolutions.fr"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, f.store.byID, 1)
	assert.NotNil(t, f.store.get(t, "jean.dupont@smartsolutions.fr").LastLoginAt)
}

func TestMockSSO_ResetsFailureCounterButNotLock(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")
	_, _ = login(f, "a@x.com", "wrong")
	require.Equal(t, 1, f.store.get(t, "a@x.com").FailedLoginAttempts)

	_, err := f.svc.MockSSO(context.Background(), &MockSSORequest{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Zero(t, f.store.get(t, "a@x.com").FailedLoginAttempts)
	assert.False(t, f.store.get(t, "a@x.com").Locked)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "a@x.com", "Pw1!")

	refreshed, err := f.svc.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.True(t, f.tokens.ValidateAccess(refreshed.AccessToken))

	// not rotated: the original refresh token keeps working
	_, err = f.svc.Refresh(context.Background(), session.RefreshToken)
	assert.NoError(t, err)

	_, err = f.svc.Refresh(context.Background(), session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = f.svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_LockedOrMissingUser(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "a@x.com", "Pw1!")

	user := f.store.get(t, "a@x.com")
	user.Locked = true
	require.NoError(t, f.store.Save(context.Background(), &user))

	_, err := f.svc.Refresh(context.Background(), session.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountLocked)

	delete(f.store.byID, user.ID)
	_, err = f.svc.Refresh(context.Background(), session.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestForgotPassword_UnknownEmailChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")
	saves := f.store.saves

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ghost@x.com"))

	assert.Equal(t, saves, f.store.saves)
	assert.Nil(t, f.store.get(t, "a@x.com").PasswordResetToken)
	assert.Empty(t, f.notifier.sent)
}

func TestResetPassword_UnlocksAndReplacesPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")
	for i := 0; i < MaxFailedAttempts; i++ {
		_, _ = login(f, "a@x.com", "wrong")
	}
	require.True(t, f.store.get(t, "a@x.com").Locked)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "a@x.com"))
	token := f.notifier.sent["a@x.com"]
	require.NotEmpty(t, token)

	stored := f.store.get(t, "a@x.com")
	require.NotNil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpiresAt)
	assert.Equal(t, token, *stored.PasswordResetToken)

	err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token: token, NewPassword: "N3w!", ConfirmPassword: "N3w!",
	})
	require.NoError(t, err)

	stored = f.store.get(t, "a@x.com")
	assert.False(t, stored.Locked)
	assert.Zero(t, stored.FailedLoginAttempts)
	assert.Nil(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpiresAt)

	_, err = login(f, "a@x.com", "Pw1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = login(f, "a@x.com", "N3w!")
	assert.NoError(t, err)

	// single use
	err = f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token: token, NewPassword: "again", ConfirmPassword: "again",
	})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPassword_Rejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")

	err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token: "x", NewPassword: "a", ConfirmPassword: "b",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token: "unknown", NewPassword: "a", ConfirmPassword: "a",
	})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
	assert.Equal(t, "invalid or expired reset token", err.Error())

	user := f.store.get(t, "a@x.com")
	user.SetResetToken("stale", time.Now().Add(-time.Minute))
	require.NoError(t, f.store.Save(context.Background(), &user))

	err = f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token: "stale", NewPassword: "a", ConfirmPassword: "a",
	})
	assert.ErrorIs(t, err, ErrResetTokenExpired)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
}

func TestForgotPassword_NotifierFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "Pw1!")
	f.notifier.failed = true

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "a@x.com"))
	assert.NotNil(t, f.store.get(t, "a@x.com").PasswordResetToken)
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("connection refused")

	_, err := login(f, "a@x.com", "Pw1!")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
