package users

import (
	"context"
	"testing"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	byID  map[uint]*User
	saves int
}

func newMemoryRepo(users ...*User) *memoryRepo {
	repo := &memoryRepo{byID: map[uint]*User{}}
	for _, u := range users {
		repo.byID[u.ID] = u
	}
	return repo
}

func (m *memoryRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *memoryRepo) FindByResetToken(ctx context.Context, token string) (*User, error) {
	return nil, ErrUserNotFound
}

func (m *memoryRepo) Save(ctx context.Context, user *User) error {
	m.saves++
	m.byID[user.ID] = user
	return nil
}

func TestGetProfile_FromStore(t *testing.T) {
	repo := newMemoryRepo(&User{
		ID:                  1,
		Email:               "jean.dupont@smartsolutions.fr",
		Name:                "Jean Dupont",
		Role:                RoleOperational,
		SiteIDs:             []uint{1, 2},
		PreferredLanguage:   "en",
		NotificationEnabled: false,
	})
	svc := NewService(repo)

	profile, err := svc.GetProfile(context.Background(), &security.Principal{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "en", profile.PreferredLanguage)
	assert.False(t, profile.NotificationEnabled)
	assert.Equal(t, []uint{1, 2}, profile.SiteIDs)
}

func TestGetProfile_FallsBackToPrincipal(t *testing.T) {
	svc := NewService(newMemoryRepo())

	profile, err := svc.GetProfile(context.Background(), &security.Principal{
		UserID:  7,
		Email:   "ghost@smartsolutions.fr",
		Name:    "Ghost",
		Role:    "director",
		SiteIDs: []uint{3},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), profile.ID)
	assert.Equal(t, DefaultLanguage, profile.PreferredLanguage)
	assert.True(t, profile.NotificationEnabled)
	assert.Equal(t, []uint{3}, profile.SiteIDs)
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, PreferredLanguage: "fr", NotificationEnabled: true})
	svc := NewService(repo)

	off := false
	profile, err := svc.UpdatePreferences(context.Background(), 1, &UpdatePreferencesRequest{NotificationEnabled: &off})
	require.NoError(t, err)
	assert.Equal(t, "fr", profile.PreferredLanguage)
	assert.False(t, profile.NotificationEnabled)
	assert.Equal(t, 1, repo.saves)
}

func TestUpdatePreferences_UnknownUser(t *testing.T) {
	svc := NewService(newMemoryRepo())

	lang := "en"
	_, err := svc.UpdatePreferences(context.Background(), 9, &UpdatePreferencesRequest{PreferredLanguage: &lang})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestToResponse_NilSitesBecomeEmpty(t *testing.T) {
	resp := ToResponse(&User{ID: 1})
	assert.NotNil(t, resp.SiteIDs)
	assert.Empty(t, resp.SiteIDs)
}
