package dashboards

import (
	"context"
	"testing"

	"opshub/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	byUser map[uint]Config
	saves  int
}

func (m *memoryRepo) FindByUser(ctx context.Context, userID uint) (*Config, error) {
	if cfg, ok := m.byUser[userID]; ok {
		return &cfg, nil
	}
	return nil, ErrConfigNotFound
}

func (m *memoryRepo) Save(ctx context.Context, cfg *Config) error {
	if m.byUser == nil {
		m.byUser = map[uint]Config{}
	}
	if cfg.ID == 0 {
		cfg.ID = uint(len(m.byUser) + 1)
	}
	m.saves++
	m.byUser[cfg.UserID] = *cfg
	return nil
}

func TestGet_CreatesDefaultOnce(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)

	cfg, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"kpi-overview", "safety-metrics"}, cfg.DashboardIDs)

	_, err = svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
}

func TestSave_ReplacesSelection(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	_, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)

	cfg, err := svc.Save(context.Background(), 3, []string{"budget-tracking", "kpi-overview"})
	require.NoError(t, err)
	assert.Equal(t, []string{"budget-tracking", "kpi-overview"}, cfg.DashboardIDs)
	assert.Equal(t, uint(1), cfg.ID)

	cleared, err := svc.Save(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.NotNil(t, cleared.DashboardIDs)
	assert.Empty(t, cleared.DashboardIDs)
}

func TestSave_RejectsUnknownDashboard(t *testing.T) {
	svc := NewService(&memoryRepo{})

	_, err := svc.Save(context.Background(), 3, []string{"kpi-overview", "stock-ticker"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
}

func TestAvailable_ReturnsCopy(t *testing.T) {
	svc := NewService(&memoryRepo{})
	list := svc.Available()
	list[0] = "changed"
	assert.Equal(t, "kpi-overview", Catalogue[0])
	assert.Len(t, svc.Available(), 6)
}
