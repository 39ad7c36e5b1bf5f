package notifications

import (
	"context"
	"sort"
	"testing"
	"time"

	"opshub/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items  []Notification
	nextID uint
}

func (m *memoryRepo) Create(ctx context.Context, n *Notification) error {
	m.nextID++
	n.ID = m.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.items = append(m.items, *n)
	return nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id uint) (*Notification, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			n := m.items[i]
			return &n, nil
		}
	}
	return nil, ErrNotificationNotFound
}

func (m *memoryRepo) FindByUser(ctx context.Context, userID uint, offset, limit int) ([]Notification, int64, error) {
	var mine []Notification
	for _, n := range m.items {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (m *memoryRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) MarkRead(ctx context.Context, id uint) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func seed(t *testing.T, svc Service, userID uint, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, svc.Notify(context.Background(), &Notification{
			UserID:    userID,
			Title:     "n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestList_NewestFirstWithPaging(t *testing.T) {
	svc := NewService(&memoryRepo{})
	seed(t, svc, 1, 25)
	seed(t, svc, 2, 3)

	page, err := svc.List(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Len(t, page.Content, 20)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.Content[0].CreatedAt.After(page.Content[1].CreatedAt))

	second, err := svc.List(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Len(t, second.Content, 5)

	empty, err := svc.List(context.Background(), 1, 9, 20)
	require.NoError(t, err)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
}

func TestNotify_Defaults(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.Notify(context.Background(), &Notification{UserID: 1, Title: "x"}))
	assert.Equal(t, TypeInfo, repo.items[0].Type)
	assert.Equal(t, PriorityMedium, repo.items[0].Priority)
}

func TestMarkAsRead(t *testing.T) {
	svc := NewService(&memoryRepo{})
	seed(t, svc, 1, 2)

	count, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	n, err := svc.MarkAsRead(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	count, err = svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.MarkAsRead(context.Background(), 2, 2)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	_, err = svc.MarkAsRead(context.Background(), 1, 99)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
