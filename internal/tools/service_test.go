package tools

import (
	"context"
	"sort"
	"testing"

	"opshub/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	tools  map[uint]*Tool
	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{tools: map[uint]*Tool{}}
}

func (m *memoryRepo) FindByUser(ctx context.Context, userID uint) ([]Tool, error) {
	var out []Tool
	for _, t := range m.tools {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder == out[j].DisplayOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id uint) (*Tool, error) {
	if t, ok := m.tools[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrToolNotFound
}

func (m *memoryRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	list, _ := m.FindByUser(ctx, userID)
	return int64(len(list)), nil
}

func (m *memoryRepo) Create(ctx context.Context, tool *Tool) error {
	m.nextID++
	tool.ID = m.nextID
	cp := *tool
	m.tools[tool.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.tools[id]; !ok {
		return ErrToolNotFound
	}
	delete(m.tools, id)
	return nil
}

func (m *memoryRepo) UpdateOrder(ctx context.Context, userID uint, orders map[uint]int) error {
	for id, order := range orders {
		if t, ok := m.tools[id]; ok && t.UserID == userID {
			t.DisplayOrder = order
		}
	}
	return nil
}

func create(t *testing.T, svc Service, userID uint, name string) *Tool {
	t.Helper()
	tool, err := svc.Create(context.Background(), userID, &CreateToolRequest{
		Name: name, URL: "https://" + name + ".example.com", Icon: "link",
	})
	require.NoError(t, err)
	return tool
}

func names(list []Tool) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Name
	}
	return out
}

func TestCreate_AppendsAtEnd(t *testing.T) {
	svc := NewService(newMemoryRepo())

	first := create(t, svc, 1, "erp")
	second := create(t, svc, 1, "crm")
	other := create(t, svc, 2, "wiki")

	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)
	assert.Equal(t, 0, other.DisplayOrder)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"erp", "crm"}, names(list))
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewService(newMemoryRepo())
	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc := NewService(newMemoryRepo())
	tool := create(t, svc, 1, "erp")

	err := svc.Delete(context.Background(), 2, tool.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	require.NoError(t, svc.Delete(context.Background(), 1, tool.ID))

	err = svc.Delete(context.Background(), 1, tool.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestReorder(t *testing.T) {
	svc := NewService(newMemoryRepo())
	a := create(t, svc, 1, "a")
	b := create(t, svc, 1, "b")
	c := create(t, svc, 1, "c")
	foreign := create(t, svc, 2, "foreign")

	list, err := svc.Reorder(context.Background(), 1, []uint{c.ID, a.ID, b.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, names(list))

	theirs, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, theirs[0].DisplayOrder)
}
