package tools

import (
	"context"
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]Tool, error)
	Create(ctx context.Context, userID uint, req *CreateToolRequest) (*Tool, error)
	Delete(ctx context.Context, userID, toolID uint) error
	Reorder(ctx context.Context, userID uint, toolIDs []uint) ([]Tool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint) ([]Tool, error) {
	list, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	if list == nil {
		list = []Tool{}
	}
	return list, nil
}

// Create appends the tool after the user's existing ones.
func (s *service) Create(ctx context.Context, userID uint, req *CreateToolRequest) (*Tool, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tools: %w", err)
	}

	tool := &Tool{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		URL:          req.URL,
		Icon:         req.Icon,
		DisplayOrder: int(count),
	}
	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}
	return tool, nil
}

func (s *service) Delete(ctx context.Context, userID, toolID uint) error {
	tool, err := s.repo.FindByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return apperrors.NotFound("tool not found")
		}
		return fmt.Errorf("load tool: %w", err)
	}
	if tool.UserID != userID {
		return apperrors.Forbidden("tool belongs to another user")
	}

	if err := s.repo.Delete(ctx, toolID); err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	return nil
}

// Reorder gives each listed tool its index as display order. Ids the user does
// not own are ignored; unlisted tools keep their position.
func (s *service) Reorder(ctx context.Context, userID uint, toolIDs []uint) ([]Tool, error) {
	current, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	owned := make(map[uint]bool, len(current))
	for _, t := range current {
		owned[t.ID] = true
	}

	orders := make(map[uint]int, len(toolIDs))
	for i, id := range toolIDs {
		if owned[id] {
			orders[id] = i
		}
	}

	if len(orders) > 0 {
		if err := s.repo.UpdateOrder(ctx, userID, orders); err != nil {
			return nil, fmt.Errorf("reorder tools: %w", err)
		}
	}
	return s.List(ctx, userID)
}
