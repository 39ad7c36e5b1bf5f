package notifications

import (
	"context"
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service interface {
	List(ctx context.Context, userID uint, page, size int) (*Page, error)
	MarkAsRead(ctx context.Context, userID, id uint) (*Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	Notify(ctx context.Context, n *Notification) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint, page, size int) (*Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	list, total, err := s.repo.FindByUser(ctx, userID, page*size, size)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if list == nil {
		list = []Notification{}
	}

	return &Page{
		Content:       list,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// MarkAsRead flags a notification owned by userID as read.
func (s *service) MarkAsRead(ctx context.Context, userID, id uint) (*Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return nil, apperrors.NotFound("notification not found")
		}
		return nil, fmt.Errorf("load notification: %w", err)
	}
	if n.UserID != userID {
		return nil, apperrors.Forbidden("notification belongs to another user")
	}

	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, fmt.Errorf("mark notification read: %w", err)
		}
		n.IsRead = true
	}
	return n, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// Notify stores a new notification, filling in type and priority defaults.
func (s *service) Notify(ctx context.Context, n *Notification) error {
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
