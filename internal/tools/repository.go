package tools

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrToolNotFound = errors.New("tool not found")

type Repository interface {
	FindByUser(ctx context.Context, userID uint) ([]Tool, error)
	FindByID(ctx context.Context, id uint) (*Tool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, tool *Tool) error
	Delete(ctx context.Context, id uint) error
	// UpdateOrder writes every display order in one transaction.
	UpdateOrder(ctx context.Context, userID uint, orders map[uint]int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) FindByUser(ctx context.Context, userID uint) ([]Tool, error) {
	var list []Tool
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("display_order ASC").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Tool, error) {
	var tool Tool
	if err := r.db.WithContext(ctx).First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

func (r *repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Tool{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, tool *Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Tool{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}

func (r *repository) UpdateOrder(ctx context.Context, userID uint, orders map[uint]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			err := tx.Model(&Tool{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("display_order", order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
