package dashboards

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("dashboard config not found")

type Repository interface {
	FindByUser(ctx context.Context, userID uint) (*Config, error)
	Save(ctx context.Context, cfg *Config) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) FindByUser(ctx context.Context, userID uint) (*Config, error) {
	var cfg Config
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) Save(ctx context.Context, cfg *Config) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
