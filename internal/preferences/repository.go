package preferences

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type Repository interface {
	FindByUser(ctx context.Context, userID uint) (*UserPreferences, error)
	Save(ctx context.Context, prefs *UserPreferences) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) FindByUser(ctx context.Context, userID uint) (*UserPreferences, error) {
	var prefs UserPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *repository) Save(ctx context.Context, prefs *UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

func (r *repository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&UserPreferences{}).Error
}
