package sites

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrSiteNotFound = errors.New("site not found")

type Repository interface {
	FindAll(ctx context.Context) ([]Site, error)
	FindByStatus(ctx context.Context, status string) ([]Site, error)
	FindByID(ctx context.Context, id uint) (*Site, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Site, error)
	FindByLocation(ctx context.Context, location string) ([]Site, error)
	Create(ctx context.Context, site *Site) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Site, error) {
	var sites []Site
	err := r.db.WithContext(ctx).Order("id ASC").Find(&sites).Error
	return sites, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Site, error) {
	var sites []Site
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id ASC").Find(&sites).Error
	return sites, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Site, error) {
	var site Site
	if err := r.db.WithContext(ctx).First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uint) ([]Site, error) {
	var sites []Site
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&sites).Error
	return sites, err
}

func (r *repository) FindByLocation(ctx context.Context, location string) ([]Site, error) {
	var sites []Site
	err := r.db.WithContext(ctx).Where("location = ?", location).Order("id ASC").Find(&sites).Error
	return sites, err
}

func (r *repository) Create(ctx context.Context, site *Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}
