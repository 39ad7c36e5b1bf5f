package sites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/constants"
	"opshub/pkg/cache"
)

type Service interface {
	GetAllSites(ctx context.Context) ([]SiteResponse, error)
	GetActiveSites(ctx context.Context) ([]SiteResponse, error)
	GetSiteByID(ctx context.Context, id uint) (*SiteResponse, error)
	GetSitesByIDs(ctx context.Context, ids []uint) ([]SiteResponse, error)
	GetSitesByLocation(ctx context.Context, location string) ([]SiteResponse, error)
	CreateSite(ctx context.Context, req *CreateSiteRequest) (*SiteResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService builds the site service. cacheService may be nil, in which case
// every call reads the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) GetAllSites(ctx context.Context) ([]SiteResponse, error) {
	var out []SiteResponse
	err := s.cached(ctx, constants.CACHE_KEY_SITES_ALL, constants.TTL_SITES_LIST, func() (interface{}, error) {
		sites, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list sites: %w", err)
		}
		return toResponses(sites), nil
	}, &out)
	return out, err
}

func (s *service) GetActiveSites(ctx context.Context) ([]SiteResponse, error) {
	var out []SiteResponse
	err := s.cached(ctx, constants.CACHE_KEY_SITES_ACTIVE, constants.TTL_SITES_LIST, func() (interface{}, error) {
		sites, err := s.repo.FindByStatus(ctx, StatusActive)
		if err != nil {
			return nil, fmt.Errorf("list active sites: %w", err)
		}
		return toResponses(sites), nil
	}, &out)
	return out, err
}

func (s *service) GetSiteByID(ctx context.Context, id uint) (*SiteResponse, error) {
	var out SiteResponse
	err := s.cached(ctx, constants.BuildSiteDetailKey(id), constants.TTL_SITE_DETAIL, func() (interface{}, error) {
		site, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrSiteNotFound) {
				return nil, apperrors.NotFound(fmt.Sprintf("site not found with id: %d", id))
			}
			return nil, fmt.Errorf("get site %d: %w", id, err)
		}
		return toResponse(*site), nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) GetSitesByIDs(ctx context.Context, ids []uint) ([]SiteResponse, error) {
	if len(ids) == 0 {
		return []SiteResponse{}, nil
	}
	sites, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list sites by ids: %w", err)
	}
	return toResponses(sites), nil
}

func (s *service) GetSitesByLocation(ctx context.Context, location string) ([]SiteResponse, error) {
	sites, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("list sites by location: %w", err)
	}
	return toResponses(sites), nil
}

// CreateSite stores a new site and drops every cached site list.
func (s *service) CreateSite(ctx context.Context, req *CreateSiteRequest) (*SiteResponse, error) {
	site := &Site{Name: req.Name, Location: req.Location, Status: req.Status}
	if site.Status == "" {
		site.Status = StatusActive
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SITES_ALL)
	}

	resp := toResponse(*site)
	return &resp, nil
}

func (s *service) cached(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error), dest interface{}) error {
	if s.cache != nil {
		return s.cache.GetOrSet(ctx, key, ttl, fetch, dest)
	}

	data, err := fetch()
	if err != nil {
		return err
	}
	return assign(data, dest)
}

func assign(data interface{}, dest interface{}) error {
	switch d := dest.(type) {
	case *[]SiteResponse:
		*d = data.([]SiteResponse)
	case *SiteResponse:
		*d = data.(SiteResponse)
	default:
		return fmt.Errorf("unsupported cache destination %T", dest)
	}
	return nil
}
