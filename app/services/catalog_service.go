package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/pkg/cache"
	"github.com/shashiranjanraj/showroom/pkg/logger"
	"github.com/shashiranjanraj/showroom/pkg/metrics"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = 30 * time.Second
)

// CatalogPage is one page of listing results.
type CatalogPage struct {
	Items      []models.Vehicle    `json:"items"`
	Pagination paginate.Pagination `json:"pagination"`
}

// CatalogService answers listing queries and owns admin vehicle mutations.
// The cache store is optional; a nil store disables listing caching.
type CatalogService struct {
	vehicles *repositories.VehicleRepository
	store    *cache.Store
	pageSize int
}

func NewCatalogService(vehicles *repositories.VehicleRepository, store *cache.Store, pageSize int) *CatalogService {
	return &CatalogService{vehicles: vehicles, store: store, pageSize: pageSize}
}

// List returns the page of vehicles matching the filter. Results are cached
// briefly; admin mutations invalidate the whole catalog namespace.
func (s *CatalogService) List(ctx context.Context, f repositories.CatalogFilter) (CatalogPage, error) {
	if f.PerPage <= 0 {
		f.PerPage = s.pageSize
	}

	key := s.cacheKey(f)
	if s.store != nil {
		var page CatalogPage
		if err := s.store.Get(ctx, key, &page); err == nil {
			metrics.CacheHits.Inc()
			return page, nil
		}
		metrics.CacheMisses.Inc()
	}

	items, p, err := s.vehicles.List(ctx, f)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("list vehicles: %w", err)
	}
	if items == nil {
		items = []models.Vehicle{}
	}

	page := CatalogPage{Items: items, Pagination: p}
	if s.store != nil {
		if err := s.store.Set(ctx, key, page, catalogCacheTTL); err != nil {
			logger.Warn("catalog: cache set failed", "error", err)
		}
	}
	return page, nil
}

// GetVehicle returns a single vehicle and bumps its view counter. The
// counter update is deliberately outside any transaction; it only needs to
// increase monotonically.
func (s *CatalogService) GetVehicle(ctx context.Context, id uint) (models.Vehicle, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Vehicle{}, ErrNotFound
	}
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("find vehicle: %w", err)
	}

	if err := s.vehicles.IncrementViews(ctx, id); err != nil {
		logger.Warn("catalog: view counter update failed", "vehicle_id", id, "error", err)
	} else {
		v.ViewCount++
	}
	return v, nil
}

// CreateVehicle adds a listing. Admin only (enforced at the route).
func (s *CatalogService) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if err := s.vehicles.Create(ctx, v); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdateVehicle persists changes to a listing. Only the admin-editable
// columns are written; the review average and view counter carry over, and v
// is filled with their stored values so callers render the real state.
func (s *CatalogService) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	current, err := s.vehicles.FindByID(ctx, v.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("find vehicle: %w", err)
	}
	if err := s.vehicles.Update(ctx, v); err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	v.AvgRating = current.AvgRating
	v.ViewCount = current.ViewCount
	v.CreatedAt = current.CreatedAt
	s.invalidate(ctx)
	return nil
}

// DeleteVehicle removes a listing. Refused while any order line references
// the vehicle, since order items must keep resolving.
func (s *CatalogService) DeleteVehicle(ctx context.Context, id uint) error {
	if _, err := s.vehicles.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("find vehicle: %w", err)
	}

	inUse, err := s.vehicles.HasOrderItems(ctx, id)
	if err != nil {
		return fmt.Errorf("check order references: %w", err)
	}
	if inUse {
		return ErrVehicleInUse
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) cacheKey(f repositories.CatalogFilter) string {
	return fmt.Sprintf("%sbrand=%s|type=%s|min=%s|max=%s|year=%d|q=%s|sort=%s|page=%d|per=%d",
		catalogCachePrefix, f.Brand, f.BodyType, f.MinPrice, f.MaxPrice, f.Year, f.Search, f.Sort, f.Page, f.PerPage)
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.DelPattern(ctx, catalogCachePrefix+"*"); err != nil {
		logger.Warn("catalog: cache invalidation failed", "error", err)
	}
}
