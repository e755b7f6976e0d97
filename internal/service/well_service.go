package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

var ErrNotWellOwner = errors.New("well does not belong to this user")

const wellCacheTTL = 5 * time.Minute

type WellService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateWellInput) (*domain.Well, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Well, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateWellInput) (*domain.Well, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error)
	Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error)
}

type wellService struct {
	wellRepo repository.WellRepository
	redis    *redis.Client
	cfg      *config.Config
}

func NewWellService(wellRepo repository.WellRepository, redis *redis.Client, cfg *config.Config) WellService {
	return &wellService{
		wellRepo: wellRepo,
		redis:    redis,
		cfg:      cfg,
	}
}

func (s *wellService) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateWellInput) (*domain.Well, error) {
	well := &domain.Well{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     input.Address,
		DepthMeters: input.DepthMeters,
		Status:      domain.WellActive,
	}

	if err := s.wellRepo.Create(ctx, well); err != nil {
		return nil, err
	}

	return well, nil
}

func (s *wellService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Well, error) {
	cacheKey := "well:" + id.String()

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var well domain.Well
			if json.Unmarshal([]byte(cached), &well) == nil {
				s.resolvePhotoURL(&well)
				return &well, nil
			}
		}
	}

	well, err := s.wellRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if well == nil {
		return nil, ErrWellNotFound
	}

	if s.redis != nil {
		if data, err := json.Marshal(well); err == nil {
			s.redis.Set(ctx, cacheKey, data, wellCacheTTL)
		}
	}

	s.resolvePhotoURL(well)
	return well, nil
}

func (s *wellService) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateWellInput) (*domain.Well, error) {
	well, err := s.wellRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if well == nil {
		return nil, ErrWellNotFound
	}

	if well.OwnerID != actor.ID && !actor.HasRole("admin") {
		return nil, ErrNotWellOwner
	}

	if input.Name != nil {
		well.Name = *input.Name
	}
	if input.Latitude != nil {
		well.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		well.Longitude = *input.Longitude
	}
	if input.Address != nil {
		well.Address = *input.Address
	}
	if input.DepthMeters != nil {
		well.DepthMeters = *input.DepthMeters
	}
	if input.Status != nil {
		well.Status = *input.Status
	}

	if err := s.wellRepo.Update(ctx, well); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)
	s.resolvePhotoURL(well)
	return well, nil
}

func (s *wellService) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	well, err := s.wellRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if well == nil {
		return ErrWellNotFound
	}

	if well.OwnerID != actor.ID && !actor.HasRole("admin") {
		return ErrNotWellOwner
	}

	if err := s.wellRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *wellService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error) {
	wells, total, err := s.wellRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Well]{}, err
	}

	for i := range wells {
		s.resolvePhotoURL(&wells[i])
	}

	return domain.NewPaginatedResponse(wells, params.Page, params.PageSize, total), nil
}

func (s *wellService) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error) {
	wells, total, err := s.wellRepo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Well]{}, err
	}

	for i := range wells {
		s.resolvePhotoURL(&wells[i])
	}

	return domain.NewPaginatedResponse(wells, params.Page, params.PageSize, total), nil
}

func (s *wellService) Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Well], error) {
	wells, total, err := s.wellRepo.Search(ctx, term, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Well]{}, err
	}

	for i := range wells {
		s.resolvePhotoURL(&wells[i])
	}

	return domain.NewPaginatedResponse(wells, params.Page, params.PageSize, total), nil
}

func (s *wellService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.redis != nil {
		s.redis.Del(ctx, "well:"+id.String())
	}
}

func (s *wellService) resolvePhotoURL(well *domain.Well) {
	// An empty path means no photo; old rows may still hold "" instead of NULL.
	if well.PhotoPath == nil || *well.PhotoPath == "" {
		return
	}

	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, *well.PhotoPath)
	well.PhotoURL = &url
}
