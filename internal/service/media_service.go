package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

type MediaService interface {
	UploadWellPhoto(ctx context.Context, actor *domain.User, wellID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	RemoveWellPhoto(ctx context.Context, actor *domain.User, wellID uuid.UUID) error
}

type mediaService struct {
	wellRepo    repository.WellRepository
	minioClient *minio.Client
	redis       *redis.Client
	cfg         *config.Config
}

func NewMediaService(wellRepo repository.WellRepository, minioClient *minio.Client, redis *redis.Client, cfg *config.Config) MediaService {
	return &mediaService{
		wellRepo:    wellRepo,
		minioClient: minioClient,
		redis:       redis,
		cfg:         cfg,
	}
}

func (s *mediaService) UploadWellPhoto(ctx context.Context, actor *domain.User, wellID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	well, err := s.wellRepo.GetByID(ctx, wellID)
	if err != nil {
		return "", err
	}
	if well == nil {
		return "", ErrWellNotFound
	}

	if well.OwnerID != actor.ID && !actor.HasRole("admin") {
		return "", ErrNotWellOwner
	}

	storagePath := fmt.Sprintf("wells/%s/%s", time.Now().Format("2006/01"), wellID.String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	if err := s.wellRepo.SetPhotoPath(ctx, wellID, storagePath); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", err
	}

	s.invalidateWellCache(ctx, wellID)

	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath), nil
}

func (s *mediaService) RemoveWellPhoto(ctx context.Context, actor *domain.User, wellID uuid.UUID) error {
	well, err := s.wellRepo.GetByID(ctx, wellID)
	if err != nil {
		return err
	}
	if well == nil {
		return ErrWellNotFound
	}

	if well.OwnerID != actor.ID && !actor.HasRole("admin") {
		return ErrNotWellOwner
	}

	if well.PhotoPath == nil {
		return nil
	}

	if err := s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, *well.PhotoPath, minio.RemoveObjectOptions{}); err != nil {
		return err
	}

	if err := s.wellRepo.ClearPhotoPath(ctx, wellID); err != nil {
		return err
	}

	s.invalidateWellCache(ctx, wellID)
	return nil
}

func (s *mediaService) invalidateWellCache(ctx context.Context, id uuid.UUID) {
	if s.redis != nil {
		s.redis.Del(ctx, "well:"+id.String())
	}
}
