package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/domain"
)

func newMediaServiceForTest() (MediaService, *mockWellRepository) {
	wellRepo := new(mockWellRepository)
	cfg := &config.Config{
		MinIOPublicEndpoint: "media.example.com",
		MinIOBucket:         "hidrocascavel-media",
		MinIOPublicUseSSL:   true,
	}
	return NewMediaService(wellRepo, nil, nil, cfg), wellRepo
}

func TestMediaService_RemoveWellPhoto(t *testing.T) {
	ctx := context.Background()
	wellID := uuid.New()
	ownerID := uuid.New()

	t.Run("other owners are refused", func(t *testing.T) {
		svc, wellRepo := newMediaServiceForTest()

		photoPath := "wells/2026/03/" + wellID.String()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{
			ID:        wellID,
			OwnerID:   ownerID,
			PhotoPath: &photoPath,
		}, nil).Once()

		actor := &domain.User{ID: uuid.New(), Role: "owner"}
		err := svc.RemoveWellPhoto(ctx, actor, wellID)

		assert.ErrorIs(t, err, ErrNotWellOwner)
		wellRepo.AssertNotCalled(t, "ClearPhotoPath")
	})

	t.Run("well without a photo is a no-op", func(t *testing.T) {
		svc, wellRepo := newMediaServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{
			ID:      wellID,
			OwnerID: ownerID,
		}, nil).Once()

		actor := &domain.User{ID: ownerID, Role: "owner"}
		err := svc.RemoveWellPhoto(ctx, actor, wellID)

		require.NoError(t, err)
		wellRepo.AssertNotCalled(t, "ClearPhotoPath")
	})

	t.Run("unknown well", func(t *testing.T) {
		svc, wellRepo := newMediaServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(nil, nil).Once()

		actor := &domain.User{ID: ownerID, Role: "owner"}
		err := svc.RemoveWellPhoto(ctx, actor, wellID)

		assert.ErrorIs(t, err, ErrWellNotFound)
	})
}
