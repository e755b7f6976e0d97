package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/domain"
)

func newWellServiceForTest() (WellService, *mockWellRepository) {
	wellRepo := new(mockWellRepository)
	cfg := &config.Config{
		MinIOPublicEndpoint: "media.example.com",
		MinIOBucket:         "hidrocascavel-media",
		MinIOPublicUseSSL:   true,
	}
	return NewWellService(wellRepo, nil, cfg), wellRepo
}

func TestWellService_Create(t *testing.T) {
	svc, wellRepo := newWellServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	wellRepo.On("Create", ctx, mock.MatchedBy(func(w *domain.Well) bool {
		return w.OwnerID == ownerID && w.Name == "Poço da Chácara" && w.Status == domain.WellActive
	})).Return(nil).Once()

	well, err := svc.Create(ctx, ownerID, domain.CreateWellInput{
		Name:      "Poço da Chácara",
		Latitude:  -24.95,
		Longitude: -53.45,
		Address:   "Linha São Francisco, Cascavel PR",
	})

	require.NoError(t, err)
	assert.Equal(t, ownerID, well.OwnerID)
	wellRepo.AssertExpectations(t)
}

func TestWellService_GetByID(t *testing.T) {
	ctx := context.Background()
	wellID := uuid.New()

	t.Run("resolves the public photo URL", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		photoPath := "wells/2026/03/" + wellID.String()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{
			ID:        wellID,
			Name:      "Poço Norte",
			PhotoPath: &photoPath,
		}, nil).Once()

		well, err := svc.GetByID(ctx, wellID)

		require.NoError(t, err)
		require.NotNil(t, well.PhotoURL)
		assert.Equal(t, "https://media.example.com/hidrocascavel-media/"+photoPath, *well.PhotoURL)
	})

	t.Run("well without a photo has no photo URL", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{
			ID:   wellID,
			Name: "Poço Sul",
		}, nil).Once()

		well, err := svc.GetByID(ctx, wellID)

		require.NoError(t, err)
		assert.Nil(t, well.PhotoURL)
	})

	t.Run("removed photo never resolves to a bucket-root URL", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		emptyPath := ""
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{
			ID:        wellID,
			Name:      "Poço Sul",
			PhotoPath: &emptyPath,
		}, nil).Once()

		well, err := svc.GetByID(ctx, wellID)

		require.NoError(t, err)
		assert.Nil(t, well.PhotoURL)
	})

	t.Run("unknown well", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(nil, nil).Once()

		well, err := svc.GetByID(ctx, wellID)

		assert.ErrorIs(t, err, ErrWellNotFound)
		assert.Nil(t, well)
	})
}

func TestWellService_Update(t *testing.T) {
	ctx := context.Background()
	wellID := uuid.New()
	ownerID := uuid.New()

	existing := func() *domain.Well {
		return &domain.Well{ID: wellID, OwnerID: ownerID, Name: "Poço Velho", Status: domain.WellActive}
	}

	t.Run("owner can update", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(existing(), nil).Once()
		wellRepo.On("Update", ctx, mock.MatchedBy(func(w *domain.Well) bool {
			return w.Name == "Poço Novo"
		})).Return(nil).Once()

		name := "Poço Novo"
		actor := &domain.User{ID: ownerID, Role: "owner"}
		well, err := svc.Update(ctx, wellID, actor, domain.UpdateWellInput{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Poço Novo", well.Name)
		wellRepo.AssertExpectations(t)
	})

	t.Run("other owners are refused", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(existing(), nil).Once()

		name := "Poço Alheio"
		actor := &domain.User{ID: uuid.New(), Role: "owner"}
		well, err := svc.Update(ctx, wellID, actor, domain.UpdateWellInput{Name: &name})

		assert.ErrorIs(t, err, ErrNotWellOwner)
		assert.Nil(t, well)
		wellRepo.AssertNotCalled(t, "Update")
	})

	t.Run("admins can update any well", func(t *testing.T) {
		svc, wellRepo := newWellServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(existing(), nil).Once()
		wellRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		name := "Poço Corrigido"
		actor := &domain.User{ID: uuid.New(), Role: "admin"}
		_, err := svc.Update(ctx, wellID, actor, domain.UpdateWellInput{Name: &name})

		require.NoError(t, err)
		wellRepo.AssertExpectations(t)
	})
}
