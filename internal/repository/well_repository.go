package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hidrocascavel/internal/domain"
)

type WellRepository interface {
	Create(ctx context.Context, well *domain.Well) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Well, error)
	Update(ctx context.Context, well *domain.Well) error
	SetPhotoPath(ctx context.Context, id uuid.UUID, path string) error
	ClearPhotoPath(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Well, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Well, int64, error)
	Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Well, int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type wellRepository struct {
	db *sqlx.DB
}

func NewWellRepository(db *sqlx.DB) WellRepository {
	return &wellRepository{db: db}
}

func (r *wellRepository) Create(ctx context.Context, well *domain.Well) error {
	query := `
		INSERT INTO wells (well_id, owner_id, name, latitude, longitude, address, depth_meters, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		well.ID, well.OwnerID, well.Name, well.Latitude, well.Longitude,
		well.Address, well.DepthMeters, well.Status,
	).Scan(&well.CreatedAt, &well.UpdatedAt)
}

func (r *wellRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Well, error) {
	var well domain.Well
	query := `SELECT * FROM wells WHERE well_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &well, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &well, nil
}

func (r *wellRepository) Update(ctx context.Context, well *domain.Well) error {
	query := `
		UPDATE wells
		SET name = :name, latitude = :latitude, longitude = :longitude,
			address = :address, depth_meters = :depth_meters, status = :status,
			updated_at = NOW()
		WHERE well_id = :well_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, well)
	return err
}

func (r *wellRepository) SetPhotoPath(ctx context.Context, id uuid.UUID, path string) error {
	query := `UPDATE wells SET photo_path = $2, updated_at = NOW() WHERE well_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, path)
	return err
}

// ClearPhotoPath stores NULL, not an empty string, so readers see the well
// as having no photo at all.
func (r *wellRepository) ClearPhotoPath(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE wells SET photo_path = NULL, updated_at = NOW() WHERE well_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *wellRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE wells SET deleted_at = NOW() WHERE well_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *wellRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Well, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM wells WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var wells []domain.Well
	query := `
		SELECT * FROM wells
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &wells, query, params.PageSize, params.Offset())
	return wells, total, err
}

func (r *wellRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Well, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM wells WHERE owner_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, err
	}

	var wells []domain.Well
	query := `
		SELECT * FROM wells
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &wells, query, ownerID, params.PageSize, params.Offset())
	return wells, total, err
}

func (r *wellRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Well, int64, error) {
	params.Validate()
	pattern := "%" + term + "%"

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM wells
		WHERE deleted_at IS NULL AND (name ILIKE $1 OR address ILIKE $1)`
	if err := r.db.GetContext(ctx, &total, countQuery, pattern); err != nil {
		return nil, 0, err
	}

	var wells []domain.Well
	query := `
		SELECT * FROM wells
		WHERE deleted_at IS NULL AND (name ILIKE $1 OR address ILIKE $1)
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &wells, query, pattern, params.PageSize, params.Offset())
	return wells, total, err
}

func (r *wellRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM wells WHERE deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
