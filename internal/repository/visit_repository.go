package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hidrocascavel/internal/domain"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error)
	Update(ctx context.Context, visit *domain.Visit) error
	ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error)
	ListByWell(ctx context.Context, wellID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error)
}

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	query := `
		INSERT INTO visits (visit_id, well_id, analyst_id, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		visit.ID, visit.WellID, visit.AnalystID, visit.ScheduledAt, visit.Status, visit.Notes,
	).Scan(&visit.CreatedAt, &visit.UpdatedAt)
}

func (r *visitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	var visit domain.Visit
	query := `SELECT * FROM visits WHERE visit_id = $1`

	err := r.db.GetContext(ctx, &visit, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) Update(ctx context.Context, visit *domain.Visit) error {
	query := `
		UPDATE visits
		SET scheduled_at = :scheduled_at, status = :status, notes = :notes, updated_at = NOW()
		WHERE visit_id = :visit_id`

	_, err := r.db.NamedExecContext(ctx, query, visit)
	return err
}

func (r *visitRepository) ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM visits WHERE analyst_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, analystID); err != nil {
		return nil, 0, err
	}

	var visits []domain.Visit
	query := `
		SELECT * FROM visits
		WHERE analyst_id = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &visits, query, analystID, params.PageSize, params.Offset())
	return visits, total, err
}

func (r *visitRepository) ListByWell(ctx context.Context, wellID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM visits WHERE well_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, wellID); err != nil {
		return nil, 0, err
	}

	var visits []domain.Visit
	query := `
		SELECT * FROM visits
		WHERE well_id = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &visits, query, wellID, params.PageSize, params.Offset())
	return visits, total, err
}
