package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hidrocascavel/internal/domain"
)

type AnalysisRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, filter domain.AnalysisFilter, params domain.PaginationParams) ([]domain.Analysis, int64, error)
	ListAll(ctx context.Context, filter domain.AnalysisFilter) ([]domain.Analysis, error)
	ExistsForWellAnalystDay(ctx context.Context, wellID, analystID uuid.UUID, day time.Time) (bool, error)
	Archive(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
	CountByOutcome(ctx context.Context, outcome domain.SampleOutcome) (int64, error)
}

type analysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var analysis domain.Analysis
	query := `SELECT * FROM analyses WHERE analysis_id = $1`

	err := r.db.GetContext(ctx, &analysis, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func buildAnalysisFilter(filter domain.AnalysisFilter) (string, []interface{}) {
	conditions := []string{"status = 'ACTIVE'"}
	args := []interface{}{}

	if filter.WellID != nil {
		args = append(args, *filter.WellID)
		conditions = append(conditions, fmt.Sprintf("well_id = $%d", len(args)))
	}
	if filter.AnalystID != nil {
		args = append(args, *filter.AnalystID)
		conditions = append(conditions, fmt.Sprintf("analyst_id = $%d", len(args)))
	}
	if filter.Outcome != nil {
		args = append(args, *filter.Outcome)
		conditions = append(conditions, fmt.Sprintf("outcome = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("sampled_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("sampled_at <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *analysisRepository) List(ctx context.Context, filter domain.AnalysisFilter, params domain.PaginationParams) ([]domain.Analysis, int64, error) {
	params.Validate()

	where, args := buildAnalysisFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM analyses WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM analyses
		WHERE %s
		ORDER BY sampled_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var analyses []domain.Analysis
	err := r.db.SelectContext(ctx, &analyses, query, args...)
	return analyses, total, err
}

func (r *analysisRepository) ListAll(ctx context.Context, filter domain.AnalysisFilter) ([]domain.Analysis, error) {
	where, args := buildAnalysisFilter(filter)

	query := `SELECT * FROM analyses WHERE ` + where + ` ORDER BY sampled_at DESC`

	var analyses []domain.Analysis
	err := r.db.SelectContext(ctx, &analyses, query, args...)
	return analyses, err
}

// ExistsForWellAnalystDay checks the UTC day window around the sampling date,
// the same day the unique index on (well_id, analyst_id, UTC date of
// sampled_at) keys on. The index remains the authoritative constraint; this is
// the pre-flight check that turns a constraint violation into a friendly error
// before the transaction starts.
func (r *analysisRepository) ExistsForWellAnalystDay(ctx context.Context, wellID, analystID uuid.UUID, day time.Time) (bool, error) {
	d := day.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM analyses
			WHERE well_id = $1 AND analyst_id = $2
			  AND sampled_at >= $3 AND sampled_at < $4
		)`
	err := r.db.GetContext(ctx, &exists, query, wellID, analystID, start, end)
	return exists, err
}

func (r *analysisRepository) Archive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE analyses SET status = 'ARCHIVED' WHERE analysis_id = $1 AND status = 'ACTIVE'`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *analysisRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM analyses WHERE status = 'ACTIVE'`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *analysisRepository) CountByOutcome(ctx context.Context, outcome domain.SampleOutcome) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM analyses WHERE status = 'ACTIVE' AND outcome = $1`
	err := r.db.GetContext(ctx, &count, query, outcome)
	return count, err
}
