package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hidrocascavel/internal/domain"
)

type AnalysisRequestRepository interface {
	Create(ctx context.Context, req *domain.AnalysisRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error)
	List(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error)
	ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error)
	CountPending(ctx context.Context) (int64, error)

	// Approve resolves a pending request and creates the canonical analysis
	// plus the analyst notification in a single transaction. The conditional
	// status update guarantees each request is resolved at most once, and the
	// unique index on (well, analyst, sampling day) guarantees at most one
	// analysis per triple. Returns ErrRequestNotPending or
	// ErrDuplicateAnalysis accordingly.
	Approve(ctx context.Context, requestID, reviewerID uuid.UUID, analysis *domain.Analysis, notif *domain.Notification) error

	// Reject resolves a pending request with a reason and creates the analyst
	// notification in the same transaction. No analysis row is ever written.
	Reject(ctx context.Context, requestID, reviewerID uuid.UUID, reason string, notif *domain.Notification) error
}

type analysisRequestRepository struct {
	db *sqlx.DB
}

func NewAnalysisRequestRepository(db *sqlx.DB) AnalysisRequestRepository {
	return &analysisRequestRepository{db: db}
}

func (r *analysisRequestRepository) Create(ctx context.Context, req *domain.AnalysisRequest) error {
	query := `
		INSERT INTO analysis_requests (
			request_id, analyst_id, well_id, sampled_at, outcome, status,
			air_temperature, sample_temperature, ph, alkalinity, acidity, color,
			turbidity, conductivity, tds, tss, total_chlorine, free_chlorine,
			total_coliforms, ecoli
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.AnalystID, req.WellID, req.SampledAt, req.Outcome, req.Status,
		req.AirTemperature, req.SampleTemperature, req.PH, req.Alkalinity, req.Acidity, req.Color,
		req.Turbidity, req.Conductivity, req.TotalDissolvedSolids, req.TotalSuspendedSolids,
		req.TotalChlorine, req.FreeChlorine, req.TotalColiforms, req.EColi,
	).Scan(&req.CreatedAt)
}

func (r *analysisRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	var req domain.AnalysisRequest
	query := `SELECT * FROM analysis_requests WHERE request_id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *analysisRequestRepository) List(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error) {
	params.Validate()

	var total int64
	var requests []domain.AnalysisRequest

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM analysis_requests WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM analysis_requests
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &requests, query, *status, params.PageSize, params.Offset())
		return requests, total, err
	}

	countQuery := `SELECT COUNT(*) FROM analysis_requests`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM analysis_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *analysisRequestRepository) ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM analysis_requests WHERE analyst_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, analystID); err != nil {
		return nil, 0, err
	}

	var requests []domain.AnalysisRequest
	query := `
		SELECT * FROM analysis_requests
		WHERE analyst_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &requests, query, analystID, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *analysisRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM analysis_requests WHERE status = 'PENDING'`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *analysisRequestRepository) Approve(ctx context.Context, requestID, reviewerID uuid.UUID, analysis *domain.Analysis, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE analysis_requests
		SET status = 'APPROVED', reviewed_by = $2, reviewed_at = NOW(), analysis_id = $3
		WHERE request_id = $1 AND status = 'PENDING'`

	res, err := tx.ExecContext(ctx, updateQuery, requestID, reviewerID, analysis.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRequestNotPending
	}

	insertAnalysis := `
		INSERT INTO analyses (
			analysis_id, well_id, analyst_id, approved_by, sampled_at, outcome, status,
			air_temperature, sample_temperature, ph, alkalinity, acidity, color,
			turbidity, conductivity, tds, tss, total_chlorine, free_chlorine,
			total_coliforms, ecoli
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = tx.ExecContext(ctx, insertAnalysis,
		analysis.ID, analysis.WellID, analysis.AnalystID, analysis.ApprovedBy,
		analysis.SampledAt, analysis.Outcome, analysis.Status,
		analysis.AirTemperature, analysis.SampleTemperature, analysis.PH,
		analysis.Alkalinity, analysis.Acidity, analysis.Color,
		analysis.Turbidity, analysis.Conductivity, analysis.TotalDissolvedSolids,
		analysis.TotalSuspendedSolids, analysis.TotalChlorine, analysis.FreeChlorine,
		analysis.TotalColiforms, analysis.EColi,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAnalysis
		}
		return err
	}

	insertNotif := `
		INSERT INTO notifications (notification_id, user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.ExecContext(ctx, insertNotif,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message, notif.Data,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *analysisRequestRepository) Reject(ctx context.Context, requestID, reviewerID uuid.UUID, reason string, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE analysis_requests
		SET status = 'REJECTED', reviewed_by = $2, reviewed_at = NOW(), rejection_reason = $3
		WHERE request_id = $1 AND status = 'PENDING'`

	res, err := tx.ExecContext(ctx, updateQuery, requestID, reviewerID, reason)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRequestNotPending
	}

	insertNotif := `
		INSERT INTO notifications (notification_id, user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.ExecContext(ctx, insertNotif,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message, notif.Data,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
