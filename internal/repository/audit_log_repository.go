package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hidrocascavel/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_id, user_id, action, entity_type, entity_id, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID,
		entry.OldValue, entry.NewValue, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.CreatedAt)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var entries []domain.AuditLog
	query := `
		SELECT a.*, u.full_name AS user_name
		FROM audit_logs a
		LEFT JOIN users u ON u.user_id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}
