package service

import (
	"context"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

type AuditService interface {
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.auditRepo.ListRecent(ctx, limit)
}
