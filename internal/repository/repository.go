package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrRequestNotPending is returned when a resolution is attempted on a
	// request that has already been approved or rejected.
	ErrRequestNotPending = errors.New("analysis request is not pending")

	// ErrDuplicateAnalysis is returned when an analysis already exists for the
	// same well, analyst and sampling day.
	ErrDuplicateAnalysis = errors.New("an analysis already exists for this well on this date")
)

type Repositories struct {
	User            UserRepository
	Session         SessionRepository
	Well            WellRepository
	AnalysisRequest AnalysisRequestRepository
	Analysis        AnalysisRepository
	Notification    NotificationRepository
	Visit           VisitRepository
	AuditLog        AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		Session:         NewSessionRepository(db),
		Well:            NewWellRepository(db),
		AnalysisRequest: NewAnalysisRequestRepository(db),
		Analysis:        NewAnalysisRepository(db),
		Notification:    NewNotificationRepository(db),
		Visit:           NewVisitRepository(db),
		AuditLog:        NewAuditLogRepository(db),
	}
}
