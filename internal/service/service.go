package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Well         WellService
	Analysis     AnalysisService
	Notification NotificationService
	Visit        VisitService
	Media        MediaService
	Dashboard    DashboardService
	Audit        AuditService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	userService := NewUserService(repos.User, repos.AuditLog)
	wellService := NewWellService(repos.Well, redis, cfg)
	analysisService := NewAnalysisService(repos.AnalysisRequest, repos.Analysis, repos.Well, repos.User, repos.AuditLog, emailService)
	notificationService := NewNotificationService(repos.Notification)
	visitService := NewVisitService(repos.Visit, repos.Well, repos.Notification)
	mediaService := NewMediaService(repos.Well, minioClient, redis, cfg)
	dashboardService := NewDashboardService(repos.Well, repos.Analysis, repos.AnalysisRequest, repos.User, redis)
	auditService := NewAuditService(repos.AuditLog)

	return &Services{
		Auth:         authService,
		User:         userService,
		Well:         wellService,
		Analysis:     analysisService,
		Notification: notificationService,
		Visit:        visitService,
		Media:        mediaService,
		Dashboard:    dashboardService,
		Audit:        auditService,
		Email:        emailService,
	}
}
