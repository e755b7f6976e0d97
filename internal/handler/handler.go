package handler

import "hidrocascavel/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Well         *WellHandler
	Analysis     *AnalysisHandler
	Notification *NotificationHandler
	Visit        *VisitHandler
	Media        *MediaHandler
	Dashboard    *DashboardHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Well:         NewWellHandler(services.Well),
		Analysis:     NewAnalysisHandler(services.Analysis),
		Notification: NewNotificationHandler(services.Notification),
		Visit:        NewVisitHandler(services.Visit),
		Media:        NewMediaHandler(services.Media),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Audit:        NewAuditHandler(services.Audit),
	}
}
