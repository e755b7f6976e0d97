package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hidrocascavel/internal/domain"
)

type mockAnalysisRequestRepository struct {
	mock.Mock
}

func (m *mockAnalysisRequestRepository) Create(ctx context.Context, req *domain.AnalysisRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockAnalysisRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRequest), args.Error(1)
}

func (m *mockAnalysisRequestRepository) List(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.AnalysisRequest), args.Get(1).(int64), args.Error(2)
}

func (m *mockAnalysisRequestRepository) ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.AnalysisRequest, int64, error) {
	args := m.Called(ctx, analystID, params)
	return args.Get(0).([]domain.AnalysisRequest), args.Get(1).(int64), args.Error(2)
}

func (m *mockAnalysisRequestRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalysisRequestRepository) Approve(ctx context.Context, requestID, reviewerID uuid.UUID, analysis *domain.Analysis, notif *domain.Notification) error {
	args := m.Called(ctx, requestID, reviewerID, analysis, notif)
	return args.Error(0)
}

func (m *mockAnalysisRequestRepository) Reject(ctx context.Context, requestID, reviewerID uuid.UUID, reason string, notif *domain.Notification) error {
	args := m.Called(ctx, requestID, reviewerID, reason, notif)
	return args.Error(0)
}

type mockAnalysisRepository struct {
	mock.Mock
}

func (m *mockAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *mockAnalysisRepository) List(ctx context.Context, filter domain.AnalysisFilter, params domain.PaginationParams) ([]domain.Analysis, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Analysis), args.Get(1).(int64), args.Error(2)
}

func (m *mockAnalysisRepository) ListAll(ctx context.Context, filter domain.AnalysisFilter) ([]domain.Analysis, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Analysis), args.Error(1)
}

func (m *mockAnalysisRepository) ExistsForWellAnalystDay(ctx context.Context, wellID, analystID uuid.UUID, day time.Time) (bool, error) {
	args := m.Called(ctx, wellID, analystID, day)
	return args.Bool(0), args.Error(1)
}

func (m *mockAnalysisRepository) Archive(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAnalysisRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalysisRepository) CountByOutcome(ctx context.Context, outcome domain.SampleOutcome) (int64, error) {
	args := m.Called(ctx, outcome)
	return args.Get(0).(int64), args.Error(1)
}

type mockWellRepository struct {
	mock.Mock
}

func (m *mockWellRepository) Create(ctx context.Context, well *domain.Well) error {
	args := m.Called(ctx, well)
	return args.Error(0)
}

func (m *mockWellRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Well, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Well), args.Error(1)
}

func (m *mockWellRepository) Update(ctx context.Context, well *domain.Well) error {
	args := m.Called(ctx, well)
	return args.Error(0)
}

func (m *mockWellRepository) SetPhotoPath(ctx context.Context, id uuid.UUID, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *mockWellRepository) ClearPhotoPath(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockWellRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockWellRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Well, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Well), args.Get(1).(int64), args.Error(2)
}

func (m *mockWellRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Well, int64, error) {
	args := m.Called(ctx, ownerID, params)
	return args.Get(0).([]domain.Well), args.Get(1).(int64), args.Error(2)
}

func (m *mockWellRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Well, int64, error) {
	args := m.Called(ctx, term, params)
	return args.Get(0).([]domain.Well), args.Get(1).(int64), args.Error(2)
}

func (m *mockWellRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) SetEmailVerificationToken(ctx context.Context, userID uuid.UUID, token string, sentAt time.Time) error {
	args := m.Called(ctx, userID, token, sentAt)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByEmailVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockVisitRepository struct {
	mock.Mock
}

func (m *mockVisitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *mockVisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *mockVisitRepository) Update(ctx context.Context, visit *domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *mockVisitRepository) ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error) {
	args := m.Called(ctx, analystID, params)
	return args.Get(0).([]domain.Visit), args.Get(1).(int64), args.Error(2)
}

func (m *mockVisitRepository) ListByWell(ctx context.Context, wellID uuid.UUID, params domain.PaginationParams) ([]domain.Visit, int64, error) {
	args := m.Called(ctx, wellID, params)
	return args.Get(0).([]domain.Visit), args.Get(1).(int64), args.Error(2)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	args := m.Called(ctx, toEmail, fullName, verificationToken)
	return args.Error(0)
}

func (m *mockEmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *mockEmailService) SendAnalysisApprovedEmail(ctx context.Context, toEmail, fullName, wellName string) error {
	args := m.Called(ctx, toEmail, fullName, wellName)
	return args.Error(0)
}

func (m *mockEmailService) SendAnalysisRejectedEmail(ctx context.Context, toEmail, fullName, wellName, reason string) error {
	args := m.Called(ctx, toEmail, fullName, wellName, reason)
	return args.Error(0)
}
