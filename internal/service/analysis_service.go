package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

var (
	ErrWellNotFound     = errors.New("well not found")
	ErrRequestNotFound  = errors.New("analysis request not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidOutcome   = errors.New("outcome must be PASSED or FAILED")
	ErrMissingSampledAt = errors.New("sampled_at is required")

	// Re-exported so callers only depend on the service package.
	ErrAlreadyProcessed  = repository.ErrRequestNotPending
	ErrDuplicateAnalysis = repository.ErrDuplicateAnalysis
)

type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

type AnalysisService interface {
	SubmitRequest(ctx context.Context, analystID uuid.UUID, input domain.CreateAnalysisRequestInput) (*domain.AnalysisRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error)
	ListRequests(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.AnalysisRequest], error)
	ListRequestsByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AnalysisRequest], error)
	Approve(ctx context.Context, requestID, reviewerID uuid.UUID, meta *RequestMeta) (*domain.Analysis, error)
	Reject(ctx context.Context, requestID, reviewerID uuid.UUID, reason *string, meta *RequestMeta) error

	GetAnalysis(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	ListAnalyses(ctx context.Context, filter domain.AnalysisFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Analysis], error)
	ExportCSV(ctx context.Context, filter domain.AnalysisFilter) ([]byte, error)
}

type analysisService struct {
	requestRepo  repository.AnalysisRequestRepository
	analysisRepo repository.AnalysisRepository
	wellRepo     repository.WellRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	emailService EmailService
}

func NewAnalysisService(
	requestRepo repository.AnalysisRequestRepository,
	analysisRepo repository.AnalysisRepository,
	wellRepo repository.WellRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	emailService EmailService,
) AnalysisService {
	return &analysisService{
		requestRepo:  requestRepo,
		analysisRepo: analysisRepo,
		wellRepo:     wellRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		emailService: emailService,
	}
}

func (s *analysisService) SubmitRequest(ctx context.Context, analystID uuid.UUID, input domain.CreateAnalysisRequestInput) (*domain.AnalysisRequest, error) {
	if !input.Outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}
	if input.SampledAt.IsZero() {
		return nil, ErrMissingSampledAt
	}

	params, err := input.Parameters.Parse()
	if err != nil {
		return nil, err
	}

	well, err := s.wellRepo.GetByID(ctx, input.WellID)
	if err != nil {
		return nil, err
	}
	if well == nil {
		return nil, ErrWellNotFound
	}

	req := &domain.AnalysisRequest{
		ID:         uuid.New(),
		AnalystID:  analystID,
		WellID:     input.WellID,
		SampledAt:  input.SampledAt,
		Outcome:    input.Outcome,
		Parameters: params,
		Status:     domain.RequestPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *analysisService) GetRequest(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	s.attachRequestRelations(ctx, req)
	return req, nil
}

func (s *analysisService) ListRequests(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.AnalysisRequest], error) {
	requests, total, err := s.requestRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AnalysisRequest]{}, err
	}

	for i := range requests {
		s.attachRequestRelations(ctx, &requests[i])
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *analysisService) ListRequestsByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AnalysisRequest], error) {
	requests, total, err := s.requestRepo.ListByAnalyst(ctx, analystID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AnalysisRequest]{}, err
	}

	for i := range requests {
		s.attachRequestRelations(ctx, &requests[i])
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *analysisService) attachRequestRelations(ctx context.Context, req *domain.AnalysisRequest) {
	if analyst, err := s.userRepo.GetByID(ctx, req.AnalystID); err == nil {
		req.Analyst = analyst
	}
	if well, err := s.wellRepo.GetByID(ctx, req.WellID); err == nil {
		req.Well = well
	}
}

func (s *analysisService) Approve(ctx context.Context, requestID, reviewerID uuid.UUID, meta *RequestMeta) (*domain.Analysis, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return nil, ErrAlreadyProcessed
	}

	exists, err := s.analysisRepo.ExistsForWellAnalystDay(ctx, req.WellID, req.AnalystID, req.SampledAt)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAnalysis
	}

	well, err := s.wellRepo.GetByID(ctx, req.WellID)
	if err != nil {
		return nil, err
	}
	wellName := req.WellID.String()
	if well != nil {
		wellName = well.Name
	}

	analysis := &domain.Analysis{
		ID:         uuid.New(),
		WellID:     req.WellID,
		AnalystID:  req.AnalystID,
		ApprovedBy: reviewerID,
		SampledAt:  req.SampledAt,
		Outcome:    req.Outcome,
		Parameters: req.Parameters,
		Status:     domain.AnalysisActive,
	}

	notif := buildResolutionNotification(req, analysis.ID, wellName, domain.NotifAnalysisApproved,
		"Análise Aprovada",
		fmt.Sprintf("Sua análise do poço %s foi aprovada", wellName))

	// The status transition, the canonical analysis and the analyst
	// notification commit together or not at all.
	if err := s.requestRepo.Approve(ctx, requestID, reviewerID, analysis, notif); err != nil {
		return nil, err
	}

	s.logReview(ctx, reviewerID, "APPROVE_ANALYSIS_REQUEST", req, domain.RequestApproved, meta)
	s.emailAnalyst(ctx, req.AnalystID, wellName, true, "")

	return analysis, nil
}

func (s *analysisService) Reject(ctx context.Context, requestID, reviewerID uuid.UUID, reason *string, meta *RequestMeta) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return ErrAlreadyProcessed
	}

	rejectionReason := "Solicitação rejeitada pelo administrador"
	if reason != nil && *reason != "" {
		rejectionReason = *reason
	}

	well, err := s.wellRepo.GetByID(ctx, req.WellID)
	if err != nil {
		return err
	}
	wellName := req.WellID.String()
	if well != nil {
		wellName = well.Name
	}

	notif := buildResolutionNotification(req, uuid.Nil, wellName, domain.NotifAnalysisRejected,
		"Análise Rejeitada",
		fmt.Sprintf("Sua análise do poço %s foi rejeitada: %s", wellName, rejectionReason))

	if err := s.requestRepo.Reject(ctx, requestID, reviewerID, rejectionReason, notif); err != nil {
		return err
	}

	s.logReview(ctx, reviewerID, "REJECT_ANALYSIS_REQUEST", req, domain.RequestRejected, meta)
	s.emailAnalyst(ctx, req.AnalystID, wellName, false, rejectionReason)

	return nil
}

func buildResolutionNotification(req *domain.AnalysisRequest, analysisID uuid.UUID, wellName string, notifType domain.NotificationType, title, message string) *domain.Notification {
	dataMap := map[string]string{
		"request_id": req.ID.String(),
		"well_name":  wellName,
		"sampled_at": req.SampledAt.Format(time.RFC3339),
		"outcome":    string(req.Outcome),
	}
	if analysisID != uuid.Nil {
		dataMap["analysis_id"] = analysisID.String()
	}
	data, _ := json.Marshal(dataMap)

	return &domain.Notification{
		ID:      uuid.New(),
		UserID:  req.AnalystID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
}

// logReview is best-effort: the review already committed, the audit trail must
// not undo it.
func (s *analysisService) logReview(ctx context.Context, reviewerID uuid.UUID, action string, req *domain.AnalysisRequest, newStatus domain.RequestStatus, meta *RequestMeta) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     reviewerID,
		Action:     action,
		EntityType: "ANALYSIS_REQUEST",
		EntityID:   req.ID,
		OldValue:   json.RawMessage(`{"status":"PENDING"}`),
		NewValue:   json.RawMessage(`{"status":"` + string(newStatus) + `"}`),
	}
	if meta != nil {
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for request %s: %v", req.ID, err)
	}
}

// emailAnalyst is best-effort as well; the in-app notification row is the
// durable record of the outcome.
func (s *analysisService) emailAnalyst(ctx context.Context, analystID uuid.UUID, wellName string, approved bool, reason string) {
	analyst, err := s.userRepo.GetByID(ctx, analystID)
	if err != nil || analyst == nil {
		return
	}

	go func() {
		var err error
		if approved {
			err = s.emailService.SendAnalysisApprovedEmail(context.Background(), analyst.Email, analyst.FullName, wellName)
		} else {
			err = s.emailService.SendAnalysisRejectedEmail(context.Background(), analyst.Email, analyst.FullName, wellName, reason)
		}
		if err != nil {
			log.Printf("Failed to send analysis result email to %s: %v", analyst.Email, err)
		}
	}()
}

func (s *analysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	if analyst, err := s.userRepo.GetByID(ctx, analysis.AnalystID); err == nil {
		analysis.Analyst = analyst
	}
	if well, err := s.wellRepo.GetByID(ctx, analysis.WellID); err == nil {
		analysis.Well = well
	}

	return analysis, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, filter domain.AnalysisFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Analysis], error) {
	analyses, total, err := s.analysisRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Analysis]{}, err
	}

	return domain.NewPaginatedResponse(analyses, params.Page, params.PageSize, total), nil
}

func (s *analysisService) ExportCSV(ctx context.Context, filter domain.AnalysisFilter) ([]byte, error) {
	analyses, err := s.analysisRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"analysis_id", "well_id", "analyst_id", "sampled_at", "outcome",
		"air_temperature", "sample_temperature", "ph", "alkalinity", "acidity",
		"color", "turbidity", "conductivity", "tds", "tss",
		"total_chlorine", "free_chlorine", "total_coliforms", "ecoli",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, a := range analyses {
		record := []string{
			a.ID.String(), a.WellID.String(), a.AnalystID.String(),
			a.SampledAt.Format(time.RFC3339), string(a.Outcome),
			formatMeasurement(a.AirTemperature), formatMeasurement(a.SampleTemperature),
			formatMeasurement(a.PH), formatMeasurement(a.Alkalinity),
			formatMeasurement(a.Acidity), formatMeasurement(a.Color),
			formatMeasurement(a.Turbidity), formatMeasurement(a.Conductivity),
			formatMeasurement(a.TotalDissolvedSolids), formatMeasurement(a.TotalSuspendedSolids),
			formatMeasurement(a.TotalChlorine), formatMeasurement(a.FreeChlorine),
			formatMeasurement(a.TotalColiforms), formatMeasurement(a.EColi),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatMeasurement(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
