package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

func newAnalysisServiceForTest() (AnalysisService, *mockAnalysisRequestRepository, *mockAnalysisRepository, *mockWellRepository, *mockUserRepository, *mockAuditLogRepository, *mockEmailService) {
	requestRepo := new(mockAnalysisRequestRepository)
	analysisRepo := new(mockAnalysisRepository)
	wellRepo := new(mockWellRepository)
	userRepo := new(mockUserRepository)
	auditRepo := new(mockAuditLogRepository)
	emailSvc := new(mockEmailService)

	svc := NewAnalysisService(requestRepo, analysisRepo, wellRepo, userRepo, auditRepo, emailSvc)
	return svc, requestRepo, analysisRepo, wellRepo, userRepo, auditRepo, emailSvc
}

func TestAnalysisService_SubmitRequest(t *testing.T) {
	ctx := context.Background()
	analystID := uuid.New()
	wellID := uuid.New()
	sampledAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	validInput := domain.CreateAnalysisRequestInput{
		WellID:    wellID,
		SampledAt: sampledAt,
		Outcome:   domain.OutcomePassed,
		Parameters: domain.ParameterInput{
			PH:        "7.2",
			Turbidity: "0.8",
		},
	}

	t.Run("creates a pending request with parsed parameters", func(t *testing.T) {
		svc, requestRepo, _, wellRepo, _, _, _ := newAnalysisServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{ID: wellID, Name: "Poço Norte"}, nil).Once()
		requestRepo.On("Create", ctx, mock.MatchedBy(func(req *domain.AnalysisRequest) bool {
			return req.AnalystID == analystID &&
				req.WellID == wellID &&
				req.Status == domain.RequestPending &&
				req.Outcome == domain.OutcomePassed &&
				req.PH != nil && *req.PH == 7.2 &&
				req.Turbidity != nil && *req.Turbidity == 0.8 &&
				req.EColi == nil
		})).Return(nil).Once()

		req, err := svc.SubmitRequest(ctx, analystID, validInput)

		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, domain.RequestPending, req.Status)
		requestRepo.AssertExpectations(t)
		wellRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid outcome", func(t *testing.T) {
		svc, requestRepo, _, _, _, _, _ := newAnalysisServiceForTest()

		input := validInput
		input.Outcome = domain.SampleOutcome("UNKNOWN")

		req, err := svc.SubmitRequest(ctx, analystID, input)

		assert.ErrorIs(t, err, ErrInvalidOutcome)
		assert.Nil(t, req)
		requestRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects missing sampling timestamp", func(t *testing.T) {
		svc, _, _, _, _, _, _ := newAnalysisServiceForTest()

		input := validInput
		input.SampledAt = time.Time{}

		_, err := svc.SubmitRequest(ctx, analystID, input)

		assert.ErrorIs(t, err, ErrMissingSampledAt)
	})

	t.Run("rejects unparseable parameter values", func(t *testing.T) {
		svc, requestRepo, _, _, _, _, _ := newAnalysisServiceForTest()

		input := validInput
		input.Parameters.PH = "sete ponto dois"

		req, err := svc.SubmitRequest(ctx, analystID, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ph")
		assert.Nil(t, req)
		requestRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown well", func(t *testing.T) {
		svc, requestRepo, _, wellRepo, _, _, _ := newAnalysisServiceForTest()

		wellRepo.On("GetByID", ctx, wellID).Return(nil, nil).Once()

		_, err := svc.SubmitRequest(ctx, analystID, validInput)

		assert.ErrorIs(t, err, ErrWellNotFound)
		requestRepo.AssertNotCalled(t, "Create")
	})
}

func TestAnalysisService_Approve(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	reviewerID := uuid.New()
	analystID := uuid.New()
	wellID := uuid.New()
	sampledAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	ph := 7.2
	pendingRequest := func() *domain.AnalysisRequest {
		return &domain.AnalysisRequest{
			ID:         requestID,
			AnalystID:  analystID,
			WellID:     wellID,
			SampledAt:  sampledAt,
			Outcome:    domain.OutcomePassed,
			Parameters: domain.Parameters{PH: &ph},
			Status:     domain.RequestPending,
		}
	}

	t.Run("creates analysis and notification from the request", func(t *testing.T) {
		svc, requestRepo, analysisRepo, wellRepo, userRepo, auditRepo, emailSvc := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(pendingRequest(), nil).Once()
		analysisRepo.On("ExistsForWellAnalystDay", ctx, wellID, analystID, sampledAt).Return(false, nil).Once()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{ID: wellID, Name: "Poço Norte"}, nil).Once()

		requestRepo.On("Approve", ctx, requestID, reviewerID,
			mock.MatchedBy(func(a *domain.Analysis) bool {
				return a.WellID == wellID &&
					a.AnalystID == analystID &&
					a.ApprovedBy == reviewerID &&
					a.SampledAt.Equal(sampledAt) &&
					a.Outcome == domain.OutcomePassed &&
					a.Status == domain.AnalysisActive &&
					a.PH != nil && *a.PH == 7.2
			}),
			mock.MatchedBy(func(n *domain.Notification) bool {
				if n.UserID != analystID || n.Type != domain.NotifAnalysisApproved {
					return false
				}
				var data map[string]string
				if err := json.Unmarshal(n.Data, &data); err != nil {
					return false
				}
				return data["request_id"] == requestID.String() &&
					data["well_name"] == "Poço Norte" &&
					data["analysis_id"] != ""
			}),
		).Return(nil).Once()

		auditRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
			return e.UserID == reviewerID && e.Action == "APPROVE_ANALYSIS_REQUEST" && e.EntityID == requestID
		})).Return(nil).Once()
		userRepo.On("GetByID", ctx, analystID).Return(&domain.User{ID: analystID, Email: "ana@example.com", FullName: "Ana"}, nil).Once()
		emailSvc.On("SendAnalysisApprovedEmail", mock.Anything, "ana@example.com", "Ana", "Poço Norte").Return(nil).Maybe()

		analysis, err := svc.Approve(ctx, requestID, reviewerID, nil)

		require.NoError(t, err)
		require.NotNil(t, analysis)
		assert.Equal(t, reviewerID, analysis.ApprovedBy)
		requestRepo.AssertExpectations(t)
		analysisRepo.AssertExpectations(t)
		auditRepo.AssertExpectations(t)
	})

	t.Run("already processed requests are not approved twice", func(t *testing.T) {
		svc, requestRepo, _, _, _, _, _ := newAnalysisServiceForTest()

		processed := pendingRequest()
		processed.Status = domain.RequestApproved
		requestRepo.On("GetByID", ctx, requestID).Return(processed, nil).Once()

		analysis, err := svc.Approve(ctx, requestID, reviewerID, nil)

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		assert.Nil(t, analysis)
		requestRepo.AssertNotCalled(t, "Approve")
	})

	t.Run("duplicate well analyst day is refused", func(t *testing.T) {
		svc, requestRepo, analysisRepo, _, _, _, _ := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(pendingRequest(), nil).Once()
		analysisRepo.On("ExistsForWellAnalystDay", ctx, wellID, analystID, sampledAt).Return(true, nil).Once()

		analysis, err := svc.Approve(ctx, requestID, reviewerID, nil)

		assert.ErrorIs(t, err, ErrDuplicateAnalysis)
		assert.Nil(t, analysis)
		requestRepo.AssertNotCalled(t, "Approve")
	})

	t.Run("concurrent resolution surfaces the repository conflict", func(t *testing.T) {
		svc, requestRepo, analysisRepo, wellRepo, _, _, _ := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(pendingRequest(), nil).Once()
		analysisRepo.On("ExistsForWellAnalystDay", ctx, wellID, analystID, sampledAt).Return(false, nil).Once()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{ID: wellID, Name: "Poço Norte"}, nil).Once()
		requestRepo.On("Approve", ctx, requestID, reviewerID, mock.Anything, mock.Anything).
			Return(repository.ErrRequestNotPending).Once()

		analysis, err := svc.Approve(ctx, requestID, reviewerID, nil)

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		assert.Nil(t, analysis)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, requestRepo, _, _, _, _, _ := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(nil, nil).Once()

		analysis, err := svc.Approve(ctx, requestID, reviewerID, nil)

		assert.ErrorIs(t, err, ErrRequestNotFound)
		assert.Nil(t, analysis)
	})
}

func TestAnalysisService_Reject(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	reviewerID := uuid.New()
	analystID := uuid.New()
	wellID := uuid.New()

	pendingRequest := func() *domain.AnalysisRequest {
		return &domain.AnalysisRequest{
			ID:        requestID,
			AnalystID: analystID,
			WellID:    wellID,
			SampledAt: time.Now(),
			Outcome:   domain.OutcomeFailed,
			Status:    domain.RequestPending,
		}
	}

	t.Run("rejects with the given reason", func(t *testing.T) {
		svc, requestRepo, _, wellRepo, userRepo, auditRepo, emailSvc := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(pendingRequest(), nil).Once()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{ID: wellID, Name: "Poço Sul"}, nil).Once()
		requestRepo.On("Reject", ctx, requestID, reviewerID, "Amostra contaminada",
			mock.MatchedBy(func(n *domain.Notification) bool {
				return n.UserID == analystID && n.Type == domain.NotifAnalysisRejected
			}),
		).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("GetByID", ctx, analystID).Return(nil, nil).Once()
		emailSvc.On("SendAnalysisRejectedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		reason := "Amostra contaminada"
		err := svc.Reject(ctx, requestID, reviewerID, &reason, nil)

		require.NoError(t, err)
		requestRepo.AssertExpectations(t)
	})

	t.Run("falls back to the default reason", func(t *testing.T) {
		svc, requestRepo, _, wellRepo, userRepo, auditRepo, _ := newAnalysisServiceForTest()

		requestRepo.On("GetByID", ctx, requestID).Return(pendingRequest(), nil).Once()
		wellRepo.On("GetByID", ctx, wellID).Return(&domain.Well{ID: wellID, Name: "Poço Sul"}, nil).Once()
		requestRepo.On("Reject", ctx, requestID, reviewerID, "Solicitação rejeitada pelo administrador", mock.Anything).Return(nil).Once()
		userRepo.On("GetByID", ctx, analystID).Return(nil, nil).Once()

		// An audit failure never undoes a committed review.
		auditRepo.On("Create", ctx, mock.Anything).Return(errors.New("audit db down")).Once()

		err := svc.Reject(ctx, requestID, reviewerID, nil, nil)

		require.NoError(t, err)
		requestRepo.AssertExpectations(t)
	})

	t.Run("already processed requests are not rejected twice", func(t *testing.T) {
		svc, requestRepo, _, _, _, _, _ := newAnalysisServiceForTest()

		processed := pendingRequest()
		processed.Status = domain.RequestRejected
		requestRepo.On("GetByID", ctx, requestID).Return(processed, nil).Once()

		err := svc.Reject(ctx, requestID, reviewerID, nil, nil)

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		requestRepo.AssertNotCalled(t, "Reject")
	})
}

func TestAnalysisService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	svc, _, analysisRepo, _, _, _, _ := newAnalysisServiceForTest()

	ph := 7.0
	analyses := []domain.Analysis{
		{
			ID:         uuid.New(),
			WellID:     uuid.New(),
			AnalystID:  uuid.New(),
			SampledAt:  time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
			Outcome:    domain.OutcomePassed,
			Parameters: domain.Parameters{PH: &ph},
		},
	}
	analysisRepo.On("ListAll", ctx, domain.AnalysisFilter{}).Return(analyses, nil).Once()

	data, err := svc.ExportCSV(ctx, domain.AnalysisFilter{})

	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "analysis_id,well_id,analyst_id,sampled_at,outcome")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, ",7,")
}
