package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

const statsCacheTTL = time.Minute

type DashboardStats struct {
	TotalWells      int64 `json:"total_wells"`
	TotalAnalyses   int64 `json:"total_analyses"`
	PassedAnalyses  int64 `json:"passed_analyses"`
	FailedAnalyses  int64 `json:"failed_analyses"`
	PendingRequests int64 `json:"pending_requests"`
	TotalOwners     int64 `json:"total_owners"`
	TotalAnalysts   int64 `json:"total_analysts"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	wellRepo     repository.WellRepository
	analysisRepo repository.AnalysisRepository
	requestRepo  repository.AnalysisRequestRepository
	userRepo     repository.UserRepository
	redis        *redis.Client
}

func NewDashboardService(
	wellRepo repository.WellRepository,
	analysisRepo repository.AnalysisRepository,
	requestRepo repository.AnalysisRequestRepository,
	userRepo repository.UserRepository,
	redis *redis.Client,
) DashboardService {
	return &dashboardService{
		wellRepo:     wellRepo,
		analysisRepo: analysisRepo,
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		redis:        redis,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	cacheKey := "dashboard:stats"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalWells, err := s.wellRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalAnalyses, err := s.analysisRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	passed, err := s.analysisRepo.CountByOutcome(ctx, domain.OutcomePassed)
	if err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := s.userRepo.CountByRole(ctx, string(domain.RoleOwner))
	if err != nil {
		return nil, err
	}

	analysts, err := s.userRepo.CountByRole(ctx, string(domain.RoleAnalyst))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalWells:      totalWells,
		TotalAnalyses:   totalAnalyses,
		PassedAnalyses:  passed,
		FailedAnalyses:  totalAnalyses - passed,
		PendingRequests: pending,
		TotalOwners:     owners,
		TotalAnalysts:   analysts,
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, cacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}
