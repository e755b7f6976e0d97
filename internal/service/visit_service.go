package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

var (
	ErrVisitNotFound   = errors.New("visit not found")
	ErrVisitNotOwned   = errors.New("visit does not belong to this analyst")
	ErrVisitNotPending = errors.New("visit is not scheduled")
)

type VisitService interface {
	Schedule(ctx context.Context, analystID uuid.UUID, input domain.ScheduleVisitInput) (*domain.Visit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateVisitInput) (*domain.Visit, error)
	Complete(ctx context.Context, id uuid.UUID, actor *domain.User, notes *string) (*domain.Visit, error)
	ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Visit], error)
	ListByWell(ctx context.Context, wellID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Visit], error)
}

type visitService struct {
	visitRepo repository.VisitRepository
	wellRepo  repository.WellRepository
	notifRepo repository.NotificationRepository
}

func NewVisitService(visitRepo repository.VisitRepository, wellRepo repository.WellRepository, notifRepo repository.NotificationRepository) VisitService {
	return &visitService{
		visitRepo: visitRepo,
		wellRepo:  wellRepo,
		notifRepo: notifRepo,
	}
}

func (s *visitService) Schedule(ctx context.Context, analystID uuid.UUID, input domain.ScheduleVisitInput) (*domain.Visit, error) {
	well, err := s.wellRepo.GetByID(ctx, input.WellID)
	if err != nil {
		return nil, err
	}
	if well == nil {
		return nil, ErrWellNotFound
	}

	visit := &domain.Visit{
		ID:          uuid.New(),
		WellID:      input.WellID,
		AnalystID:   analystID,
		ScheduledAt: input.ScheduledAt,
		Status:      domain.VisitScheduled,
		Notes:       input.Notes,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, well, visit, domain.NotifVisitScheduled,
		"Visita Agendada",
		fmt.Sprintf("Uma visita ao poço %s foi agendada para %s",
			well.Name, visit.ScheduledAt.Format("02/01/2006 15:04")))

	return visit, nil
}

func (s *visitService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	return visit, nil
}

func (s *visitService) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateVisitInput) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	if visit.AnalystID != actor.ID && !actor.HasRole("admin") {
		return nil, ErrVisitNotOwned
	}

	if input.ScheduledAt != nil {
		visit.ScheduledAt = *input.ScheduledAt
	}
	if input.Status != nil {
		visit.Status = *input.Status
	}
	if input.Notes != nil {
		visit.Notes = *input.Notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

func (s *visitService) Complete(ctx context.Context, id uuid.UUID, actor *domain.User, notes *string) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	if visit.AnalystID != actor.ID && !actor.HasRole("admin") {
		return nil, ErrVisitNotOwned
	}
	if visit.Status != domain.VisitScheduled {
		return nil, ErrVisitNotPending
	}

	visit.Status = domain.VisitCompleted
	if notes != nil {
		visit.Notes = notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	if well, err := s.wellRepo.GetByID(ctx, visit.WellID); err == nil && well != nil {
		s.notifyOwner(ctx, well, visit, domain.NotifVisitCompleted,
			"Visita Concluída",
			fmt.Sprintf("A visita ao poço %s foi concluída", well.Name))
	}

	return visit, nil
}

func (s *visitService) ListByAnalyst(ctx context.Context, analystID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Visit], error) {
	visits, total, err := s.visitRepo.ListByAnalyst(ctx, analystID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Visit]{}, err
	}
	return domain.NewPaginatedResponse(visits, params.Page, params.PageSize, total), nil
}

func (s *visitService) ListByWell(ctx context.Context, wellID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Visit], error) {
	visits, total, err := s.visitRepo.ListByWell(ctx, wellID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Visit]{}, err
	}
	return domain.NewPaginatedResponse(visits, params.Page, params.PageSize, total), nil
}

// Visit notifications are a courtesy to the owner; failures never block the
// scheduling itself.
func (s *visitService) notifyOwner(ctx context.Context, well *domain.Well, visit *domain.Visit, notifType domain.NotificationType, title, message string) {
	data, _ := json.Marshal(map[string]string{
		"visit_id":  visit.ID.String(),
		"well_id":   well.ID.String(),
		"well_name": well.Name,
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  well.OwnerID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create visit notification for owner %s: %v", well.OwnerID, err)
	}
}
