package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/repository"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	AssignRole(ctx context.Context, actorID uuid.UUID, input domain.AssignRoleInput, meta *RequestMeta) error
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

func NewUserService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) AssignRole(ctx context.Context, actorID uuid.UUID, input domain.AssignRoleInput, meta *RequestMeta) error {
	if !domain.UserRole(input.Role).IsValid() {
		return ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	oldRole := target.Role
	if err := s.userRepo.AssignRole(ctx, input.UserID, input.Role); err != nil {
		return err
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     actorID,
		Action:     "ASSIGN_ROLE",
		EntityType: "USER",
		EntityID:   input.UserID,
		OldValue:   json.RawMessage(`{"role":"` + oldRole + `"}`),
		NewValue:   json.RawMessage(`{"role":"` + input.Role + `"}`),
	}
	if meta != nil {
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
	}
	_ = s.auditRepo.Create(ctx, entry)

	return nil
}

func (s *userService) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	return s.userRepo.ListByRole(ctx, role)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, id)
}
