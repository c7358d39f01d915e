package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	userRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/user"
	authModels "github.com/m04kA/SMC-WorkshopService/internal/service/auth/models"
	"github.com/m04kA/SMC-WorkshopService/internal/service/employees/models"
)

// Service сервис управления сотрудниками
type Service struct {
	userRepo UserRepository
	hasher   PasswordHasher
	logger   Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(userRepo UserRepository, hasher PasswordHasher, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// List возвращает сотрудников с поиском и фильтром по роли
func (s *Service) List(ctx context.Context, req *models.ListEmployeesRequest) (*models.EmployeeListResponse, error) {
	filter := domain.UsersFilter{Search: req.Search}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *req.Role)
		}
		filter.Role = &role
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListEmployees: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(users), nil
}

// Create создает сотрудника с захешированным паролем
func (s *Service) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*authModels.UserResponse, error) {
	role, err := validateProfile(req.Username, req.Name, req.Role)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("CreateEmployee: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Create - hash password: %v", ErrInternal, err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserAlreadyExists) {
			s.logger.Warn("CreateEmployee: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("CreateEmployee: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateEmployee: created user=%d role=%s", created.ID, created.Role)
	return authModels.FromDomainUser(created), nil
}

// Update обновляет профиль сотрудника
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*authModels.UserResponse, error) {
	role, err := validateProfile(req.Username, req.Name, req.Role)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       id,
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     role,
	}

	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.HashPassword(req.Password)
		if err != nil {
			s.logger.Error("UpdateEmployee: failed to hash password: %v", err)
			return nil, fmt.Errorf("%w: Update - hash password: %v", ErrInternal, err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("UpdateEmployee: user=%d not found", id)
			return nil, ErrEmployeeNotFound
		case errors.Is(err, userRepo.ErrUserAlreadyExists):
			s.logger.Warn("UpdateEmployee: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("UpdateEmployee: repository error for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateEmployee: updated user=%d", id)
	return authModels.FromDomainUser(updated), nil
}

// Delete удаляет сотрудника; удалить собственную учетную запись нельзя
func (s *Service) Delete(ctx context.Context, id, currentUserID int64) error {
	if id == currentUserID {
		s.logger.Warn("DeleteEmployee: user=%d tried to delete own account", id)
		return ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("DeleteEmployee: user=%d not found", id)
			return ErrEmployeeNotFound
		}
		s.logger.Error("DeleteEmployee: repository error for user=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEmployee: deleted user=%d by user=%d", id, currentUserID)
	return nil
}

// GetByID возвращает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*authModels.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetEmployee: user id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetEmployee: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return authModels.FromDomainUser(user), nil
}

// EnsureAdmin создает начального администратора, если в системе нет ни одного сотрудника
func (s *Service) EnsureAdmin(ctx context.Context, username, password, name string) error {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - count users: %v", ErrInternal, err)
	}
	if total > 0 {
		return nil
	}

	created, err := s.Create(ctx, &models.CreateEmployeeRequest{
		Username: username,
		Name:     name,
		Role:     string(domain.RoleAdmin),
		Password: password,
	})
	if err != nil {
		return err
	}

	s.logger.Info("EnsureAdmin: bootstrap admin %s created with id=%d", created.Username, created.ID)
	return nil
}
