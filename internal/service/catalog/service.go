package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-WorkshopService/internal/service/catalog/models"
)

// Service сервис каталога услуг мастерской
type Service struct {
	serviceRepo ServiceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List возвращает все услуги с опциями
// Публичный метод - используется формой бронирования
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// Create создает услугу вместе с опциями в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateServiceRequest(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.serviceRepo.Create(txCtx, req.ToDomainService())
		return err
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d with %d options", created.ID, len(created.Options))
	return models.FromDomainService(created), nil
}

// Update заменяет услугу и ее опции. Опции получают новые ID
func (s *Service) Update(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateServiceRequest(req); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	service := req.ToDomainService()
	service.ID = id

	var updated *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.serviceRepo.Update(txCtx, service)
		return err
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу. Существующие бронирования хранят копию названий и цен
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: deleted service id=%d", id)
	return nil
}
