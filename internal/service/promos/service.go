package promos

import (
	"context"
	"errors"
	"fmt"

	promoRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/promo"
	"github.com/m04kA/SMC-WorkshopService/internal/service/promos/models"
)

// Service сервис администрирования промокодов
type Service struct {
	promoRepo    PromoRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(promoRepo PromoRepository, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		promoRepo:    promoRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает промокоды, последние по сроку действия первыми
func (s *Service) List(ctx context.Context) (*models.PromoListResponse, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListPromos: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPromoList(promos, s.timeProvider.Now()), nil
}

// GetByID получает промокод по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PromoResponse, error) {
	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			s.logger.Warn("GetPromo: promo id=%d not found", id)
			return nil, ErrPromoNotFound
		}
		s.logger.Error("GetPromo: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPromo(promo, s.timeProvider.Now()), nil
}

// Create создает промокод
func (s *Service) Create(ctx context.Context, req *models.PromoRequest) (*models.PromoResponse, error) {
	promo, err := toDomainPromo(req)
	if err != nil {
		s.logger.Warn("CreatePromo: validation failed: %v", err)
		return nil, err
	}

	created, err := s.promoRepo.Create(ctx, promo)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoAlreadyExists) {
			s.logger.Warn("CreatePromo: code=%s already exists", promo.Code)
			return nil, ErrPromoCodeTaken
		}
		s.logger.Error("CreatePromo: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePromo: created promo id=%d code=%s", created.ID, created.Code)
	return models.FromDomainPromo(created, s.timeProvider.Now()), nil
}

// Update заменяет промокод целиком
func (s *Service) Update(ctx context.Context, id int64, req *models.PromoRequest) (*models.PromoResponse, error) {
	promo, err := toDomainPromo(req)
	if err != nil {
		s.logger.Warn("UpdatePromo: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	promo.ID = id

	updated, err := s.promoRepo.Update(ctx, promo)
	if err != nil {
		switch {
		case errors.Is(err, promoRepo.ErrPromoNotFound):
			s.logger.Warn("UpdatePromo: promo id=%d not found", id)
			return nil, ErrPromoNotFound
		case errors.Is(err, promoRepo.ErrPromoAlreadyExists):
			s.logger.Warn("UpdatePromo: code=%s already exists", promo.Code)
			return nil, ErrPromoCodeTaken
		}
		s.logger.Error("UpdatePromo: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePromo: updated promo id=%d", id)
	return models.FromDomainPromo(updated, s.timeProvider.Now()), nil
}

// Delete удаляет промокод
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			s.logger.Warn("DeletePromo: promo id=%d not found", id)
			return ErrPromoNotFound
		}
		s.logger.Error("DeletePromo: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeletePromo: deleted promo id=%d", id)
	return nil
}
