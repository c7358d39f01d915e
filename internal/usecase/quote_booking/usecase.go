package quote_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	promoRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/promo"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
)

// UseCase расчет стоимости бронирования по выбору клиента
type UseCase struct {
	catalogRepo  CatalogRepository
	promoRepo    PromoRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	promoRepo PromoRepository,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		promoRepo:    promoRepo,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает расчет без сохранения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	draft, err := uc.BuildDraft(ctx, req)
	if err != nil {
		return nil, err
	}
	return FromQuote(draft.Quote()), nil
}

// BuildDraft собирает черновик так же, как его собирает форма бронирования:
// услуги из каталога, выбранные опции, флаг checkOnly и промокод
func (uc *UseCase) BuildDraft(ctx context.Context, req *Request) (*pricing.Draft, error) {
	serviceIDs, optionIDs, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		return nil, err
	}

	services, err := uc.catalogRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("QuoteBooking: failed to get services %v: %v", serviceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if missing := missingIDs(serviceIDs, services); len(missing) > 0 {
		uc.logger.Warn("QuoteBooking: services %v not found", missing)
		return nil, fmt.Errorf("%w: ids %v", ErrServiceNotFound, missing)
	}

	draft := pricing.NewDraft()
	byID := make(map[int64]domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	for _, id := range serviceIDs {
		draft.AddService(byID[id])
	}
	for _, id := range optionIDs {
		draft.SelectOption(id)
	}
	draft.SetCheckOnly(req.CheckOnly)

	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) != "" {
		if err := uc.applyPromo(ctx, draft, *req.PromoCode); err != nil {
			return nil, err
		}
	}

	return draft, nil
}

func (uc *UseCase) applyPromo(ctx context.Context, draft *pricing.Draft, code string) error {
	normalized := domain.NormalizePromoCode(code)

	var catalog []domain.Promo
	promo, err := uc.promoRepo.GetByCode(ctx, normalized)
	switch {
	case errors.Is(err, promoRepo.ErrPromoNotFound):
	case err != nil:
		uc.logger.Error("QuoteBooking: failed to get promo code=%s: %v", normalized, err)
		return fmt.Errorf("%w: failed to get promo: %v", ErrInternal, err)
	default:
		catalog = []domain.Promo{*promo}
	}

	today := domain.DateOnly(uc.timeProvider.Now())
	if err := draft.ApplyPromo(normalized, catalog, today); err != nil {
		reason := pricing.RejectionReason(err)
		uc.metrics.IncPromoRejection(reason)
		uc.logger.Warn("QuoteBooking: promo code=%s rejected: %s", normalized, reason)
		return fmt.Errorf("%w: %w", ErrPromoRejected, err)
	}

	return nil
}

func missingIDs(requested []int64, found []domain.Service) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, s := range found {
		present[s.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
