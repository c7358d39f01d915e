package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
)

// UseCase use case для создания бронирования из публичной формы
type UseCase struct {
	bookingRepo   BookingRepository
	drafts        DraftBuilder
	links         LinkBuilder
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	workshopPhone string
	workshopName  string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	drafts DraftBuilder,
	links LinkBuilder,
	metrics Metrics,
	txManager TransactionManager,
	timeProvider TimeProvider,
	workshopPhone string,
	workshopName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		drafts:        drafts,
		links:         links,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  timeProvider,
		workshopPhone: workshopPhone,
		workshopName:  workshopName,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Черновик собирается так же, как при расчете стоимости; бронирование и позиции сохраняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)
	uc.logger.Info("CreateBooking: plate=%s, date=%s, services=%v, options=%v, checkOnly=%t",
		req.PlateNumber, req.BookingDate, req.ServiceIDs, req.OptionIDs, req.CheckOnly)

	// 1. Валидация данных клиента
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не раньше завтрашнего дня по времени мастерской
	bookingDate, err := parseBookingDate(req.BookingDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Расчет стоимости
	draft, err := uc.drafts.BuildDraft(ctx, &req.Request)
	if err != nil {
		return nil, mapDraftError(err)
	}

	quote := draft.Quote()
	if !quote.CheckOnly && len(quote.Lines) == 0 {
		uc.logger.Warn("CreateBooking: no options selected")
		return nil, ErrNoOptionsSelected
	}

	booking := &domain.Booking{
		CustomerName: req.CustomerName,
		PlateNumber:  req.PlateNumber,
		Phone:        req.Phone,
		VehicleType:  domain.VehicleType(req.VehicleType),
		BookingDate:  bookingDate,
		Notes:        req.Notes,
		CheckOnly:    quote.CheckOnly,
		Status:       domain.StatusPending,
		PromoCode:    quote.PromoCode,
		Subtotal:     quote.Subtotal,
		Discount:     quote.Discount,
		Total:        quote.Total,
		Items:        itemsFromLines(quote.Lines),
	}

	// 4. Сохраняем бронирование вместе с позициями
	var result *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingCreated(result.CheckOnly, result.PromoCode != nil)
	uc.logger.Info("CreateBooking: successfully created booking id=%d total=%.0f", result.ID, result.Total)

	resp := &Response{Booking: models.FromDomainBooking(result)}

	// 5. Ссылка на подтверждение в WhatsApp мастерской; ошибка не отменяет бронирование
	if uc.workshopPhone != "" {
		link, err := uc.links.Link(uc.workshopPhone, whatsapp.BookingConfirmationText(result, uc.workshopName))
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to build WhatsApp link for booking id=%d: %v", result.ID, err)
		} else {
			resp.WhatsAppLink = link
		}
	}

	return resp, nil
}

func itemsFromLines(lines []pricing.Line) []domain.BookingItem {
	items := make([]domain.BookingItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.BookingItem{
			ServiceID:   l.ServiceID,
			ServiceName: l.ServiceName,
			OptionID:    l.OptionID,
			OptionName:  l.OptionName,
			Price:       l.Price,
		})
	}
	return items
}

// mapDraftError переводит ошибки расчета в ошибки use case, сохраняя причину отказа промокода
func mapDraftError(err error) error {
	switch {
	case errors.Is(err, quote_booking.ErrServiceNotFound):
		return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	case errors.Is(err, quote_booking.ErrPromoRejected):
		return fmt.Errorf("%w: %w", ErrPromoRejected, err)
	case errors.Is(err, quote_booking.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
