package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/user"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List возвращает страницу бронирований с фильтрацией
// Доступно только администратору
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	filter.Limit = uint64(pageSize)
	filter.Offset = uint64((page - 1) * pageSize)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)
	resp.Total = total
	resp.Page = page
	resp.PageSize = pageSize
	resp.TotalPages = (total + pageSize - 1) / pageSize

	s.logger.Info("ListBookings: fetched %d of %d bookings (page %d)", len(bookings), total, page)
	return resp, nil
}

// GetByID получает бронирование по ID
// Администратор видит любое бронирование, механик - только назначенное ему
func (s *Service) GetByID(ctx context.Context, id int64, session *domain.Session) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetBooking", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(booking, session); err != nil {
		s.logger.Warn("GetBooking: access denied for user=%d to booking id=%d", session.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус по разрешенным переходам
// pending -> in_progress | cancelled, in_progress -> completed | cancelled
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, session *domain.Session) (*models.BookingResponse, error) {
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	s.logger.Info("UpdateStatus: booking id=%d -> %s by user=%d", id, newStatus, session.UserID)

	var result *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if err := checkAccess(booking, session); err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", session.UserID, id)
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d", booking.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}

		booking.Status = newStatus
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, newStatus)
	return models.FromDomainBooking(result), nil
}

// AssignMechanic назначает механика на бронирование
// Доступно только администратору
func (s *Service) AssignMechanic(ctx context.Context, id int64, req *models.AssignMechanicRequest) (*models.BookingResponse, error) {
	if req.MechanicID <= 0 {
		return nil, fmt.Errorf("%w: mechanicId must be positive", ErrInvalidInput)
	}

	mechanic, err := s.userRepo.GetByID(ctx, req.MechanicID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("AssignMechanic: user id=%d not found", req.MechanicID)
			return nil, ErrMechanicNotFound
		}
		s.logger.Error("AssignMechanic: failed to get user id=%d: %v", req.MechanicID, err)
		return nil, fmt.Errorf("%w: AssignMechanic - user repository error: %v", ErrInternal, err)
	}
	if mechanic.Role != domain.RoleMechanic {
		s.logger.Warn("AssignMechanic: user id=%d has role %s", mechanic.ID, mechanic.Role)
		return nil, ErrNotAMechanic
	}

	if err := s.bookingRepo.AssignMechanic(ctx, id, mechanic.ID); err != nil {
		return nil, s.mapRepoError("AssignMechanic", id, err)
	}

	booking, err := s.getBooking(ctx, "AssignMechanic", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AssignMechanic: booking id=%d assigned to mechanic=%d", id, mechanic.ID)
	return models.FromDomainBooking(booking), nil
}

// UpdateMechanicNotes сохраняет заметки механика о выполненной работе
func (s *Service) UpdateMechanicNotes(ctx context.Context, id int64, req *models.UpdateNotesRequest, session *domain.Session) (*models.BookingResponse, error) {
	notes := strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(notes) > domain.MaxMechanicNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxMechanicNotesLength)
	}

	booking, err := s.getBooking(ctx, "UpdateMechanicNotes", id)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(booking, session); err != nil {
		s.logger.Warn("UpdateMechanicNotes: access denied for user=%d to booking id=%d", session.UserID, id)
		return nil, err
	}

	if err := s.bookingRepo.UpdateMechanicNotes(ctx, id, notes); err != nil {
		return nil, s.mapRepoError("UpdateMechanicNotes", id, err)
	}

	booking.MechanicNotes = &notes
	s.logger.Info("UpdateMechanicNotes: booking id=%d notes updated by user=%d", id, session.UserID)
	return models.FromDomainBooking(booking), nil
}

// MechanicBookings бронирования, назначенные механику, новые первыми
func (s *Service) MechanicBookings(ctx context.Context, mechanicID int64, date *string) (*models.BookingListResponse, error) {
	req := &models.ListBookingsRequest{Date: date, MechanicID: &mechanicID}
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("MechanicBookings: repository error for mechanic=%d: %v", mechanicID, err)
		return nil, fmt.Errorf("%w: MechanicBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MechanicBookings: fetched %d bookings for mechanic=%d", len(bookings), mechanicID)
	return models.FromDomainBookingList(bookings), nil
}

// Stats сводка по статусам и выручке
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.bookingRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainStats(stats), nil
}

// Export выгружает бронирования по фильтру в xlsx: лист бронирований и лист позиций
func (s *Service) Export(ctx context.Context, req *models.ListBookingsRequest) ([]byte, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ExportBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	summary := export.Table{
		Sheet: "Booking",
		Headers: []string{
			"ID", "Tanggal", "Nama", "Plat Nomor", "Telepon", "Kendaraan", "Layanan",
			"Status", "Montir", "Promo", "Subtotal", "Diskon", "Total",
		},
	}
	items := export.Table{
		Sheet:   "Rincian",
		Headers: []string{"Booking ID", "Layanan", "Opsi", "Harga"},
	}

	for _, b := range bookings {
		mechanic, promo := "", ""
		if b.MechanicName != nil {
			mechanic = *b.MechanicName
		}
		if b.PromoCode != nil {
			promo = *b.PromoCode
		}
		summary.Rows = append(summary.Rows, []interface{}{
			b.ID, b.BookingDate.Format(domain.DateFormat), b.CustomerName, b.PlateNumber, b.Phone,
			string(b.VehicleType), strings.Join(b.ServiceNames(), ", "), string(b.Status),
			mechanic, promo, b.Subtotal, b.Discount, b.Total,
		})
		for _, item := range b.Items {
			items.Rows = append(items.Rows, []interface{}{b.ID, item.ServiceName, item.OptionName, item.Price})
		}
	}

	data, err := export.XLSX(summary, items)
	if err != nil {
		s.logger.Error("ExportBookings: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: Export - %v", ErrInternal, err)
	}

	s.logger.Info("ExportBookings: exported %d bookings", len(bookings))
	return data, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// checkAccess администратор имеет доступ ко всем бронированиям, механик - к назначенным
func checkAccess(booking *domain.Booking, session *domain.Session) error {
	if session == nil {
		return ErrAccessDenied
	}
	if session.HasRole(domain.RoleAdmin) {
		return nil
	}
	if session.HasRole(domain.RoleMechanic) && booking.IsAssignedTo(session.UserID) {
		return nil
	}
	return ErrAccessDenied
}
