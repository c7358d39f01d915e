package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр и страница списка бронирований
type ListBookingsRequest struct {
	Date       *string // "2026-05-01"
	Status     *string
	MechanicID *int64
	Search     string
	Page       int
	PageSize   int
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AssignMechanicRequest запрос на назначение механика
type AssignMechanicRequest struct {
	MechanicID int64 `json:"mechanicId"`
}

// UpdateNotesRequest заметки механика
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// ToDomainFilter конвертирует request в domain фильтр (без пагинации)
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		MechanicID: r.MechanicID,
		Search:     r.Search,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingItemResponse выбранная опция услуги
type BookingItemResponse struct {
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	OptionID    int64   `json:"optionId"`
	OptionName  string  `json:"optionName"`
	Price       float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"customerName"`
	PlateNumber  string  `json:"plateNumber"`
	Phone        string  `json:"phone"`
	VehicleType  string  `json:"vehicleType"`
	BookingDate  string  `json:"bookingDate"` // "2026-05-01"
	Notes        *string `json:"notes,omitempty"`
	CheckOnly    bool    `json:"checkOnly"`
	Status       string  `json:"status"`

	MechanicID    *int64  `json:"mechanicId,omitempty"`
	MechanicName  *string `json:"mechanicName,omitempty"`
	MechanicNotes *string `json:"mechanicNotes,omitempty"`

	// Снимок расчета на момент создания
	PromoCode *string               `json:"promoCode,omitempty"`
	Subtotal  float64               `json:"subtotal"`
	Discount  float64               `json:"discount"`
	Total     float64               `json:"total"`
	Services  []string              `json:"services"`
	Items     []BookingItemResponse `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page,omitempty"`
	PageSize   int               `json:"pageSize,omitempty"`
	TotalPages int               `json:"totalPages,omitempty"`
}

// StatsResponse сводка для дашборда
type StatsResponse struct {
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	InProgress int     `json:"inProgress"`
	Completed  int     `json:"completed"`
	Cancelled  int     `json:"cancelled"`
	Revenue    float64 `json:"revenue"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		PlateNumber:   b.PlateNumber,
		Phone:         b.Phone,
		VehicleType:   string(b.VehicleType),
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		Notes:         b.Notes,
		CheckOnly:     b.CheckOnly,
		Status:        string(b.Status),
		MechanicID:    b.MechanicID,
		MechanicName:  b.MechanicName,
		MechanicNotes: b.MechanicNotes,
		PromoCode:     b.PromoCode,
		Subtotal:      b.Subtotal,
		Discount:      b.Discount,
		Total:         b.Total,
		Services:      b.ServiceNames(),
		Items:         make([]BookingItemResponse, 0, len(b.Items)),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	for _, item := range b.Items {
		resp.Items = append(resp.Items, BookingItemResponse{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			OptionID:    item.OptionID,
			OptionName:  item.OptionName,
			Price:       item.Price,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// FromDomainStats конвертирует сводку
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Cancelled:  s.Cancelled,
		Revenue:    s.Revenue,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
