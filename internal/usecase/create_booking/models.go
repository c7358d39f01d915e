package create_booking

import (
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
)

// Request форма бронирования: данные клиента и выбор услуг
type Request struct {
	CustomerName string  `json:"name"`
	PlateNumber  string  `json:"plateNumber"`
	Phone        string  `json:"phone"`
	VehicleType  string  `json:"vehicleType"`
	BookingDate  string  `json:"bookingDate"` // "2026-05-01"
	Notes        *string `json:"notes,omitempty"`

	quote_booking.Request
}

// Response созданное бронирование и ссылка для подтверждения в WhatsApp мастерской
type Response struct {
	Booking      *models.BookingResponse `json:"booking"`
	WhatsAppLink string                  `json:"whatsappLink,omitempty"`
}
