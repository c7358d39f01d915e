package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "data booking tidak valid"
	msgInvalidDate        = "tanggal booking minimal besok"
	msgNoOptions          = "pilih minimal satu opsi layanan atau centang cek kendaraan saja"
	msgServiceNotFound    = "layanan tidak ditemukan"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation error: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrNoOptionsSelected):
			h.logger.Warn("POST /bookings - No options selected")
			handlers.RespondBadRequest(w, msgNoOptions)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPromoRejected):
			h.logger.Warn("POST /bookings - Promo rejected: %v", err)
			handlers.RespondUnprocessable(w, handlers.PromoRejectionMessage(err))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", resp.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
