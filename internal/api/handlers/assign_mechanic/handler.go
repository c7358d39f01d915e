package assign_mechanic

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "ID booking tidak valid"
	msgInvalidRequestBody = "data montir tidak valid"
	msgNotFound           = "booking tidak ditemukan"
	msgMechanicNotFound   = "montir tidak ditemukan"
	msgNotAMechanic       = "karyawan ini bukan montir"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/mechanic
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/mechanic - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.AssignMechanicRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/mechanic - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.AssignMechanic(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/mechanic - Validation error: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/mechanic - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrMechanicNotFound):
			h.logger.Warn("PATCH /bookings/{id}/mechanic - Mechanic not found: mechanic_id=%d", req.MechanicID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, bookings.ErrNotAMechanic):
			h.logger.Warn("PATCH /bookings/{id}/mechanic - User is not a mechanic: user_id=%d", req.MechanicID)
			handlers.RespondUnprocessable(w, msgNotAMechanic)

		default:
			h.logger.Error("PATCH /bookings/{id}/mechanic - Failed to assign mechanic: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/mechanic - Mechanic assigned: booking_id=%d, mechanic_id=%d",
		bookingID, req.MechanicID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
