package get_mechanic_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

const (
	msgInvalidDate    = "format tanggal tidak valid (YYYY-MM-DD)"
	msgMissingSession = "sesi tidak ditemukan, silakan login"
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

// Handle GET /api/v1/mechanic/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /mechanic/bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	date := handlers.QueryString(r, "date")

	resp, err := h.service.MechanicBookings(r.Context(), userID, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /mechanic/bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /mechanic/bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mechanic/bookings - Bookings retrieved: user_id=%d, count=%d", userID, len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
