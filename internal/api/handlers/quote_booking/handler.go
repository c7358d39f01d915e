package quote_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	quoteBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
)

const (
	msgInvalidRequestBody = "pilihan layanan tidak valid"
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

// Handle POST /api/v1/bookings/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req quoteBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/quote - Validation error: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, quoteBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/quote - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteBooking.ErrPromoRejected):
			h.logger.Warn("POST /bookings/quote - Promo rejected: %v", err)
			handlers.RespondUnprocessable(w, handlers.PromoRejectionMessage(err))

		default:
			h.logger.Error("POST /bookings/quote - Failed to quote booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/quote - Quote computed: lines=%d total=%.0f", len(quote.Lines), quote.Total)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
