package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "parameter pencarian tidak valid"
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

// Handle GET /api/v1/bookings/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mechanicID, err := handlers.QueryInt64(r, "mechanicId")
	if err != nil {
		h.logger.Warn("GET /bookings/export - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListBookingsRequest{
		Date:       handlers.QueryString(r, "date"),
		Status:     handlers.QueryString(r, "status"),
		MechanicID: mechanicID,
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
	}

	data, err := h.service.Export(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /bookings/export - Failed to export bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("booking-%s.xlsx", time.Now().Format("20060102"))
	h.logger.Info("GET /bookings/export - Exported %d bytes", len(data))
	handlers.RespondFile(w, export.ContentTypeXLSX, filename, data)
}
