package customers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	customerService "github.com/m04kA/SMC-WorkshopService/internal/service/customers"
	"github.com/m04kA/SMC-WorkshopService/internal/service/customers/models"
)

const (
	pathParamPlate = "plate"

	msgInvalidQuery     = "parameter pencarian tidak valid"
	msgInvalidPlate     = "nomor polisi wajib diisi"
	msgCustomerNotFound = "pelanggan tidak ditemukan"
	msgInvalidPhone     = "nomor WhatsApp pelanggan tidak valid"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/customers?search=&overdueOnly=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	overdueOnly, err := handlers.QueryBool(r, "overdueOnly")
	if err != nil {
		h.logger.Warn("GET /customers - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListCustomersRequest{
		Search:      strings.TrimSpace(r.URL.Query().Get("search")),
		OverdueOnly: overdueOnly,
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /customers - Failed to list customers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Reminder GET /api/v1/customers/{plate}/reminder
func (h *Handler) Reminder(w http.ResponseWriter, r *http.Request) {
	plate := strings.TrimSpace(mux.Vars(r)[pathParamPlate])
	if plate == "" {
		handlers.RespondBadRequest(w, msgInvalidPlate)
		return
	}

	resp, err := h.service.ReminderLink(r.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, customerService.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/{plate}/reminder - Customer not found: plate=%s", plate)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, customerService.ErrInvalidPhone):
			h.logger.Warn("GET /customers/{plate}/reminder - Invalid phone: plate=%s, error=%v", plate, err)
			handlers.RespondUnprocessable(w, msgInvalidPhone)

		default:
			h.logger.Error("GET /customers/{plate}/reminder - Failed to build reminder: plate=%s, error=%v", plate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
