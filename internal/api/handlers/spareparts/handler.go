package spareparts

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	sparepartService "github.com/m04kA/SMC-WorkshopService/internal/service/spareparts"
	"github.com/m04kA/SMC-WorkshopService/internal/service/spareparts/models"
)

const (
	pathParamSparepartID = "sparepartId"

	msgInvalidSparepartID = "ID sparepart tidak valid"
	msgInvalidQuery       = "parameter pencarian tidak valid"
	msgInvalidRequestBody = "data sparepart tidak valid"
	msgSparepartNotFound  = "sparepart tidak ditemukan"
	msgCodeTaken          = "kode sparepart sudah digunakan"
	msgSparepartInUse     = "sparepart sudah memiliki riwayat stok dan tidak dapat dihapus"
)

// LowStockResponse запчасти с остатком в полосах low и out_of_stock
type LowStockResponse struct {
	Spareparts []models.SparepartResponse `json:"spareparts"`
	Total      int                        `json:"total"`
}

type Handler struct {
	service SparepartService
	logger  Logger
}

func NewHandler(service SparepartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/spareparts?search=&status=&page=&pageSize=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /spareparts - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListSparepartsRequest{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Status:   handlers.QueryString(r, "status"),
		Page:     page.Number,
		PageSize: page.Size,
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /spareparts", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/spareparts/{sparepartId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamSparepartID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSparepartID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /spareparts/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/spareparts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SparepartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spareparts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /spareparts", 0, err)
		return
	}

	h.logger.Info("POST /spareparts - Sparepart created: id=%d, code=%s", resp.ID, resp.Code)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/spareparts/{sparepartId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamSparepartID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSparepartID)
		return
	}

	var req models.SparepartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spareparts/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /spareparts/{id}", id, err)
		return
	}

	h.logger.Info("PUT /spareparts/{id} - Sparepart updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/spareparts/{sparepartId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamSparepartID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSparepartID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /spareparts/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /spareparts/{id} - Sparepart deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

// LowStock GET /api/v1/spareparts/low-stock
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context())
	if err != nil {
		h.respondError(w, "GET /spareparts/low-stock", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &LowStockResponse{Spareparts: items, Total: len(items)})
}

// Export GET /api/v1/spareparts/export?search=&status=
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	data, err := h.service.Export(r.Context(), search, handlers.QueryString(r, "status"))
	if err != nil {
		h.respondError(w, "GET /spareparts/export", 0, err)
		return
	}

	filename := fmt.Sprintf("sparepart-%s.xlsx", time.Now().Format("20060102"))
	h.logger.Info("GET /spareparts/export - Exported %d bytes", len(data))
	handlers.RespondFile(w, export.ContentTypeXLSX, filename, data)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, sparepartService.ErrSparepartNotFound):
		h.logger.Warn("%s - Sparepart not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgSparepartNotFound)

	case errors.Is(err, sparepartService.ErrCodeTaken):
		h.logger.Warn("%s - Code taken: %v", route, err)
		handlers.RespondConflict(w, msgCodeTaken)

	case errors.Is(err, sparepartService.ErrSparepartInUse):
		h.logger.Warn("%s - Sparepart in use: id=%d", route, id)
		handlers.RespondConflict(w, msgSparepartInUse)

	case errors.Is(err, sparepartService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
