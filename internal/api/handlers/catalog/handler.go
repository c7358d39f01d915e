package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-WorkshopService/internal/service/catalog"
	"github.com/m04kA/SMC-WorkshopService/internal/service/catalog/models"
)

const (
	pathParamServiceID = "serviceId"

	msgInvalidServiceID   = "ID layanan tidak valid"
	msgInvalidRequestBody = "data layanan tidak valid"
	msgServiceNotFound    = "layanan tidak ditemukan"
)

// Handler CRUD каталога услуг: чтение публичное, запись только admin
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/services/{serviceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamServiceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /services/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /services", 0, err)
		return
	}

	h.logger.Info("POST /services - Service created: id=%d, name=%s", resp.ID, resp.Name)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamServiceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /services/{id}", id, err)
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/services/{serviceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamServiceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /services/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, catalogService.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalogService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
