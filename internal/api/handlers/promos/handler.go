package promos

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	promoService "github.com/m04kA/SMC-WorkshopService/internal/service/promos"
	"github.com/m04kA/SMC-WorkshopService/internal/service/promos/models"
)

const (
	pathParamPromoID = "promoId"

	msgInvalidPromoID     = "ID promo tidak valid"
	msgInvalidRequestBody = "data promo tidak valid"
	msgPromoNotFound      = "promo tidak ditemukan"
	msgPromoCodeTaken     = "kode promo sudah digunakan"
)

type Handler struct {
	service PromoService
	logger  Logger
}

func NewHandler(service PromoService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/promos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /promos - Failed to list promos: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/promos/{promoId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamPromoID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPromoID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /promos/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/promos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /promos", 0, err)
		return
	}

	h.logger.Info("POST /promos - Promo created: id=%d, code=%s", resp.ID, resp.Code)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/promos/{promoId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamPromoID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPromoID)
		return
	}

	var req models.PromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /promos/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /promos/{id}", id, err)
		return
	}

	h.logger.Info("PUT /promos/{id} - Promo updated: id=%d, code=%s", id, resp.Code)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/promos/{promoId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamPromoID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPromoID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /promos/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /promos/{id} - Promo deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, promoService.ErrPromoNotFound):
		h.logger.Warn("%s - Promo not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgPromoNotFound)

	case errors.Is(err, promoService.ErrPromoCodeTaken):
		h.logger.Warn("%s - Promo code taken: %v", route, err)
		handlers.RespondConflict(w, msgPromoCodeTaken)

	case errors.Is(err, promoService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
