package stock

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	stockService "github.com/m04kA/SMC-WorkshopService/internal/service/stock"
	"github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"
	recordStockMovement "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_stock_movement"
)

const (
	msgInvalidRequestBody = "data stok tidak valid"
	msgInvalidQuery       = "parameter pencarian tidak valid"
	msgInvalidMonth       = "format bulan harus YYYY-MM"
	msgMissingSession     = "sesi tidak ditemukan, silakan login"
	msgSparepartNotFound  = "sparepart tidak ditemukan"
	msgInsufficientStock  = "stok tidak mencukupi"
)

// Handler журнал движений склада и месячный отчет
type Handler struct {
	service  StockService
	recorder MovementRecorder
	logger   Logger
}

func NewHandler(service StockService, recorder MovementRecorder, logger Logger) *Handler {
	return &Handler{
		service:  service,
		recorder: recorder,
		logger:   logger,
	}
}

// StockIn POST /api/v1/stock/in
func (h *Handler) StockIn(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, domain.MovementIn, "POST /stock/in")
}

// StockOut POST /api/v1/stock/out
func (h *Handler) StockOut(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, domain.MovementOut, "POST /stock/out")
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, direction domain.MovementDirection, route string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req recordStockMovement.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Direction = string(direction)
	req.UserID = userID

	resp, err := h.recorder.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, recordStockMovement.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, recordStockMovement.ErrSparepartNotFound):
			h.logger.Warn("%s - Sparepart not found: sparepart_id=%d", route, req.SparepartID)
			handlers.RespondNotFound(w, msgSparepartNotFound)

		case errors.Is(err, recordStockMovement.ErrInsufficientStock):
			h.logger.Warn("%s - Insufficient stock: sparepart_id=%d, quantity=%d", route, req.SparepartID, req.Quantity)
			handlers.RespondConflict(w, msgInsufficientStock)

		default:
			h.logger.Error("%s - Failed to record movement: sparepart_id=%d, error=%v", route, req.SparepartID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Movement recorded: sparepart_id=%d, quantity=%d, stock=%d, user_id=%d",
		route, req.SparepartID, req.Quantity, resp.CurrentStock, userID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Movements GET /api/v1/stock/movements?direction=&date=&search=
func (h *Handler) Movements(w http.ResponseWriter, r *http.Request) {
	req := &models.ListMovementsRequest{
		Direction: handlers.QueryString(r, "direction"),
		Date:      handlers.QueryString(r, "date"),
		Search:    strings.TrimSpace(r.URL.Query().Get("search")),
	}

	resp, err := h.service.ListMovements(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /stock/movements", msgInvalidQuery, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Report GET /api/v1/stock/report?month=2026-05
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	month := reportMonth(r)

	resp, err := h.service.MonthlyReport(r.Context(), month)
	if err != nil {
		h.respondError(w, "GET /stock/report", msgInvalidMonth, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// ExportReport GET /api/v1/stock/report/export?month=2026-05
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	month := reportMonth(r)

	data, err := h.service.ExportMonthlyReport(r.Context(), month)
	if err != nil {
		h.respondError(w, "GET /stock/report/export", msgInvalidMonth, err)
		return
	}

	h.logger.Info("GET /stock/report/export - Exported report: month=%s, bytes=%d", month, len(data))
	handlers.RespondFile(w, export.ContentTypeXLSX, fmt.Sprintf("laporan-stok-%s.xlsx", month), data)
}

func (h *Handler) respondError(w http.ResponseWriter, route, invalidMsg string, err error) {
	switch {
	case errors.Is(err, stockService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, invalidMsg)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

// reportMonth месяц отчета, по умолчанию текущий
func reportMonth(r *http.Request) string {
	if month := strings.TrimSpace(r.URL.Query().Get("month")); month != "" {
		return month
	}
	return time.Now().Format(domain.MonthFormat)
}
