package employees

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	employeeService "github.com/m04kA/SMC-WorkshopService/internal/service/employees"
	"github.com/m04kA/SMC-WorkshopService/internal/service/employees/models"
)

const (
	pathParamEmployeeID = "employeeId"

	msgInvalidEmployeeID  = "ID pegawai tidak valid"
	msgInvalidRequestBody = "data pegawai tidak valid"
	msgEmployeeNotFound   = "pegawai tidak ditemukan"
	msgUsernameTaken      = "username sudah digunakan"
	msgCannotDeleteSelf   = "tidak dapat menghapus akun sendiri"
	msgMissingSession     = "sesi tidak ditemukan, silakan login"
)

// Handler управление сотрудниками, только admin
type Handler struct {
	service EmployeeService
	logger  Logger
}

func NewHandler(service EmployeeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/employees?search=&role=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListEmployeesRequest{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Role:   handlers.QueryString(r, "role"),
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /employees", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/employees/{employeeId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamEmployeeID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /employees/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /employees", 0, err)
		return
	}

	h.logger.Info("POST /employees - Employee created: id=%d, username=%s, role=%s", resp.ID, resp.Username, resp.Role)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/employees/{employeeId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, pathParamEmployeeID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req models.UpdateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /employees/{id}", id, err)
		return
	}

	h.logger.Info("PUT /employees/{id} - Employee updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/employees/{employeeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	id, err := handlers.PathID(r, pathParamEmployeeID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	if err := h.service.Delete(r.Context(), id, currentUserID); err != nil {
		h.respondError(w, "DELETE /employees/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /employees/{id} - Employee deleted: id=%d, by=%d", id, currentUserID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, employeeService.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, employeeService.ErrUsernameTaken):
		h.logger.Warn("%s - Username taken: %v", route, err)
		handlers.RespondConflict(w, msgUsernameTaken)

	case errors.Is(err, employeeService.ErrCannotDeleteSelf):
		h.logger.Warn("%s - Attempt to delete own account: id=%d", route, id)
		handlers.RespondConflict(w, msgCannotDeleteSelf)

	case errors.Is(err, employeeService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
