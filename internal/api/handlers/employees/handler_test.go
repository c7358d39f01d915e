package employees

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	authModels "github.com/m04kA/SMC-WorkshopService/internal/service/auth/models"
	employeeService "github.com/m04kA/SMC-WorkshopService/internal/service/employees"
	"github.com/m04kA/SMC-WorkshopService/internal/service/employees/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
)

type fakeService struct {
	deletedID int64
	deletedBy int64
	err       error
}

func (f *fakeService) List(context.Context, *models.ListEmployeesRequest) (*models.EmployeeListResponse, error) {
	return &models.EmployeeListResponse{}, f.err
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*authModels.UserResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &authModels.UserResponse{ID: id}, nil
}

func (f *fakeService) Create(context.Context, *models.CreateEmployeeRequest) (*authModels.UserResponse, error) {
	return nil, f.err
}

func (f *fakeService) Update(context.Context, int64, *models.UpdateEmployeeRequest) (*authModels.UserResponse, error) {
	return nil, f.err
}

func (f *fakeService) Delete(_ context.Context, id, currentUserID int64) error {
	f.deletedID = id
	f.deletedBy = currentUserID
	return f.err
}

func newRouter(svc EmployeeService) *mux.Router {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelError))

	router := mux.NewRouter()
	router.HandleFunc("/employees/{employeeId}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/employees/{employeeId}", h.Delete).Methods(http.MethodDelete)
	return router
}

func asAdmin(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), &domain.Session{UserID: userID, Role: domain.RoleAdmin}))
}

func TestDelete_PassesCurrentUser(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodDelete, "/employees/5", nil), 1))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), svc.deletedID)
	assert.Equal(t, int64(1), svc.deletedBy)
}

func TestDelete_OwnAccount(t *testing.T) {
	svc := &fakeService{err: employeeService.ErrCannotDeleteSelf}
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodDelete, "/employees/1", nil), 1))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"found", "/employees/3", nil, http.StatusOK},
		{"not found", "/employees/3", employeeService.ErrEmployeeNotFound, http.StatusNotFound},
		{"invalid id", "/employees/abc", nil, http.StatusBadRequest},
		{"zero id", "/employees/0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeService{err: tt.err}).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, tt.path, nil), 1))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
