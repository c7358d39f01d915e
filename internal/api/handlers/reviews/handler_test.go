package reviews

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	reviewService "github.com/m04kA/SMC-WorkshopService/internal/service/reviews"
	"github.com/m04kA/SMC-WorkshopService/internal/service/reviews/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) List(context.Context) (*models.ReviewListResponse, error) {
	return &models.ReviewListResponse{}, f.err
}

func (f *fakeService) Create(_ context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{ID: 1, Rating: req.Rating}, nil
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", `{"name":"Sari","comment":"Cepat dan rapi","rating":5}`, nil, http.StatusCreated},
		{"rejected by service", `{"name":"Sari","comment":"","rating":9}`, reviewService.ErrInvalidInput, http.StatusBadRequest},
		{"malformed", `{"rating":"lima"}`, nil, http.StatusBadRequest},
		{"storage failure", `{"name":"Sari","comment":"ok","rating":4}`, reviewService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewWithWriter(io.Discard, logger.LevelError))
			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
