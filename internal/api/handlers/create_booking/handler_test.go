package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
	bookingsModels "github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc UseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, logger.LevelError))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking:      &bookingsModels.BookingResponse{ID: 12},
		WhatsAppLink: "https://wa.me/6281234567890?text=halo",
	}}

	rec := serve(uc, `{"name":"Budi","plateNumber":"b 1234 cd","phone":"081234567890","vehicleType":"matic","bookingDate":"2026-10-20","serviceIds":[1],"optionIds":[3]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "Budi", uc.got.CustomerName)
	assert.Equal(t, []int64{1}, uc.got.ServiceIDs)

	var body createBooking.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Booking.ID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid date", createBooking.ErrInvalidDate, http.StatusBadRequest, msgInvalidDate},
		{"no options", createBooking.ErrNoOptionsSelected, http.StatusBadRequest, msgNoOptions},
		{"unknown service", createBooking.ErrServiceNotFound, http.StatusNotFound, msgServiceNotFound},
		{
			"expired promo",
			fmt.Errorf("%w: %w", createBooking.ErrPromoRejected, pricing.ErrPromoExpired),
			http.StatusUnprocessableEntity,
			handlers.PromoRejectionMessage(pricing.ErrPromoExpired),
		},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"name":"Budi"}`)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
