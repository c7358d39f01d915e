package create_booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
	"github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	b.ID = 77
	r.created = b
	return b, nil
}

// fakeDrafts собирает черновик из фиксированного каталога
type fakeDrafts struct {
	err error
}

func (f *fakeDrafts) BuildDraft(_ context.Context, req *quote_booking.Request) (*pricing.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	draft := pricing.NewDraft()
	draft.AddService(domain.Service{ID: 1, Name: "Ganti Oli", Options: []domain.ServiceOption{
		{ID: 11, ServiceID: 1, Name: "Shell Helix", Price: 450000},
		{ID: 12, ServiceID: 1, Name: "Filter Oli", Price: 60000},
	}})
	for _, id := range req.OptionIDs {
		draft.SelectOption(id)
	}
	draft.SetCheckOnly(req.CheckOnly)
	return draft, nil
}

type fakeMetrics struct {
	created int
}

func (m *fakeMetrics) IncBookingCreated(bool, bool) { m.created++ }

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var jakarta = time.FixedZone("WIB", 7*3600)

// 2026-06-15 23:30 WIB, в UTC это еще 15 июня 16:30
var now = time.Date(2026, 6, 15, 23, 30, 0, 0, jakarta)

type fixture struct {
	uc      *UseCase
	repo    *fakeBookingRepo
	drafts  *fakeDrafts
	metrics *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{repo: &fakeBookingRepo{}, drafts: &fakeDrafts{}, metrics: &fakeMetrics{}}
	f.uc = NewUseCase(
		f.repo,
		f.drafts,
		whatsapp.NewLinkBuilder("62"),
		f.metrics,
		passTx{},
		fixedTime{t: now},
		"0812-0000-1111",
		"Bengkel Maju",
		logger.NewWithWriter(io.Discard, logger.LevelError),
	)
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerName: " Budi ",
		PlateNumber:  "b 1234 xyz",
		Phone:        "0812 3456 789",
		VehicleType:  "Sedan",
		BookingDate:  "2026-06-16",
		Notes:        ptr.Ptr("  bunyi di roda depan "),
		Request: quote_booking.Request{
			ServiceIDs: []int64{1},
			OptionIDs:  []int64{11, 12},
		},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	created := f.repo.created
	require.NotNil(t, created)
	assert.Equal(t, "Budi", created.CustomerName)
	assert.Equal(t, "B1234XYZ", created.PlateNumber)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "bunyi di roda depan", *created.Notes)
	assert.Len(t, created.Items, 2)
	assert.Equal(t, 510000.0, created.Total)
	assert.Equal(t, 1, f.metrics.created)

	assert.Equal(t, int64(77), resp.Booking.ID)
	assert.True(t, strings.HasPrefix(resp.WhatsAppLink, "https://wa.me/6281200001111?text="))
}

func TestUseCase_Execute_CheckOnlyWithoutOptions(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.OptionIDs = nil
	req.CheckOnly = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Booking.CheckOnly)
	assert.Zero(t, resp.Booking.Total)
}

func TestUseCase_Execute_NoOptions(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.OptionIDs = []int64{999}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoOptionsSelected)
	assert.Nil(t, f.repo.created)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing name", mutate: func(r *Request) { r.CustomerName = "  " }, wantErr: ErrInvalidInput},
		{name: "missing plate", mutate: func(r *Request) { r.PlateNumber = "" }, wantErr: ErrInvalidInput},
		{name: "short phone", mutate: func(r *Request) { r.Phone = "0812" }, wantErr: ErrInvalidInput},
		{name: "unknown vehicle", mutate: func(r *Request) { r.VehicleType = "Truck" }, wantErr: ErrInvalidInput},
		{name: "long notes", mutate: func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1)) }, wantErr: ErrInvalidInput},
		{name: "bad date format", mutate: func(r *Request) { r.BookingDate = "16/06/2026" }, wantErr: ErrInvalidInput},
		{name: "today in workshop timezone", mutate: func(r *Request) { r.BookingDate = "2026-06-15" }, wantErr: ErrInvalidDate},
		{name: "past date", mutate: func(r *Request) { r.BookingDate = "2026-01-01" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.repo.created)
			assert.Zero(t, f.metrics.created)
		})
	}
}

func TestUseCase_Execute_DraftErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "unknown service", err: fmt.Errorf("%w: ids [5]", quote_booking.ErrServiceNotFound), wantErr: ErrServiceNotFound},
		{name: "promo rejected", err: fmt.Errorf("%w: %w", quote_booking.ErrPromoRejected, pricing.ErrPromoExpired), wantErr: pricing.ErrPromoExpired},
		{name: "catalog failure", err: fmt.Errorf("%w: boom", quote_booking.ErrInternal), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.drafts.err = tt.err

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_PromoRejectedKeepsCause(t *testing.T) {
	f := newFixture()
	f.drafts.err = fmt.Errorf("%w: %w", quote_booking.ErrPromoRejected, pricing.ErrPromoNotApplicable)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPromoRejected)
	assert.ErrorIs(t, err, pricing.ErrPromoNotApplicable)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("insert failed")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.metrics.created)
}
