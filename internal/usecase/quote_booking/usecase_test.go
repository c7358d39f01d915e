package quote_booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	promoRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/promo"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type fakeCatalog struct {
	services []domain.Service
	err      error
}

func (c *fakeCatalog) GetByIDs(_ context.Context, ids []int64) ([]domain.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []domain.Service
	for _, s := range c.services {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakePromos struct {
	promos map[string]domain.Promo
}

func (p *fakePromos) GetByCode(_ context.Context, code string) (*domain.Promo, error) {
	promo, ok := p.promos[code]
	if !ok {
		return nil, promoRepo.ErrPromoNotFound
	}
	return &promo, nil
}

type fakeMetrics struct {
	rejections []string
}

func (m *fakeMetrics) IncPromoRejection(reason string) {
	m.rejections = append(m.rejections, reason)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var today = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func catalog() []domain.Service {
	return []domain.Service{
		{ID: 1, Name: "Ganti Oli", Options: []domain.ServiceOption{
			{ID: 11, ServiceID: 1, Name: "Shell Helix", Price: 450000},
			{ID: 12, ServiceID: 1, Name: "Filter Oli", Price: 60000},
		}},
		{ID: 2, Name: "Servis Rem", Options: []domain.ServiceOption{
			{ID: 21, ServiceID: 2, Name: "Kampas Rem", Price: 750000},
		}},
	}
}

func promos() map[string]domain.Promo {
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	return map[string]domain.Promo{
		"HEMAT10": {Code: "HEMAT10", DiscountType: domain.DiscountPercentage, Value: 10, ValidUntil: tomorrow},
		"LAMA":    {Code: "LAMA", DiscountType: domain.DiscountFixed, Value: 50000, ValidUntil: yesterday},
		"REM":     {Code: "REM", DiscountType: domain.DiscountFixed, Value: 50000, ValidUntil: tomorrow, ApplicableServices: []int64{2}},
	}
}

func newUseCase(m *fakeMetrics) *UseCase {
	return NewUseCase(
		&fakeCatalog{services: catalog()},
		&fakePromos{promos: promos()},
		m,
		fixedTime{t: today},
		logger.NewWithWriter(io.Discard, logger.LevelError),
	)
}

func TestUseCase_Execute_Quote(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2, 1},
		OptionIDs:  []int64{11, 12, 21},
		PromoCode:  ptr.Ptr(" hemat10 "),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Lines, 3)
	assert.Equal(t, 1260000.0, resp.Subtotal)
	assert.Equal(t, 126000.0, resp.Discount)
	assert.Equal(t, 1134000.0, resp.Total)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "HEMAT10", *resp.PromoCode)
}

func TestUseCase_Execute_CheckOnly(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}, OptionIDs: []int64{11}, CheckOnly: true})
	require.NoError(t, err)
	assert.True(t, resp.CheckOnly)
	assert.Zero(t, resp.Subtotal)
	assert.Zero(t, resp.Total)
}

func TestUseCase_Execute_StaleOptionSkipped(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}, OptionIDs: []int64{11, 999}})
	require.NoError(t, err)
	assert.Len(t, resp.Lines, 1)
	assert.Equal(t, 450000.0, resp.Total)
}

func TestUseCase_Execute_UnknownService(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1, 42}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_InvalidIDs(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}, OptionIDs: []int64{-3}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_PromoRejections(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		reason string
		cause  error
	}{
		{name: "unknown code", code: "NOPE", reason: "not_found", cause: pricing.ErrPromoNotFound},
		{name: "expired", code: "LAMA", reason: "expired", cause: pricing.ErrPromoExpired},
		{name: "scoped to other service", code: "REM", reason: "not_applicable", cause: pricing.ErrPromoNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMetrics{}
			uc := newUseCase(m)

			_, err := uc.Execute(context.Background(), &Request{
				ServiceIDs: []int64{1},
				OptionIDs:  []int64{11},
				PromoCode:  ptr.Ptr(tt.code),
			})
			assert.ErrorIs(t, err, ErrPromoRejected)
			assert.ErrorIs(t, err, tt.cause)
			assert.Equal(t, []string{tt.reason}, m.rejections)
		})
	}
}

func TestUseCase_Execute_BlankPromoIgnored(t *testing.T) {
	m := &fakeMetrics{}
	uc := newUseCase(m)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{2}, OptionIDs: []int64{21}, PromoCode: ptr.Ptr("  ")})
	require.NoError(t, err)
	assert.Nil(t, resp.PromoCode)
	assert.Empty(t, m.rejections)
}

func TestUseCase_Execute_CatalogError(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})
	uc.catalogRepo = &fakeCatalog{err: errors.New("db down")}

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrInternal)
}
