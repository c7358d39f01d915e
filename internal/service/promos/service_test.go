package promos

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	promoRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/promo"
	"github.com/m04kA/SMC-WorkshopService/internal/service/promos/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type fakeRepo struct {
	promos map[int64]*domain.Promo
	nextID int64
}

func (r *fakeRepo) List(context.Context) ([]domain.Promo, error) {
	out := make([]domain.Promo, 0, len(r.promos))
	for _, p := range r.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Promo, error) {
	if p, ok := r.promos[id]; ok {
		return p, nil
	}
	return nil, promoRepo.ErrPromoNotFound
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Promo) (*domain.Promo, error) {
	for _, existing := range r.promos {
		if existing.Code == p.Code {
			return nil, promoRepo.ErrPromoAlreadyExists
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.promos[p.ID] = p
	return p, nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Promo) (*domain.Promo, error) {
	if _, ok := r.promos[p.ID]; !ok {
		return nil, promoRepo.ErrPromoNotFound
	}
	r.promos[p.ID] = p
	return p, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.promos[id]; !ok {
		return promoRepo.ErrPromoNotFound
	}
	delete(r.promos, id)
	return nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{promos: map[int64]*domain.Promo{}}
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)
	return NewService(repo, &fixedTime{now: now}, logger.NewWithWriter(io.Discard, logger.LevelError)), repo
}

func validRequest() *models.PromoRequest {
	return &models.PromoRequest{
		Code:               " hemat-10 ",
		Name:               "Hemat 10%",
		DiscountType:       "percentage",
		Value:              10,
		ValidFrom:          ptr.Ptr("2026-05-01"),
		ValidUntil:         "2026-05-31",
		ApplicableServices: []int64{2, 2, 3},
	}
}

func TestService_Create_NormalizesCode(t *testing.T) {
	s, repo := newService()

	resp, err := s.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "HEMAT-10", resp.Code)
	assert.Equal(t, models.StatusActive, resp.Status)
	assert.Equal(t, []int64{2, 3}, repo.promos[resp.ID].ApplicableServices)

	_, err = s.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPromoCodeTaken)
}

func TestService_Create_Validation(t *testing.T) {
	s, _ := newService()

	mutations := map[string]func(r *models.PromoRequest){
		"short code":        func(r *models.PromoRequest) { r.Code = "ab" },
		"bad chars":         func(r *models.PromoRequest) { r.Code = "HEMAT 10" },
		"no name":           func(r *models.PromoRequest) { r.Name = "" },
		"bad type":          func(r *models.PromoRequest) { r.DiscountType = "free" },
		"zero value":        func(r *models.PromoRequest) { r.Value = 0 },
		"percentage > 100":  func(r *models.PromoRequest) { r.Value = 120 },
		"bad until":         func(r *models.PromoRequest) { r.ValidUntil = "31-05-2026" },
		"until before from": func(r *models.PromoRequest) { r.ValidFrom = ptr.Ptr("2026-06-01") },
		"bad service id":    func(r *models.PromoRequest) { r.ApplicableServices = []int64{0} },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := s.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_FixedAboveHundred(t *testing.T) {
	s, _ := newService()
	req := validRequest()
	req.DiscountType = "fixed"
	req.Value = 150000

	_, err := s.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestService_List_Status(t *testing.T) {
	s, repo := newService()
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.promos[1] = &domain.Promo{ID: 1, Code: "OLD", ValidUntil: time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)}
	repo.promos[2] = &domain.Promo{ID: 2, Code: "SOON", ValidFrom: &future, ValidUntil: future.AddDate(0, 1, 0)}

	list, err := s.List(context.Background())
	require.NoError(t, err)

	statuses := map[string]string{}
	for _, p := range list.Promos {
		statuses[p.Code] = p.Status
		assert.NotNil(t, p.ApplicableServices)
	}
	assert.Equal(t, models.StatusExpired, statuses["OLD"])
	assert.Equal(t, models.StatusUpcoming, statuses["SOON"])
}

func TestService_NotFound(t *testing.T) {
	s, _ := newService()

	_, err := s.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPromoNotFound)
	_, err = s.Update(context.Background(), 9, validRequest())
	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), 9), ErrPromoNotFound)
}
