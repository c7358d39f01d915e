package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-WorkshopService/internal/service/catalog/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
)

type fakeRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func (r *fakeRepo) List(context.Context) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (r *fakeRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.nextID++
	s.ID = r.nextID
	for i := range s.Options {
		s.Options[i].ID = r.nextID*100 + int64(i)
		s.Options[i].ServiceID = s.ID
	}
	r.services[s.ID] = s
	return s, nil
}

func (r *fakeRepo) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if _, ok := r.services[s.ID]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	r.services[s.ID] = s
	return s, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

type passTx struct{ calls int }

func (p *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

func newService() (*Service, *fakeRepo, *passTx) {
	repo := &fakeRepo{services: map[int64]*domain.Service{}}
	tx := &passTx{}
	return NewService(repo, tx, logger.NewWithWriter(io.Discard, logger.LevelError)), repo, tx
}

func TestService_Create(t *testing.T) {
	s, repo, tx := newService()

	resp, err := s.Create(context.Background(), &models.ServiceRequest{
		Name:     "Ganti Oli Mesin",
		Category: "Perawatan",
		Options:  []models.OptionRequest{{Name: "Oli 5W-30", Price: 450000}, {Name: "Jasa", Price: 50000}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, resp.Options, 2)
	assert.Equal(t, 450000.0, resp.Options[0].Price)
	assert.Contains(t, repo.services, resp.ID)
}

func TestService_Create_Validation(t *testing.T) {
	s, _, tx := newService()

	cases := []models.ServiceRequest{
		{Name: " "},
		{Name: "Tune Up", DurationMinutes: -5},
		{Name: "Tune Up", Options: []models.OptionRequest{{Name: "", Price: 1}}},
		{Name: "Tune Up", Options: []models.OptionRequest{{Name: "Busi", Price: -1}}},
	}
	for _, c := range cases {
		_, err := s.Create(context.Background(), &c)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, tx.calls)
}

func TestService_NotFound(t *testing.T) {
	s, _, _ := newService()

	_, err := s.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = s.Update(context.Background(), 42, &models.ServiceRequest{Name: "Tune Up"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	assert.ErrorIs(t, s.Delete(context.Background(), 42), ErrServiceNotFound)
}

func TestService_List(t *testing.T) {
	s, _, _ := newService()
	_, err := s.Create(context.Background(), &models.ServiceRequest{Name: "Spooring"})
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Services, 1)
	assert.NotNil(t, list.Services[0].Options, "options serialize as [] not null")
}
