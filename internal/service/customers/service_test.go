package customers

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-WorkshopService/internal/service/customers/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
)

type fakeRepo struct {
	customers  []*domain.Customer
	lastFilter domain.CustomersFilter
	err        error
}

func (r *fakeRepo) ListCustomers(_ context.Context, filter domain.CustomersFilter) ([]*domain.Customer, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	if filter.PlateNumber == "" {
		return r.customers, nil
	}
	for _, c := range r.customers {
		if c.PlateNumber == filter.PlateNumber {
			return []*domain.Customer{c}, nil
		}
	}
	return nil, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func newService(repo *fakeRepo) *Service {
	return NewService(
		repo,
		whatsapp.NewLinkBuilder("62"),
		fixedTime{t: now},
		"Bengkel Maju",
		logger.NewWithWriter(io.Discard, logger.LevelError),
	)
}

func sampleCustomers() []*domain.Customer {
	return []*domain.Customer{
		{Name: "Budi", Phone: "0812-3456-789", PlateNumber: "B1234XYZ", LastServiceDate: daysAgo(120), BookingsCount: 3},
		{Name: "Sari", Phone: "0813000111", PlateNumber: "D55AB", LastServiceDate: daysAgo(10), BookingsCount: 1},
		{Name: "Joko", Phone: "0814000222", PlateNumber: "F9C", BookingsCount: 1},
	}
}

func TestService_List_StatusAndOverdueFilter(t *testing.T) {
	repo := &fakeRepo{customers: sampleCustomers()}
	s := newService(repo)

	all, err := s.List(context.Background(), &models.ListCustomersRequest{Search: "  bu "})
	require.NoError(t, err)
	assert.Equal(t, "bu", repo.lastFilter.Search)
	require.Len(t, all.Customers, 3)
	assert.Equal(t, 2, all.OverdueCount)
	assert.Equal(t, string(domain.ServiceDue), all.Customers[0].ServiceStatus)
	assert.Equal(t, 120, *all.Customers[0].DaysSince)
	assert.Equal(t, string(domain.ServiceActive), all.Customers[1].ServiceStatus)
	assert.Equal(t, string(domain.ServiceNeverServiced), all.Customers[2].ServiceStatus)
	assert.Nil(t, all.Customers[2].LastServiceDate)

	overdue, err := s.List(context.Background(), &models.ListCustomersRequest{OverdueOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, overdue.Total)
	for _, c := range overdue.Customers {
		assert.NotEqual(t, "D55AB", c.PlateNumber)
	}
}

func TestService_List_RepositoryError(t *testing.T) {
	s := newService(&fakeRepo{err: errors.New("db down")})

	_, err := s.List(context.Background(), &models.ListCustomersRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ReminderLink(t *testing.T) {
	repo := &fakeRepo{customers: sampleCustomers()}
	s := newService(repo)

	resp, err := s.ReminderLink(context.Background(), " b1234xyz ")
	require.NoError(t, err)
	assert.Equal(t, "B1234XYZ", repo.lastFilter.PlateNumber)
	assert.True(t, strings.HasPrefix(resp.Link, "https://wa.me/628123456789?text="))
	assert.Contains(t, resp.Message, "Bengkel Maju")
	assert.Contains(t, resp.Message, "120 hari")

	_, err = s.ReminderLink(context.Background(), "Z1Z")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestService_ReminderLink_InvalidPhone(t *testing.T) {
	repo := &fakeRepo{customers: []*domain.Customer{{Name: "X", Phone: "-", PlateNumber: "B1"}}}
	s := newService(repo)

	_, err := s.ReminderLink(context.Background(), "B1")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
