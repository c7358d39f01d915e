package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-WorkshopService/internal/service/customers/models"
)

// Service сервис клиентов мастерской
type Service struct {
	repo         CustomerRepository
	links        LinkBuilder
	timeProvider TimeProvider
	workshopName string
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(repo CustomerRepository, links LinkBuilder, timeProvider TimeProvider, workshopName string, logger Logger) *Service {
	return &Service{
		repo:         repo,
		links:        links,
		timeProvider: timeProvider,
		workshopName: workshopName,
		logger:       logger,
	}
}

// List возвращает клиентов; overdueOnly оставляет тех, кому пора на обслуживание
func (s *Service) List(ctx context.Context, req *models.ListCustomersRequest) (*models.CustomerListResponse, error) {
	customers, err := s.repo.ListCustomers(ctx, domain.CustomersFilter{
		Search:      strings.TrimSpace(req.Search),
		OverdueOnly: req.OverdueOnly,
	})
	if err != nil {
		s.logger.Error("ListCustomers: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.CustomerListResponse{Customers: make([]models.CustomerResponse, 0, len(customers))}
	for _, c := range customers {
		overdue := c.IsServiceOverdue(now)
		if overdue {
			resp.OverdueCount++
		}
		if req.OverdueOnly && !overdue {
			continue
		}
		resp.Customers = append(resp.Customers, models.FromDomainCustomer(c, now))
	}
	resp.Total = len(resp.Customers)

	s.logger.Info("ListCustomers: %d customers (%d overdue)", resp.Total, resp.OverdueCount)
	return resp, nil
}

// ReminderLink строит wa.me ссылку с напоминанием для клиента по госномеру
func (s *Service) ReminderLink(ctx context.Context, plateNumber string) (*models.ReminderResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(plateNumber))
	if plate == "" {
		return nil, ErrCustomerNotFound
	}

	customers, err := s.repo.ListCustomers(ctx, domain.CustomersFilter{PlateNumber: plate})
	if err != nil {
		s.logger.Error("ReminderLink: repository error for plate=%s: %v", plate, err)
		return nil, fmt.Errorf("%w: ReminderLink - repository error: %v", ErrInternal, err)
	}
	if len(customers) == 0 {
		s.logger.Warn("ReminderLink: customer with plate=%s not found", plate)
		return nil, ErrCustomerNotFound
	}

	customer := customers[0]
	message := whatsapp.ReminderText(customer, s.workshopName, s.timeProvider.Now())
	link, err := s.links.Link(customer.Phone, message)
	if err != nil {
		s.logger.Warn("ReminderLink: bad phone for plate=%s: %v", plate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	return &models.ReminderResponse{
		PlateNumber: customer.PlateNumber,
		Phone:       customer.Phone,
		Message:     message,
		Link:        link,
	}, nil
}
