package domain

import "time"

// ServiceStatus is the service-due state of a customer vehicle
type ServiceStatus string

const (
	ServiceNeverServiced ServiceStatus = "never_serviced"
	ServiceDue           ServiceStatus = "service_due"
	ServiceActive        ServiceStatus = "active"
)

// ServiceInterval after which a vehicle is considered due for service
const ServiceInterval = 90 * 24 * time.Hour

// Customer is a vehicle owner aggregated from bookings by plate number
type Customer struct {
	Name            string
	Phone           string
	PlateNumber     string
	VehicleType     VehicleType
	LastServiceDate *time.Time // last completed booking
	LastServiceType string
	BookingsCount   int
}

// ServiceStatus classifies the customer relative to now
func (c *Customer) ServiceStatus(now time.Time) ServiceStatus {
	if c.LastServiceDate == nil {
		return ServiceNeverServiced
	}
	if now.Sub(*c.LastServiceDate) > ServiceInterval {
		return ServiceDue
	}
	return ServiceActive
}

// IsServiceOverdue returns true if the vehicle was never serviced or the interval has passed
func (c *Customer) IsServiceOverdue(now time.Time) bool {
	return c.ServiceStatus(now) != ServiceActive
}

// CustomersFilter фильтр списка клиентов
type CustomersFilter struct {
	Search      string // по имени или номеру
	PlateNumber string // точное совпадение номера
	OverdueOnly bool
}
