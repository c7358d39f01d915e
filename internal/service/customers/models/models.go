package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// ListCustomersRequest фильтр списка клиентов
type ListCustomersRequest struct {
	Search      string
	OverdueOnly bool
}

// CustomerResponse клиент с состоянием обслуживания
type CustomerResponse struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	PlateNumber     string  `json:"plateNumber"`
	VehicleType     string  `json:"vehicleType"`
	LastServiceDate *string `json:"lastServiceDate"`
	LastServiceType string  `json:"lastServiceType,omitempty"`
	BookingsCount   int     `json:"bookingsCount"`
	ServiceStatus   string  `json:"serviceStatus"`
	DaysSince       *int    `json:"daysSinceService,omitempty"`
}

// CustomerListResponse список клиентов
type CustomerListResponse struct {
	Customers    []CustomerResponse `json:"customers"`
	Total        int                `json:"total"`
	OverdueCount int                `json:"overdueCount"`
}

// ReminderResponse ссылка на напоминание в WhatsApp
type ReminderResponse struct {
	PlateNumber string `json:"plateNumber"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	Link        string `json:"link"`
}

// FromDomainCustomer конвертирует клиента относительно текущего времени
func FromDomainCustomer(c *domain.Customer, now time.Time) CustomerResponse {
	resp := CustomerResponse{
		Name:            c.Name,
		Phone:           c.Phone,
		PlateNumber:     c.PlateNumber,
		VehicleType:     string(c.VehicleType),
		LastServiceType: c.LastServiceType,
		BookingsCount:   c.BookingsCount,
		ServiceStatus:   string(c.ServiceStatus(now)),
	}
	if c.LastServiceDate != nil {
		date := c.LastServiceDate.Format(domain.DateFormat)
		days := int(now.Sub(*c.LastServiceDate).Hours() / 24)
		resp.LastServiceDate = &date
		resp.DaysSince = &days
	}
	return resp
}
