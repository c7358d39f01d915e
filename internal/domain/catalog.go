package domain

import "time"

// Service is a catalog entry a customer can select during booking
type Service struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	Category        string
	Options         []ServiceOption
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceOption is a priced part or labor line of a service
type ServiceOption struct {
	ID        int64
	ServiceID int64
	Name      string
	Price     float64
}

// FindOption returns the option with the given id, if the service has it
func (s *Service) FindOption(optionID int64) (ServiceOption, bool) {
	for _, opt := range s.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return ServiceOption{}, false
}

// HasOption returns true if the option belongs to the service
func (s *Service) HasOption(optionID int64) bool {
	_, ok := s.FindOption(optionID)
	return ok
}
