package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// VehicleType represents the vehicle body type chosen in the booking form
type VehicleType string

const (
	VehicleSUV       VehicleType = "SUV"
	VehicleSedan     VehicleType = "Sedan"
	VehicleMPV       VehicleType = "MPV"
	VehicleHatchback VehicleType = "Hatchback"
)

// Booking represents a customer's service request with a price snapshot
type Booking struct {
	ID           int64
	CustomerName string
	PlateNumber  string
	Phone        string
	VehicleType  VehicleType
	BookingDate  time.Time
	Notes        *string
	CheckOnly    bool
	Status       BookingStatus

	MechanicID    *int64
	MechanicName  *string // filled by queries joined with users
	MechanicNotes *string

	// Price snapshot computed by pricing.Draft at creation time
	PromoCode *string
	Subtotal  float64
	Discount  float64
	Total     float64

	Items []BookingItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem is a selected service option, denormalized for history
type BookingItem struct {
	ID          int64
	BookingID   int64
	ServiceID   int64
	ServiceName string
	OptionID    int64
	OptionName  string
	Price       float64
}

// IsActive returns true if the booking is not cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCompleted returns true if the service work is done
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CanTransitionTo reports whether the status change is allowed
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsAssignedTo returns true if the booking is assigned to the given mechanic
func (b *Booking) IsAssignedTo(userID int64) bool {
	return b.MechanicID != nil && *b.MechanicID == userID
}

// ServiceNames returns distinct service names of the booking items in order
func (b *Booking) ServiceNames() []string {
	seen := make(map[int64]struct{}, len(b.Items))
	names := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		if _, ok := seen[item.ServiceID]; ok {
			continue
		}
		seen[item.ServiceID] = struct{}{}
		names = append(names, item.ServiceName)
	}
	return names
}

var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	Date       *time.Time     // Конкретная дата бронирования
	Status     *BookingStatus // Статус (опционально)
	MechanicID *int64         // Назначенный механик (опционально)
	Search     string         // Поиск по номеру, имени клиента или названию услуги
	Limit      uint64         // 0 = без ограничения
	Offset     uint64
}

// BookingStats сводка для дашборда администратора
type BookingStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
	Revenue    float64 // сумма Total по завершенным бронированиям
}
