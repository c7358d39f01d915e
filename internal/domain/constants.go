package domain

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxMechanicNotesLength = 500
	MaxNameLength          = 100
	MaxPlateNumberLength   = 15
	MinPromoCodeLength     = 3
	MaxPromoCodeLength     = 32
	MaxPercentageDiscount  = 100
	MinRating              = 1
	MaxRating              = 5
	MinPasswordLength      = 6
)

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// VehicleTypes список допустимых типов кузова
var VehicleTypes = []VehicleType{
	VehicleSUV,
	VehicleSedan,
	VehicleMPV,
	VehicleHatchback,
}

// BookingStatuses список всех статусов бронирования
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true for known vehicle types
func (v VehicleType) IsValid() bool {
	for _, t := range VehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsValid returns true for known booking statuses
func (s BookingStatus) IsValid() bool {
	for _, st := range BookingStatuses {
		if st == s {
			return true
		}
	}
	return false
}
