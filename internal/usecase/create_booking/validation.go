package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
)

const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// normalizeRequest обрезает пробелы и приводит госномер к верхнему регистру без пробелов
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.PlateNumber = strings.ToUpper(strings.Join(strings.Fields(req.PlateNumber), ""))
	req.Phone = strings.TrimSpace(req.Phone)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}
}

// validateRequest валидирует данные клиента (выбор услуг проверяет расчет черновика)
func validateRequest(req *Request) error {
	if req.CustomerName == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.PlateNumber == "" {
		return fmt.Errorf("%w: plateNumber is required", ErrInvalidInput)
	}
	if len(req.PlateNumber) > domain.MaxPlateNumberLength {
		return fmt.Errorf("%w: plateNumber exceeds %d characters", ErrInvalidInput, domain.MaxPlateNumberLength)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if n := len(whatsapp.NormalizeDigits(req.Phone)); n < minPhoneDigits || n > maxPhoneDigits {
		return fmt.Errorf("%w: phone must contain %d-%d digits", ErrInvalidInput, minPhoneDigits, maxPhoneDigits)
	}

	if !domain.VehicleType(req.VehicleType).IsValid() {
		return fmt.Errorf("%w: unknown vehicleType %q", ErrInvalidInput, req.VehicleType)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// parseBookingDate разбирает дату в часовом поясе мастерской и проверяет, что она не раньше завтрашнего дня
func parseBookingDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bookingDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	tomorrow := domain.DateOnly(now).AddDate(0, 0, 1)
	if date.Before(tomorrow) {
		return time.Time{}, ErrInvalidDate
	}

	return date, nil
}
