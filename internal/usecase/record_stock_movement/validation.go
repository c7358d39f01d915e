package record_stock_movement

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

const maxNoteLength = 255

// validateRequest проверяет запрос и возвращает направление и дату движения
func validateRequest(req *Request, now time.Time) (domain.MovementDirection, time.Time, error) {
	direction := domain.MovementDirection(req.Direction)
	if !direction.IsValid() {
		return "", time.Time{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}
	if req.SparepartID <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: sparepartId must be positive", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	req.Note = strings.TrimSpace(req.Note)
	if utf8.RuneCountInString(req.Note) > maxNoteLength {
		return "", time.Time{}, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, maxNoteLength)
	}

	date := domain.DateOnly(now)
	if value := strings.TrimSpace(req.Date); value != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, value, now.Location())
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		if parsed.After(date) {
			return "", time.Time{}, fmt.Errorf("%w: date cannot be in the future", ErrInvalidInput)
		}
		date = parsed
	}

	return direction, date, nil
}
