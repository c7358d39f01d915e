package pricing

import "errors"

var (
	// ErrPromoNotFound возвращается, когда промокода нет в каталоге
	ErrPromoNotFound = errors.New("pricing: promo code not found")

	// ErrPromoExpired возвращается, когда срок действия промокода истек
	ErrPromoExpired = errors.New("pricing: promo code expired")

	// ErrPromoNotStarted возвращается, когда промокод еще не начал действовать
	ErrPromoNotStarted = errors.New("pricing: promo code is not active yet")

	// ErrPromoNotApplicable возвращается, когда промокод не распространяется на выбранные услуги
	ErrPromoNotApplicable = errors.New("pricing: promo code is not applicable to selected services")
)

// RejectionReason короткая метка причины отказа (для метрик и логов)
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		return "not_found"
	case errors.Is(err, ErrPromoExpired):
		return "expired"
	case errors.Is(err, ErrPromoNotStarted):
		return "not_started"
	case errors.Is(err, ErrPromoNotApplicable):
		return "not_applicable"
	default:
		return "unknown"
	}
}
