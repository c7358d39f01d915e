package pricing

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Draft is a booking form session: selected services, selected options,
// an applied promo and the check-only flag.
//
// Amounts are never cached: Subtotal, Discount and Total are recomputed
// from the current selection on every call.
type Draft struct {
	services  []domain.Service
	optionIDs []int64
	promo     *domain.Promo
	checkOnly bool
}

// NewDraft создает пустой черновик
func NewDraft() *Draft {
	return &Draft{}
}

// AddService добавляет услугу в выбор. Повторное добавление игнорируется
func (d *Draft) AddService(service domain.Service) bool {
	if d.hasService(service.ID) {
		return false
	}
	d.services = append(d.services, service)
	return true
}

// RemoveService убирает услугу и все её выбранные опции
func (d *Draft) RemoveService(serviceID int64) {
	idx := -1
	for i := range d.services {
		if d.services[i].ID == serviceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	removed := d.services[idx]
	d.services = append(d.services[:idx:idx], d.services[idx+1:]...)

	kept := d.optionIDs[:0:0]
	for _, id := range d.optionIDs {
		if removed.HasOption(id) {
			continue
		}
		kept = append(kept, id)
	}
	d.optionIDs = kept
}

// SelectOption добавляет опцию в выбор. Повторный выбор игнорируется
func (d *Draft) SelectOption(optionID int64) {
	for _, id := range d.optionIDs {
		if id == optionID {
			return
		}
	}
	d.optionIDs = append(d.optionIDs, optionID)
}

// DeselectOption убирает опцию из выбора
func (d *Draft) DeselectOption(optionID int64) {
	for i, id := range d.optionIDs {
		if id == optionID {
			d.optionIDs = append(d.optionIDs[:i:i], d.optionIDs[i+1:]...)
			return
		}
	}
}

// SetCheckOnly включает режим "только проверка" (все суммы равны 0)
func (d *Draft) SetCheckOnly(checkOnly bool) {
	d.checkOnly = checkOnly
}

// CheckOnly возвращает режим "только проверка"
func (d *Draft) CheckOnly() bool {
	return d.checkOnly
}

// ApplyPromo ищет промокод в каталоге и применяет его.
// При отказе ранее примененный промокод не меняется.
func (d *Draft) ApplyPromo(code string, catalog []domain.Promo, today time.Time) error {
	normalized := domain.NormalizePromoCode(code)

	var found *domain.Promo
	for i := range catalog {
		if catalog[i].Code == normalized {
			found = &catalog[i]
			break
		}
	}
	if found == nil {
		return ErrPromoNotFound
	}

	if found.IsExpired(today) {
		return ErrPromoExpired
	}
	if found.IsNotStarted(today) {
		return ErrPromoNotStarted
	}
	if !found.AppliesToAny(d.ServiceIDs()) {
		return ErrPromoNotApplicable
	}

	applied := *found
	d.promo = &applied
	return nil
}

// ClearPromo снимает промокод
func (d *Draft) ClearPromo() {
	d.promo = nil
}

// AppliedPromo возвращает примененный промокод или nil
func (d *Draft) AppliedPromo() *domain.Promo {
	return d.promo
}

// ServiceIDs возвращает ID выбранных услуг в порядке выбора
func (d *Draft) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(d.services))
	for _, s := range d.services {
		ids = append(ids, s.ID)
	}
	return ids
}

// SelectedOptionIDs возвращает копию выбранных ID опций
func (d *Draft) SelectedOptionIDs() []int64 {
	return append([]int64(nil), d.optionIDs...)
}

// Lines возвращает найденные выбранные опции. Устаревшие ID пропускаются
func (d *Draft) Lines() []Line {
	lines := make([]Line, 0, len(d.optionIDs))
	for _, optionID := range d.optionIDs {
		service, option, ok := d.lookup(optionID)
		if !ok {
			continue
		}
		lines = append(lines, Line{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			OptionID:    option.ID,
			OptionName:  option.Name,
			Price:       option.Price,
		})
	}
	return lines
}

// Subtotal сумма цен выбранных опций
func (d *Draft) Subtotal() float64 {
	if d.checkOnly {
		return 0
	}

	var subtotal float64
	for _, optionID := range d.optionIDs {
		if _, option, ok := d.lookup(optionID); ok {
			subtotal += option.Price
		}
	}
	return subtotal
}

// Discount скидка по примененному промокоду
func (d *Draft) Discount() float64 {
	if d.checkOnly || d.promo == nil {
		return 0
	}
	return discountFor(d.promo, d.Subtotal())
}

// Total итоговая сумма, никогда не отрицательная
func (d *Draft) Total() float64 {
	total := d.Subtotal() - d.Discount()
	if total < 0 {
		return 0
	}
	return total
}

// Quote снимок расчета для ответа API и сохранения бронирования
func (d *Draft) Quote() Quote {
	q := Quote{
		Lines:     d.Lines(),
		Subtotal:  d.Subtotal(),
		Discount:  d.Discount(),
		Total:     d.Total(),
		CheckOnly: d.checkOnly,
	}
	if d.promo != nil {
		code := d.promo.Code
		q.PromoCode = &code
	}
	return q
}

func (d *Draft) hasService(serviceID int64) bool {
	for _, s := range d.services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

func (d *Draft) lookup(optionID int64) (domain.Service, domain.ServiceOption, bool) {
	for _, service := range d.services {
		if option, ok := service.FindOption(optionID); ok {
			return service, option, true
		}
	}
	return domain.Service{}, domain.ServiceOption{}, false
}

func discountFor(promo *domain.Promo, subtotal float64) float64 {
	switch promo.DiscountType {
	case domain.DiscountFixed:
		if promo.Value > subtotal {
			return subtotal
		}
		return promo.Value
	case domain.DiscountPercentage:
		return subtotal * promo.Value / 100
	default:
		return 0
	}
}
