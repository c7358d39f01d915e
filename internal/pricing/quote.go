package pricing

// Line выбранная опция услуги с ценой
type Line struct {
	ServiceID   int64
	ServiceName string
	OptionID    int64
	OptionName  string
	Price       float64
}

// Quote результат расчета черновика
type Quote struct {
	Lines     []Line
	Subtotal  float64
	Discount  float64
	Total     float64
	PromoCode *string
	CheckOnly bool
}
