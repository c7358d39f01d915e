package quote_booking

import "github.com/m04kA/SMC-WorkshopService/internal/pricing"

// Request выбор клиента в форме бронирования
type Request struct {
	ServiceIDs []int64 `json:"serviceIds"`
	OptionIDs  []int64 `json:"optionIds"`
	PromoCode  *string `json:"promoCode,omitempty"`
	CheckOnly  bool    `json:"checkOnly"`
}

// LineResponse строка расчета
type LineResponse struct {
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	OptionID    int64   `json:"optionId"`
	OptionName  string  `json:"optionName"`
	Price       float64 `json:"price"`
}

// Response расчет стоимости
type Response struct {
	Lines     []LineResponse `json:"lines"`
	Subtotal  float64        `json:"subtotal"`
	Discount  float64        `json:"discount"`
	Total     float64        `json:"total"`
	PromoCode *string        `json:"promoCode,omitempty"`
	CheckOnly bool           `json:"checkOnly"`
}

// FromQuote конвертирует расчет черновика в ответ
func FromQuote(q pricing.Quote) *Response {
	resp := &Response{
		Lines:     make([]LineResponse, 0, len(q.Lines)),
		Subtotal:  q.Subtotal,
		Discount:  q.Discount,
		Total:     q.Total,
		PromoCode: q.PromoCode,
		CheckOnly: q.CheckOnly,
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			ServiceID:   l.ServiceID,
			ServiceName: l.ServiceName,
			OptionID:    l.OptionID,
			OptionName:  l.OptionName,
			Price:       l.Price,
		})
	}
	return resp
}
