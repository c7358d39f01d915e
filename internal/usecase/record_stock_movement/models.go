package record_stock_movement

import "github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"

// Request приход или расход запчасти
type Request struct {
	SparepartID int64  `json:"sparepartId"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date,omitempty"` // "2026-05-01", по умолчанию сегодня
	Note        string `json:"note"`

	Direction string `json:"-"` // задается маршрутом: in или out
	UserID    int64  `json:"-"` // сотрудник из сессии
}

// Response запись журнала и новый остаток
type Response struct {
	Movement     *models.MovementResponse `json:"movement"`
	CurrentStock int                      `json:"currentStock"`
	StockStatus  string                   `json:"stockStatus"`
}
