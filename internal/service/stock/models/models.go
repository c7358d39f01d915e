package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// ListMovementsRequest фильтр журнала
type ListMovementsRequest struct {
	Direction *string
	Date      *string // "2026-05-01"
	Search    string
}

// MovementResponse запись журнала движений
type MovementResponse struct {
	ID            int64     `json:"id"`
	SparepartID   int64     `json:"sparepartId"`
	SparepartName string    `json:"sparepartName"`
	Direction     string    `json:"direction"`
	Quantity      int       `json:"quantity"`
	MovementDate  string    `json:"movementDate"`
	UserID        int64     `json:"userId"`
	UserName      string    `json:"userName"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MovementListResponse ответ со списком движений
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// ReportRow строка месячного отчета
type ReportRow struct {
	SparepartID int64  `json:"sparepartId"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	StockIn     int    `json:"stockIn"`
	StockOut    int    `json:"stockOut"`
	Remaining   int    `json:"remaining"`
	IsLow       bool   `json:"isLow"`
}

// ReportResponse месячный отчет склада
type ReportResponse struct {
	Month         string      `json:"month"` // "2026-05"
	Rows          []ReportRow `json:"rows"`
	TotalIn       int         `json:"totalIn"`
	TotalOut      int         `json:"totalOut"`
	LowStockCount int         `json:"lowStockCount"`
}

// FromDomainMovement конвертирует domain модель в DTO
func FromDomainMovement(m *domain.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:            m.ID,
		SparepartID:   m.SparepartID,
		SparepartName: m.SparepartName,
		Direction:     string(m.Direction),
		Quantity:      m.Quantity,
		MovementDate:  m.MovementDate.Format(domain.DateFormat),
		UserID:        m.UserID,
		UserName:      m.UserName,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomainMovementList конвертирует список domain моделей в DTO
func FromDomainMovementList(movements []*domain.StockMovement) *MovementListResponse {
	resp := &MovementListResponse{Movements: make([]MovementResponse, 0, len(movements))}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, *FromDomainMovement(m))
	}
	return resp
}

// FromDomainReport собирает отчет и итоги
func FromDomainReport(month time.Time, rows []domain.StockReportRow) *ReportResponse {
	resp := &ReportResponse{
		Month: month.Format(domain.MonthFormat),
		Rows:  make([]ReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, ReportRow(r))
		resp.TotalIn += r.StockIn
		resp.TotalOut += r.StockOut
		if r.IsLow {
			resp.LowStockCount++
		}
	}
	return resp
}
