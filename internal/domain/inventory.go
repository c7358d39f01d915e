package domain

import "time"

// StockStatus is a display band of a sparepart stock level
type StockStatus string

const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low"
	StockWarning    StockStatus = "warning"
	StockHealthy    StockStatus = "healthy"
)

// Stock band upper bounds (inclusive)
const (
	StockLowThreshold     = 5
	StockWarningThreshold = 10
)

// ClassifyStock maps a stock quantity to its display band
func ClassifyStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockOutOfStock
	case stock <= StockLowThreshold:
		return StockLow
	case stock <= StockWarningThreshold:
		return StockWarning
	default:
		return StockHealthy
	}
}

// IsValid returns true for known stock bands
func (s StockStatus) IsValid() bool {
	switch s {
	case StockOutOfStock, StockLow, StockWarning, StockHealthy:
		return true
	}
	return false
}

// Sparepart is an inventory item
type Sparepart struct {
	ID        int64
	Name      string
	Code      string
	Price     float64
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockStatus returns the display band of the current stock
func (s *Sparepart) StockStatus() StockStatus {
	return ClassifyStock(s.Stock)
}

// IsLowForReport mirrors the warehouse report flag (stock below the warning bound)
func (s *Sparepart) IsLowForReport() bool {
	return s.Stock < StockWarningThreshold
}

// SparepartsFilter фильтр списка запчастей
type SparepartsFilter struct {
	Search string       // по названию или коду
	Status *StockStatus // фильтр по полосе остатка
	Limit  uint64
	Offset uint64
}

// MovementDirection is the direction of a stock movement
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// IsValid returns true for known directions
func (d MovementDirection) IsValid() bool {
	return d == MovementIn || d == MovementOut
}

// StockMovement is an entry of the stock ledger (barang masuk / keluar)
type StockMovement struct {
	ID            int64
	SparepartID   int64
	SparepartName string // filled by joined queries
	Direction     MovementDirection
	Quantity      int
	MovementDate  time.Time
	UserID        int64
	UserName      string // filled by joined queries
	Note          string
	CreatedAt     time.Time
}

// Delta returns the signed stock change of the movement
func (m *StockMovement) Delta() int {
	if m.Direction == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// MovementsFilter фильтр журнала движений
type MovementsFilter struct {
	Direction *MovementDirection
	Date      *time.Time
	Search    string // по названию запчасти или имени сотрудника
	From      *time.Time
	To        *time.Time
}

// StockReportRow строка месячного отчета склада
type StockReportRow struct {
	SparepartID int64
	Name        string
	Code        string
	StockIn     int
	StockOut    int
	Remaining   int
	IsLow       bool
}
