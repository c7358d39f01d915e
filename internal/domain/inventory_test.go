package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		stock int
		want  StockStatus
	}{
		{-3, StockOutOfStock},
		{0, StockOutOfStock},
		{1, StockLow},
		{5, StockLow},
		{6, StockWarning},
		{10, StockWarning},
		{11, StockHealthy},
		{500, StockHealthy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStock(tt.stock), "stock=%d", tt.stock)
	}
}

func TestStockMovement_Delta(t *testing.T) {
	in := StockMovement{Direction: MovementIn, Quantity: 4}
	out := StockMovement{Direction: MovementOut, Quantity: 4}

	assert.Equal(t, 4, in.Delta())
	assert.Equal(t, -4, out.Delta())
}

func TestSparepart_IsLowForReport(t *testing.T) {
	assert.True(t, (&Sparepart{Stock: 9}).IsLowForReport())
	assert.False(t, (&Sparepart{Stock: 10}).IsLowForReport())
}
