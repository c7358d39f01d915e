package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX_WritesHeadersAndRows(t *testing.T) {
	data, err := XLSX(Table{
		Sheet:   "Booking",
		Headers: []string{"Tanggal", "Nama", "Total"},
		Rows: [][]interface{}{
			{"2026-07-01", "Budi", 90000.0},
			{"2026-07-02", "Sari", 0},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Booking"}, f.GetSheetList())

	rows, err := f.GetRows("Booking")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Tanggal", "Nama", "Total"}, rows[0])
	assert.Equal(t, "Budi", rows[1][1])
	assert.Equal(t, "90000", rows[1][2])
}

func TestXLSX_MultipleSheets(t *testing.T) {
	data, err := XLSX(
		Table{Sheet: "Laporan", Headers: []string{"Nama"}, Rows: [][]interface{}{{"Busi"}}},
		Table{Sheet: "Ringkasan", Headers: []string{"Total"}, Rows: [][]interface{}{{1}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Laporan", "Ringkasan"}, f.GetSheetList())
}
