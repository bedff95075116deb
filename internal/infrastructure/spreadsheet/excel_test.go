package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	reportapp "github.com/demandcast/backend/internal/application/report"
)

func TestExcelRenderer_RenderRoundTrip(t *testing.T) {
	renderer := NewExcelRenderer()

	table := &reportapp.Table{
		Columns: []string{"Store name", "Product name", "2024-03-02"},
		Rows: [][]any{
			{"Central", "Milk", int64(12)},
			{"East", nil, int64(7)},
		},
	}

	data, err := renderer.Render(table)

	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Store name", "Product name", "2024-03-02"}, rows[0])
	assert.Equal(t, "Central", rows[1][0])
	assert.Equal(t, "Milk", rows[1][1])
	assert.Equal(t, "12", rows[1][2])
	assert.Equal(t, "East", rows[2][0])
}

func TestExcelRenderer_EmptyTable(t *testing.T) {
	renderer := NewExcelRenderer()

	data, err := renderer.Render(&reportapp.Table{Columns: []string{"Store name"}})

	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Store name"}, rows[0])
}
