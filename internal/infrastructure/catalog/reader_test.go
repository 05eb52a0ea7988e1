package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/catalog"
)

func TestReadCSV_SemicolonAndLatin1(t *testing.T) {
	// "Cañería" en ISO-8859-1: ñ = 0xF1
	raw := []byte("name;sku_code;price;stocks\nCa\xf1er\xeda;CAN-1;12,50;4\n;;;\nTuerca;TUE-1;;\n")

	rows, err := catalog.ReadCSV(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Cañería", rows[0].Name)
	assert.Equal(t, "CAN-1", rows[0].SKUCode)
	assert.True(t, decimal.RequireFromString("12.5").Equal(rows[0].Price))
	assert.Equal(t, 4, rows[0].Stocks)

	assert.Equal(t, "TUE-1", rows[1].SKUCode)
	assert.True(t, rows[1].Price.IsZero())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := catalog.ReadCSV(strings.NewReader("name,price\nTornillo,1\n"), false)
	assert.ErrorContains(t, err, "sku_code")

	_, err = catalog.ReadCSV(strings.NewReader("sku_code,name,stocks\nA,B,muchos\n"), false)
	assert.ErrorContains(t, err, "fila 2")

	_, err = catalog.ReadCSV(strings.NewReader(""), false)
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"SKU_CODE", "Name", "Price", "Stocks"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"TOR-1", "Tornillo", "2.5", 100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := catalog.ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tornillo", rows[0].Name)
	assert.Equal(t, 100, rows[0].Stocks)
	assert.True(t, decimal.RequireFromString("2.5").Equal(rows[0].Price))
}
