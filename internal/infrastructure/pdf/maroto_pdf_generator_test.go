package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "$0,00",
		"999":      "$999,00",
		"25000":    "$25.000,00",
		"1234.5":   "$1.234,50",
		"1000000":  "$1.000.000,00",
		"-4200.25": "-$4.200,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderSlip_ProducesPDF(t *testing.T) {
	at := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	slip := inventory.MovementSlip{
		ReferenceID: "WH/IN/0001",
		Kind:        "receipt",
		Status:      "Ready",
		ScheduleAt:  at,
		From:        "Proveedor ACME",
		To:          "WH",
		Responsible: "ana",
		Lines: []inventory.SlipLine{
			{ProductID: 1, SKUCode: "TOR-1", Name: "Tornillo", Quantity: 10, UnitPrice: decimal.RequireFromString("2.5"), Value: decimal.RequireFromString("25")},
			{ProductID: 2, Quantity: 3, UnitPrice: decimal.Zero, Value: decimal.Zero},
		},
		Total:       decimal.RequireFromString("25"),
		GeneratedAt: at,
	}

	out, err := NewMarotoSlipRenderer("stockflow").RenderSlip(slip)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
