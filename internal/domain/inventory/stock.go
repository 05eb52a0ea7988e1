package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// FreeToUse stock libre de un producto: on-hand menos lo comprometido por movimientos no terminados,
// sin importar la dirección. Sin movimientos el resultado es exactamente onHand.
func FreeToUse(onHand int, logs []*entity.ProductLog) int {
	free := onHand
	for _, l := range logs {
		if l.Status.Pending() {
			free -= l.Quantity
		}
	}
	return free
}

// LineValue valor de una línea de movimiento a precio de venta.
func LineValue(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
