package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stocks es el stock físico (on-hand); nunca es negativo y los movimientos no lo modifican.
type Product struct {
	ID        int64
	Name      string
	SKUCode   string // único
	Price     decimal.Decimal
	Stocks    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductStock stock físico de un producto junto con sus movimientos pendientes.
// El stock libre se deriva con inventory.FreeToUse.
type ProductStock struct {
	ID      int64
	Name    string
	SKUCode string
	Price   decimal.Decimal
	OnHand  int
	Pending []*ProductLog
}
