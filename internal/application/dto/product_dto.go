package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=255"`
	SKUCode string          `json:"sku_code" validate:"required,min=1,max=100"`
	Price   decimal.Decimal `json:"price"`
	Stocks  int             `json:"stocks" validate:"min=0"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name    *string          `json:"name"`
	SKUCode *string          `json:"sku_code"`
	Price   *decimal.Decimal `json:"price"`
	Stocks  *int             `json:"stocks"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKUCode   string          `json:"sku_code"`
	Price     decimal.Decimal `json:"price"`
	Stocks    int             `json:"stocks"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
