package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest una línea de un lote de recepción/entrega.
type MovementLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

// CreateReceiptRequest body para POST /api/product-logs/receipt.
// Cada línea queda con from = From y to = WarehouseShortCode.
type CreateReceiptRequest struct {
	WarehouseShortCode string                `json:"warehouse_short_code" validate:"required"`
	ScheduleAt         string                `json:"schedule_at" validate:"required"`
	From               string                `json:"from" validate:"required"`
	Products           []MovementLineRequest `json:"products" validate:"required,min=1"`
}

// CreateDeliveryRequest body para POST /api/product-logs/delivery.
// Cada línea queda con from = WarehouseShortCode y to = To.
type CreateDeliveryRequest struct {
	WarehouseShortCode string                `json:"warehouse_short_code" validate:"required"`
	ScheduleAt         string                `json:"schedule_at" validate:"required"`
	To                 string                `json:"to" validate:"required"`
	Products           []MovementLineRequest `json:"products" validate:"required,min=1"`
}

// CreateProductLogRequest alta de un movimiento individual (todos los campos obligatorios).
// Quantity admite cero o negativos (ajustes).
type CreateProductLogRequest struct {
	ReferenceID string `json:"reference_id"`
	ScheduleAt  string `json:"schedule_at"`
	From        string `json:"from"`
	To          string `json:"to"`
	ProductID   int64  `json:"product_id"`
	Quantity    *int   `json:"quantity"`
	Status      string `json:"status"`
	Responsible string `json:"responsible"`
}

// UpdateProductLogRequest actualización parcial; los campos ausentes no se tocan.
type UpdateProductLogRequest struct {
	ReferenceID *string `json:"reference_id"`
	ScheduleAt  *string `json:"schedule_at"`
	From        *string `json:"from"`
	To          *string `json:"to"`
	ProductID   *int64  `json:"product_id"`
	Quantity    *int    `json:"quantity"`
	Status      *string `json:"status"`
	Responsible *string `json:"responsible"`
}

// ProductLogResponse salida de un movimiento.
type ProductLogResponse struct {
	ID          int64     `json:"id"`
	ReferenceID string    `json:"reference_id"`
	ScheduleAt  time.Time `json:"schedule_at"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductLogWithNameResponse movimiento con el nombre del producto.
type ProductLogWithNameResponse struct {
	ProductLogResponse
	ProductName string `json:"product_name"`
}

// MovementStatsResponse lotes Ready en curso y cuántos están atrasados.
type MovementStatsResponse struct {
	Total int `json:"total"`
	Late  int `json:"late"`
}

// ProductStockResponse stock físico y libre por producto (GET /api/products/product-stocks).
type ProductStockResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKUCode   string          `json:"sku_code"`
	Price     decimal.Decimal `json:"price"`
	OnHand    int             `json:"on_hand"`
	FreeToUse int             `json:"free_to_use"`
}
