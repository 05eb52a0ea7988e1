package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required"`
	ShortCode string `json:"short_code" validate:"required"`
	Address   string `json:"address"`
}

// UpdateWarehouseRequest actualización parcial de una bodega.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name"`
	ShortCode *string `json:"short_code"`
	Address   *string `json:"address"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name          string `json:"name" validate:"required"`
	WarehouseCode string `json:"warehouse_code" validate:"required"`
}

// UpdateLocationRequest actualización parcial de una ubicación.
type UpdateLocationRequest struct {
	Name          *string `json:"name"`
	WarehouseCode *string `json:"warehouse_code"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	WarehouseCode string    `json:"warehouse_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
