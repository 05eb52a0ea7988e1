package entity

import "time"

// Warehouse representa una bodega. ShortCode es único y se usa como prefijo de las referencias
// de movimientos y como extremo from/to.
type Warehouse struct {
	ID        int64
	Name      string
	ShortCode string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location ubicación dentro de una bodega (referencia warehouses.short_code).
type Location struct {
	ID            int64
	Name          string
	WarehouseCode string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
