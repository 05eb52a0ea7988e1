package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID/GetBySKU retornan (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// StockRepository stock físico por producto y los movimientos que lo comprometen.
type StockRepository interface {
	// ListProductStocks recorre todo el catálogo ordenado por id ascendente.
	// Pending trae solo movimientos en entity.PendingStatuses.
	ListProductStocks(ctx context.Context) ([]*entity.ProductStock, error)
}
