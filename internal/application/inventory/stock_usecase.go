package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StockUseCase vista de stock libre por producto.
type StockUseCase struct {
	stockRepo repository.StockRepository
}

func NewStockUseCase(stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// GetProductStocks on-hand y free-to-use de todo el catálogo, ordenado por id.
func (uc *StockUseCase) GetProductStocks(ctx context.Context) ([]dto.ProductStockResponse, error) {
	list, err := uc.stockRepo.ListProductStocks(ctx)
	if err != nil {
		return nil, fail("get product stocks", err)
	}
	out := make([]dto.ProductStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ProductStockResponse{
			ID:        s.ID,
			Name:      s.Name,
			SKUCode:   s.SKUCode,
			Price:     s.Price,
			OnHand:    s.OnHand,
			FreeToUse: inventory.FreeToUse(s.OnHand, s.Pending),
		})
	}
	return out, nil
}
