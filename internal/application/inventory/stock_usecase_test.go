package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// fakeStockRepo entrega on-hand y movimientos pendientes como lo hace el JOIN de postgres.
type fakeStockRepo struct{ s *fakeStore }

func (r fakeStockRepo) ListProductStocks(context.Context) ([]*entity.ProductStock, error) {
	var out []*entity.ProductStock
	for id := int64(1); id <= int64(len(r.s.products)); id++ {
		p := r.s.products[id]
		ps := &entity.ProductStock{ID: p.ID, Name: p.Name, SKUCode: p.SKUCode, Price: p.Price, OnHand: p.Stocks}
		for _, l := range r.s.sorted() {
			if l.ProductID == id && l.Status.Pending() {
				ps.Pending = append(ps.Pending, l)
			}
		}
		out = append(out, ps)
	}
	return out, nil
}

func TestGetProductStocks(t *testing.T) {
	s := newFakeStore(
		&entity.Product{ID: 1, Name: "Tornillo", SKUCode: "TOR-1", Price: decimal.RequireFromString("2.5"), Stocks: 100},
		&entity.Product{ID: 2, Name: "Tuerca", SKUCode: "TUE-1", Stocks: 40},
	)
	s.logs[1] = &entity.ProductLog{ID: 1, ProductID: 1, Quantity: 10, Status: entity.StatusDraft}
	s.logs[2] = &entity.ProductLog{ID: 2, ProductID: 1, Quantity: 5, Status: entity.StatusReady}
	s.logs[3] = &entity.ProductLog{ID: 3, ProductID: 1, Quantity: 20, Status: entity.StatusDone}

	out, err := inventory.NewStockUseCase(fakeStockRepo{s}).GetProductStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, 100, out[0].OnHand)
	assert.Equal(t, 85, out[0].FreeToUse)
	assert.Equal(t, "TOR-1", out[0].SKUCode)

	assert.Equal(t, 40, out[1].OnHand)
	assert.Equal(t, 40, out[1].FreeToUse)
}

type stubStockRepo []*entity.ProductStock

func (r stubStockRepo) ListProductStocks(context.Context) ([]*entity.ProductStock, error) { return r, nil }

func TestGetProductStocks_SubtractsPendingIncludingNegativeQuantities(t *testing.T) {
	repo := stubStockRepo{{
		ID: 9, OnHand: 10,
		Pending: []*entity.ProductLog{
			{ID: 1, Quantity: 4, Status: entity.StatusWaiting},
			{ID: 2, Quantity: -3, Status: entity.StatusDraft},
		},
	}}
	out, err := inventory.NewStockUseCase(repo).GetProductStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].OnHand)
	assert.Equal(t, 9, out[0].FreeToUse)
}
