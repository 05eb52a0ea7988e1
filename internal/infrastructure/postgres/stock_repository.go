package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock físico de products con sus movimientos pendientes de product_logs.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// productStockRow una fila por movimiento pendiente; sin movimientos llega una sola fila con pl.* en NULL.
type productStockRow struct {
	ID       int64           `db:"id"`
	Name     string          `db:"name"`
	SKUCode  string          `db:"sku_code"`
	Price    decimal.Decimal `db:"price"`
	OnHand   int             `db:"on_hand"`
	LogID    *int64          `db:"log_id"`
	Quantity *int            `db:"quantity"`
	Status   *string         `db:"status"`
}

func pendingStatusValues() []string {
	out := make([]string, 0, len(entity.PendingStatuses))
	for _, s := range entity.PendingStatuses {
		out = append(out, string(s))
	}
	return out
}

// productStocksQuery el filtro de estado va en el JOIN para conservar los productos sin movimientos pendientes.
func productStocksQuery() squirrel.SelectBuilder {
	return psql.Select(
		"p.id", "p.name", "p.sku_code", "p.price", "p.stocks AS on_hand",
		"pl.id AS log_id", "pl.quantity", "pl.status",
	).
		From("products p").
		LeftJoin("product_logs pl ON pl.product_id = p.id AND pl.status = ANY(?)", pendingStatusValues()).
		OrderBy("p.id", "pl.id")
}

// groupProductStocks agrupa las filas ordenadas por producto.
func groupProductStocks(rows []productStockRow) []*entity.ProductStock {
	out := make([]*entity.ProductStock, 0, len(rows))
	var cur *entity.ProductStock
	for _, row := range rows {
		if cur == nil || cur.ID != row.ID {
			cur = &entity.ProductStock{
				ID:      row.ID,
				Name:    row.Name,
				SKUCode: row.SKUCode,
				Price:   row.Price,
				OnHand:  row.OnHand,
			}
			out = append(out, cur)
		}
		if row.LogID == nil {
			continue
		}
		l := &entity.ProductLog{ID: *row.LogID, ProductID: row.ID}
		if row.Quantity != nil {
			l.Quantity = *row.Quantity
		}
		if row.Status != nil {
			l.Status = entity.LogStatus(*row.Status)
		}
		cur.Pending = append(cur.Pending, l)
	}
	return out
}

// ListProductStocks on-hand y movimientos pendientes de todo el catálogo.
func (r *StockRepo) ListProductStocks(ctx context.Context) ([]*entity.ProductStock, error) {
	sql, args, err := productStocksQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productStockRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list product stocks: %w", err)
	}
	return groupProductStocks(rows), nil
}
