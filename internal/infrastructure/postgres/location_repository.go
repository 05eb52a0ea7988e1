package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

var locationColumns = []string{"id", "name", "warehouse_code", "created_at", "updated_at"}

// LocationRepo ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

type locationRow struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	WarehouseCode string    `db:"warehouse_code"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r locationRow) toEntity() *entity.Location {
	return &entity.Location{
		ID:            r.ID,
		Name:          r.Name,
		WarehouseCode: r.WarehouseCode,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (name, warehouse_code)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	if err := r.q.QueryRow(ctx, query, l.Name, l.WarehouseCode).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return locationWriteError("insert location", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	sql, args, err := psql.Select(locationColumns...).From("locations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row locationRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return row.toEntity(), nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	return r.list(ctx, psql.Select(locationColumns...).From("locations"))
}

// ListByWarehouse ubicaciones de una bodega por su código corto.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, warehouseCode string) ([]*entity.Location, error) {
	return r.list(ctx, psql.Select(locationColumns...).From("locations").Where(squirrel.Eq{"warehouse_code": warehouseCode}))
}

func (r *LocationRepo) list(ctx context.Context, q squirrel.SelectBuilder) ([]*entity.Location, error) {
	sql, args, err := q.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []locationRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, warehouse_code = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	if err := r.q.QueryRow(ctx, query, l.ID, l.Name, l.WarehouseCode).Scan(&l.UpdatedAt); err != nil {
		if pgxscan.NotFound(err) {
			return domain.ErrNotFound
		}
		return locationWriteError("update location", err)
	}
	return nil
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func locationWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.NewValidationError("warehouse_code", "la bodega no existe")
	}
	return fmt.Errorf("%s: %w", op, err)
}
