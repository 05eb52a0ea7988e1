package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ProductLogRepository = (*ProductLogRepo)(nil)

const productLogsTable = "product_logs"

var productLogColumns = []string{
	"id", "reference_id", "schedule_at", `"from"`, `"to"`,
	"product_id", "quantity", "status", "responsible", "created_at", "updated_at",
}

// ProductLogRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type ProductLogRepo struct {
	q Querier
}

// NewProductLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLogRepository(q Querier) *ProductLogRepo {
	return &ProductLogRepo{q: q}
}

type productLogRow struct {
	ID          int64     `db:"id"`
	ReferenceID string    `db:"reference_id"`
	ScheduleAt  time.Time `db:"schedule_at"`
	From        string    `db:"from"`
	To          string    `db:"to"`
	ProductID   int64     `db:"product_id"`
	Quantity    int       `db:"quantity"`
	Status      string    `db:"status"`
	Responsible string    `db:"responsible"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r productLogRow) toEntity() *entity.ProductLog {
	return &entity.ProductLog{
		ID:          r.ID,
		ReferenceID: r.ReferenceID,
		ScheduleAt:  r.ScheduleAt,
		From:        r.From,
		To:          r.To,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		Status:      entity.LogStatus(r.Status),
		Responsible: r.Responsible,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type productLogNameRow struct {
	productLogRow
	ProductName string `db:"product_name"`
}

// NextID reserva el siguiente valor de la secuencia de product_logs.id.
// El valor queda consumido aunque la transacción se revierta.
func (r *ProductLogRepo) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('product_logs', 'id'))`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next product log id: %w", err)
	}
	return id, nil
}

// Insert persiste una línea. Con l.ID != 0 se inserta ese id explícito.
func (r *ProductLogRepo) Insert(ctx context.Context, l *entity.ProductLog) error {
	cols := []string{"reference_id", "schedule_at", `"from"`, `"to"`, "product_id", "quantity", "status", "responsible"}
	vals := []any{l.ReferenceID, l.ScheduleAt, l.From, l.To, l.ProductID, l.Quantity, string(l.Status), l.Responsible}
	if l.ID != 0 {
		cols = append([]string{"id"}, cols...)
		vals = append([]any{l.ID}, vals...)
	}

	sql, args, err := psql.Insert(productLogsTable).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return productLogWriteError("insert product log", l.ProductID, err)
	}
	return nil
}

// GetByID obtiene un movimiento por id; (nil, nil) si no existe.
func (r *ProductLogRepo) GetByID(ctx context.Context, id int64) (*entity.ProductLog, error) {
	sql, args, err := psql.Select(productLogColumns...).
		From(productLogsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row productLogRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product log: %w", err)
	}
	return row.toEntity(), nil
}

// List movimientos filtrados, ordenados por id.
func (r *ProductLogRepo) List(ctx context.Context, f repository.ProductLogFilter) ([]*entity.ProductLog, error) {
	q := applyLogFilter(psql.Select(productLogColumns...).From(productLogsTable), f, "")
	sql, args, err := q.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productLogRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list product logs: %w", err)
	}
	out := make([]*entity.ProductLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// ListWithProductName igual que List pero con el nombre del producto (vacío si no hay match).
func (r *ProductLogRepo) ListWithProductName(ctx context.Context, f repository.ProductLogFilter) ([]*entity.ProductLogWithName, error) {
	cols := make([]string, 0, len(productLogColumns)+1)
	for _, c := range productLogColumns {
		cols = append(cols, "pl."+c)
	}
	cols = append(cols, "COALESCE(p.name, '') AS product_name")

	q := psql.Select(cols...).
		From(productLogsTable + " pl").
		LeftJoin("products p ON p.id = pl.product_id")
	sql, args, err := applyLogFilter(q, f, "pl.").OrderBy("pl.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productLogNameRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list product logs with name: %w", err)
	}
	out := make([]*entity.ProductLogWithName, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.ProductLogWithName{ProductLog: *row.toEntity(), ProductName: row.ProductName})
	}
	return out, nil
}

// lockReferenceQuery toma las filas del lote con FOR UPDATE, en orden de id para que dos transacciones
// sobre el mismo lote bloqueen en el mismo orden y la segunda espere a la primera.
func lockReferenceQuery(referenceID string) squirrel.SelectBuilder {
	return psql.Select(productLogColumns...).
		From(productLogsTable).
		Where(squirrel.Eq{"reference_id": referenceID}).
		OrderBy("id").
		Suffix("FOR UPDATE")
}

// ListByReferenceForUpdate bloquea todas las filas del lote hasta el fin de la transacción.
func (r *ProductLogRepo) ListByReferenceForUpdate(ctx context.Context, referenceID string) ([]*entity.ProductLog, error) {
	sql, args, err := lockReferenceQuery(referenceID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productLogRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("lock product logs: %w", err)
	}
	out := make([]*entity.ProductLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// UpdateStatusByReference cambia el estado de todo el lote en un único UPDATE.
func (r *ProductLogRepo) UpdateStatusByReference(ctx context.Context, referenceID string, status entity.LogStatus) (int64, error) {
	sql, args, err := psql.Update(productLogsTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference_id": referenceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("update product log status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Update aplica solo los campos presentes en el patch.
func (r *ProductLogRepo) Update(ctx context.Context, id int64, p repository.ProductLogPatch) (*entity.ProductLog, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	q := psql.Update(productLogsTable).Set("updated_at", squirrel.Expr("NOW()"))
	if p.ReferenceID != nil {
		q = q.Set("reference_id", *p.ReferenceID)
	}
	if p.ScheduleAt != nil {
		q = q.Set("schedule_at", *p.ScheduleAt)
	}
	if p.From != nil {
		q = q.Set(`"from"`, *p.From)
	}
	if p.To != nil {
		q = q.Set(`"to"`, *p.To)
	}
	if p.ProductID != nil {
		q = q.Set("product_id", *p.ProductID)
	}
	if p.Quantity != nil {
		q = q.Set("quantity", *p.Quantity)
	}
	if p.Status != nil {
		q = q.Set("status", string(*p.Status))
	}
	if p.Responsible != nil {
		q = q.Set("responsible", *p.Responsible)
	}

	sql, args, err := q.Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(productLogColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row productLogRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		var productID int64
		if p.ProductID != nil {
			productID = *p.ProductID
		}
		return nil, productLogWriteError("update product log", productID, err)
	}
	return row.toEntity(), nil
}

// Delete elimina un movimiento individual.
func (r *ProductLogRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// countReadyQuery total y atrasados sobre referencias distintas. schedule_at es TIMESTAMP sin zona:
// la comparación es de hora de pared contra today.
func countReadyQuery(class repository.LogClass, today time.Time) squirrel.SelectBuilder {
	q := psql.Select("COUNT(DISTINCT reference_id)").
		Column(squirrel.Expr("COUNT(DISTINCT reference_id) FILTER (WHERE schedule_at < ?)", today)).
		From(productLogsTable).
		Where(squirrel.Eq{"status": string(entity.StatusReady)})
	return applyLogFilter(q, repository.ProductLogFilter{Class: class}, "")
}

// CountReady cuenta lotes (referencias distintas) en Ready de la clase indicada.
func (r *ProductLogRepo) CountReady(ctx context.Context, class repository.LogClass, today time.Time) (int, int, error) {
	sql, args, err := countReadyQuery(class, today).ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build query: %w", err)
	}
	var total, late int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&total, &late); err != nil {
		return 0, 0, fmt.Errorf("count ready product logs: %w", err)
	}
	return total, late, nil
}

// applyLogFilter traduce el filtro a predicados. Las clases replican inventory.IsReceipt/IsDelivery/IsAdjustment.
func applyLogFilter(q squirrel.SelectBuilder, f repository.ProductLogFilter, prefix string) squirrel.SelectBuilder {
	ref, from, to := prefix+"reference_id", prefix+`"from"`, prefix+`"to"`

	switch f.Class {
	case repository.ClassReceipt:
		q = q.Where(squirrel.Like{ref: "%/IN/%"}).Where(squirrel.NotLike{to: "%/IN/%"})
	case repository.ClassDelivery:
		q = q.Where(squirrel.Like{ref: "%/OUT/%"}).Where(squirrel.NotLike{to: "%/IN/%"})
	case repository.ClassAdjustment:
		q = q.Where(squirrel.Like{ref: "%/IN/%"}).
			Where(squirrel.Like{from: "%/IN/%"}).
			Where(squirrel.Like{to: "%/OUT/%"})
	}
	if f.ReferenceID != "" {
		q = q.Where(squirrel.Eq{ref: f.ReferenceID})
	}
	if f.ProductID != nil {
		q = q.Where(squirrel.Eq{prefix + "product_id": *f.ProductID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{prefix + "status": string(*f.Status)})
	}
	return q
}

func productLogWriteError(op string, productID int64, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return &domain.ProductNotFoundError{ProductID: productID}
	case isCheckViolation(err):
		return domain.NewValidationError("status", "estado inválido")
	}
	return fmt.Errorf("%s: %w", op, err)
}
