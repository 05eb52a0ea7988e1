package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// LogClass clasificación derivada por subcadenas de reference_id/from/to.
type LogClass string

const (
	ClassAny        LogClass = ""
	ClassReceipt    LogClass = "receipt"
	ClassDelivery   LogClass = "delivery"
	ClassAdjustment LogClass = "adjustment"
)

// ProductLogFilter criterios opcionales; los vacíos no filtran. El orden siempre es por id.
type ProductLogFilter struct {
	Class       LogClass
	ReferenceID string
	ProductID   *int64
	Status      *entity.LogStatus
}

// ProductLogPatch actualización parcial: solo se escriben los campos no nil.
type ProductLogPatch struct {
	ReferenceID *string
	ScheduleAt  *time.Time
	From        *string
	To          *string
	ProductID   *int64
	Quantity    *int
	Status      *entity.LogStatus
	Responsible *string
}

// Empty indica que no hay nada que actualizar.
func (p ProductLogPatch) Empty() bool {
	return p.ReferenceID == nil && p.ScheduleAt == nil && p.From == nil && p.To == nil &&
		p.ProductID == nil && p.Quantity == nil && p.Status == nil && p.Responsible == nil
}

// ProductLogRepository puerto del libro de movimientos (product_logs).
type ProductLogRepository interface {
	// NextID reserva el siguiente id de la secuencia de product_logs.
	NextID(ctx context.Context) (int64, error)
	// Insert persiste la línea. Si l.ID != 0 se usa ese id; si no, lo genera la BD y se asigna en l.
	Insert(ctx context.Context, l *entity.ProductLog) error
	GetByID(ctx context.Context, id int64) (*entity.ProductLog, error)
	List(ctx context.Context, f ProductLogFilter) ([]*entity.ProductLog, error)
	ListWithProductName(ctx context.Context, f ProductLogFilter) ([]*entity.ProductLogWithName, error)
	// ListByReferenceForUpdate bloquea las filas del lote (SELECT ... FOR UPDATE), ordenadas por id.
	ListByReferenceForUpdate(ctx context.Context, referenceID string) ([]*entity.ProductLog, error)
	UpdateStatusByReference(ctx context.Context, referenceID string, status entity.LogStatus) (int64, error)
	// Update aplica el patch y retorna la fila resultante; (nil, nil) si el id no existe.
	Update(ctx context.Context, id int64, patch ProductLogPatch) (*entity.ProductLog, error)
	Delete(ctx context.Context, id int64) error
	// CountReady cuenta referencias distintas en Ready de la clase dada; late son las de schedule_at < today.
	CountReady(ctx context.Context, class LogClass, today time.Time) (total, late int, err error)
}
