package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// MovementUseCase motor de movimientos: creación de lotes agrupados por referencia,
// avance de estado por lote y CRUD de movimientos individuales.
type MovementUseCase struct {
	txRunner    TxRunner
	logRepo     repository.ProductLogRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewMovementUseCase construye el caso de uso. logRepo/productRepo se usan fuera de transacción (lecturas y CRUD simple).
func NewMovementUseCase(
	txRunner TxRunner,
	logRepo repository.ProductLogRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{
		txRunner:    txRunner,
		logRepo:     logRepo,
		productRepo: productRepo,
		log:         log.Component("movements"),
	}
}

// batch lote ya validado listo para persistir.
type batch struct {
	warehouseCode string
	movementType  inventory.MovementType
	scheduleAt    time.Time
	from, to      string
	lines         []dto.MovementLineRequest
	responsible   string
}

// CreateReceipt crea un lote de recepción (tipo IN) hacia la bodega indicada.
func (uc *MovementUseCase) CreateReceipt(ctx context.Context, responsible string, in dto.CreateReceiptRequest) ([]dto.ProductLogResponse, error) {
	code, err := requireText("warehouse_short_code", in.WarehouseShortCode)
	if err != nil {
		return nil, err
	}
	from, err := requireText("from", in.From)
	if err != nil {
		return nil, err
	}
	b, err := newBatch(code, inventory.TypeReceipt, in.ScheduleAt, in.Products, responsible)
	if err != nil {
		return nil, err
	}
	b.from, b.to = from, code
	return uc.createBatch(ctx, b)
}

// CreateDelivery crea un lote de entrega (tipo OUT) desde la bodega indicada.
func (uc *MovementUseCase) CreateDelivery(ctx context.Context, responsible string, in dto.CreateDeliveryRequest) ([]dto.ProductLogResponse, error) {
	code, err := requireText("warehouse_short_code", in.WarehouseShortCode)
	if err != nil {
		return nil, err
	}
	to, err := requireText("to", in.To)
	if err != nil {
		return nil, err
	}
	b, err := newBatch(code, inventory.TypeDelivery, in.ScheduleAt, in.Products, responsible)
	if err != nil {
		return nil, err
	}
	b.from, b.to = code, to
	return uc.createBatch(ctx, b)
}

func newBatch(code string, t inventory.MovementType, scheduleAt string, lines []dto.MovementLineRequest, responsible string) (*batch, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("products", "debe contener al menos una línea")
	}
	for i, line := range lines {
		if line.ProductID <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("products[%d].product_id", i), "es obligatorio")
		}
		if line.Quantity < 1 {
			return nil, domain.NewValidationError(fmt.Sprintf("products[%d].quantity", i), "debe ser mayor o igual a 1")
		}
	}
	at, err := parseSchedule(scheduleAt)
	if err != nil {
		return nil, err
	}
	who, err := requireText("responsible", responsible)
	if err != nil {
		return nil, err
	}
	return &batch{warehouseCode: code, movementType: t, scheduleAt: at, lines: lines, responsible: who}, nil
}

// createBatch persiste todas las líneas con una referencia común dentro de una única transacción.
// El id de la primera línea se reserva de la secuencia antes de insertar, así la referencia se conoce
// desde el primer INSERT y ese id es el menor del lote.
func (uc *MovementUseCase) createBatch(ctx context.Context, b *batch) ([]dto.ProductLogResponse, error) {
	var created []*entity.ProductLog
	err := uc.txRunner.Run(ctx, func(logRepo repository.ProductLogRepository, productRepo repository.ProductRepository) error {
		checked := make(map[int64]bool, len(b.lines))
		for _, line := range b.lines {
			if checked[line.ProductID] {
				continue
			}
			ok, err := productRepo.Exists(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.ProductNotFoundError{ProductID: line.ProductID}
			}
			checked[line.ProductID] = true
		}

		firstID, err := logRepo.NextID(ctx)
		if err != nil {
			return err
		}
		ref := inventory.FormatReference(b.warehouseCode, b.movementType, firstID)

		created = make([]*entity.ProductLog, 0, len(b.lines))
		for i, line := range b.lines {
			l := &entity.ProductLog{
				ReferenceID: ref,
				ScheduleAt:  b.scheduleAt,
				From:        b.from,
				To:          b.to,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				Status:      entity.StatusDraft,
				Responsible: b.responsible,
			}
			if i == 0 {
				l.ID = firstID
			}
			if err := logRepo.Insert(ctx, l); err != nil {
				return err
			}
			created = append(created, l)
		}
		return nil
	})
	if err != nil {
		return nil, fail("create "+b.movementType.Kind(), err)
	}

	uc.log.Info().
		Str("reference_id", created[0].ReferenceID).
		Str("type", b.movementType.Kind()).
		Int("lines", len(created)).
		Str("responsible", b.responsible).
		Msg("lote de movimientos creado")
	return toProductLogResponses(created), nil
}

// AdvanceReceiptStatus avanza el lote de recepción: Draft -> Ready -> Done.
func (uc *MovementUseCase) AdvanceReceiptStatus(ctx context.Context, referenceID string) ([]dto.ProductLogResponse, error) {
	return uc.advance(ctx, inventory.TypeReceipt, referenceID)
}

// AdvanceDeliveryStatus avanza el lote de entrega: Draft -> Waiting -> Ready -> Done.
func (uc *MovementUseCase) AdvanceDeliveryStatus(ctx context.Context, referenceID string) ([]dto.ProductLogResponse, error) {
	return uc.advance(ctx, inventory.TypeDelivery, referenceID)
}

// advance bloquea las filas del lote, toma el estado de la primera (menor id) como estado del grupo
// y actualiza todas al sucesor. Done o un estado sin sucesor falla sin mutar nada.
func (uc *MovementUseCase) advance(ctx context.Context, t inventory.MovementType, referenceID string) ([]dto.ProductLogResponse, error) {
	ref, err := requireText("reference_id", referenceID)
	if err != nil {
		return nil, err
	}

	var (
		updated []*entity.ProductLog
		from    entity.LogStatus
		next    entity.LogStatus
	)
	err = uc.txRunner.Run(ctx, func(logRepo repository.ProductLogRepository, _ repository.ProductRepository) error {
		rows, err := logRepo.ListByReferenceForUpdate(ctx, ref)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("referencia %q: %w", ref, domain.ErrNotFound)
		}
		from = rows[0].Status
		next, err = inventory.NextStatus(t, from)
		if err != nil {
			return err
		}
		if _, err := logRepo.UpdateStatusByReference(ctx, ref, next); err != nil {
			return err
		}
		updated, err = logRepo.List(ctx, repository.ProductLogFilter{ReferenceID: ref})
		return err
	})
	if err != nil {
		return nil, fail("advance "+t.Kind()+" status", err)
	}

	uc.log.Info().
		Str("reference_id", ref).
		Str("from", string(from)).
		Str("to", string(next)).
		Msg("estado de lote avanzado")
	return toProductLogResponses(updated), nil
}

// CreateProductLog alta de un movimiento individual con todos sus campos.
func (uc *MovementUseCase) CreateProductLog(ctx context.Context, in dto.CreateProductLogRequest) (*dto.ProductLogResponse, error) {
	l := &entity.ProductLog{ProductID: in.ProductID, Status: entity.LogStatus(in.Status)}
	var err error
	if l.ReferenceID, err = requireText("reference_id", in.ReferenceID); err != nil {
		return nil, err
	}
	if l.ScheduleAt, err = parseSchedule(in.ScheduleAt); err != nil {
		return nil, err
	}
	if l.From, err = requireText("from", in.From); err != nil {
		return nil, err
	}
	if l.To, err = requireText("to", in.To); err != nil {
		return nil, err
	}
	if l.Responsible, err = requireText("responsible", in.Responsible); err != nil {
		return nil, err
	}
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("product_id", "es obligatorio")
	}
	if in.Quantity == nil {
		return nil, domain.NewValidationError("quantity", "es obligatorio")
	}
	l.Quantity = *in.Quantity
	if !l.Status.Valid() {
		return nil, domain.NewValidationError("status", "debe ser Draft, Waiting, Ready o Done")
	}
	if err := uc.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	if err := uc.logRepo.Insert(ctx, l); err != nil {
		return nil, fail("create product log", err)
	}
	out := toProductLogResponse(l)
	return &out, nil
}

// UpdateProductLog actualización parcial. Si cambia product_id el nuevo producto debe existir.
func (uc *MovementUseCase) UpdateProductLog(ctx context.Context, id int64, in dto.UpdateProductLogRequest) (*dto.ProductLogResponse, error) {
	var patch repository.ProductLogPatch
	texts := []struct {
		field string
		src   *string
		dst   **string
	}{
		{"reference_id", in.ReferenceID, &patch.ReferenceID},
		{"from", in.From, &patch.From},
		{"to", in.To, &patch.To},
		{"responsible", in.Responsible, &patch.Responsible},
	}
	for _, f := range texts {
		if f.src == nil {
			continue
		}
		v, err := requireText(f.field, *f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = &v
	}
	if in.ScheduleAt != nil {
		at, err := parseSchedule(*in.ScheduleAt)
		if err != nil {
			return nil, err
		}
		patch.ScheduleAt = &at
	}
	if in.Status != nil {
		st := entity.LogStatus(*in.Status)
		if !st.Valid() {
			return nil, domain.NewValidationError("status", "debe ser Draft, Waiting, Ready o Done")
		}
		patch.Status = &st
	}
	if in.ProductID != nil {
		if err := uc.ensureProduct(ctx, *in.ProductID); err != nil {
			return nil, err
		}
		patch.ProductID = in.ProductID
	}
	patch.Quantity = in.Quantity

	l, err := uc.logRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fail("update product log", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductLogResponse(l)
	return &out, nil
}

// DeleteProductLog elimina un movimiento individual (no existe borrado por lote).
func (uc *MovementUseCase) DeleteProductLog(ctx context.Context, id int64) error {
	if err := uc.logRepo.Delete(ctx, id); err != nil {
		return fail("delete product log", err)
	}
	return nil
}

func (uc *MovementUseCase) ensureProduct(ctx context.Context, id int64) error {
	ok, err := uc.productRepo.Exists(ctx, id)
	if err != nil {
		return fail("check product", err)
	}
	if !ok {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return nil
}
