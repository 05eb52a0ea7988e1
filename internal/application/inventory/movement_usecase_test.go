package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

func setup(t *testing.T) (*inventory.MovementUseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore(
		&entity.Product{ID: 1, Name: "Tornillo", SKUCode: "TOR-1", Price: decimal.RequireFromString("2.50"), Stocks: 100},
		&entity.Product{ID: 2, Name: "Tuerca", SKUCode: "TUE-1", Price: decimal.RequireFromString("1.00"), Stocks: 50},
		&entity.Product{ID: 3, Name: "Arandela", SKUCode: "ARA-1", Price: decimal.RequireFromString("0.10"), Stocks: 0},
	)
	uc := inventory.NewMovementUseCase(fakeTx{s}, fakeLogRepo{s}, fakeProductRepo{s}, nil)
	return uc, s
}

func receiptReq(lines ...dto.MovementLineRequest) dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		WarehouseShortCode: "WH",
		ScheduleAt:         "2026-10-20T09:00:00Z",
		From:               "Proveedor ACME",
		Products:           lines,
	}
}

func deliveryReq(lines ...dto.MovementLineRequest) dto.CreateDeliveryRequest {
	return dto.CreateDeliveryRequest{
		WarehouseShortCode: "WH",
		ScheduleAt:         "2026-10-21",
		To:                 "Cliente Final",
		Products:           lines,
	}
}

// ─── Reference grouping ──────────────────────────────────────────────────────

func TestCreateReceipt_SharesReferenceFromFirstID(t *testing.T) {
	uc, s := setup(t)
	// consumir ids previos para que la referencia no coincida con 1 por casualidad
	s.seq = 41

	out, err := uc.CreateReceipt(context.Background(), "ana", receiptReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 10},
		dto.MovementLineRequest{ProductID: 2, Quantity: 5},
		dto.MovementLineRequest{ProductID: 1, Quantity: 3},
	))
	require.NoError(t, err)
	require.Len(t, out, 3)

	firstID := out[0].ID
	assert.Equal(t, int64(42), firstID)
	for i, l := range out {
		assert.Equal(t, fmt.Sprintf("WH/IN/%d", firstID), l.ReferenceID)
		assert.GreaterOrEqual(t, l.ID, firstID)
		assert.Equal(t, "Proveedor ACME", l.From)
		assert.Equal(t, "WH", l.To)
		assert.Equal(t, "Draft", l.Status)
		assert.Equal(t, "ana", l.Responsible)
		if i > 0 {
			assert.Greater(t, l.ID, out[i-1].ID, "orden de inserción")
		}
	}
	assert.Equal(t, []int{10, 5, 3}, []int{out[0].Quantity, out[1].Quantity, out[2].Quantity})
	assert.Len(t, s.logs, 3)
	assert.Equal(t, 1, s.commits)
}

func TestCreateDelivery_EndpointsAndTag(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.CreateDelivery(context.Background(), "bob", deliveryReq(dto.MovementLineRequest{ProductID: 2, Quantity: 4}))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, fmt.Sprintf("WH/OUT/%d", out[0].ID), out[0].ReferenceID)
	assert.Equal(t, "WH", out[0].From)
	assert.Equal(t, "Cliente Final", out[0].To)
}

func TestCreateDelivery_MissingProductPersistsNothing(t *testing.T) {
	uc, s := setup(t)

	_, err := uc.CreateDelivery(context.Background(), "bob", deliveryReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 1},
		dto.MovementLineRequest{ProductID: 999, Quantity: 1},
	))
	var pnf *domain.ProductNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, int64(999), pnf.ProductID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.logs)
	assert.Equal(t, 1, s.rollbacks)
}

func TestCreateReceipt_StorageFailureMidBatchRollsBack(t *testing.T) {
	uc, s := setup(t)
	s.failInsertAt = 2

	_, err := uc.CreateReceipt(context.Background(), "ana", receiptReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 1},
		dto.MovementLineRequest{ProductID: 2, Quantity: 1},
		dto.MovementLineRequest{ProductID: 3, Quantity: 1},
	))
	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, s.logs, "no debe quedar un lote parcial")
}

func TestCreateReceipt_Validation(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateReceiptRequest
		who  string
	}{
		{"lote vacío", receiptReq(), "ana"},
		{"cantidad cero", receiptReq(dto.MovementLineRequest{ProductID: 1, Quantity: 0}), "ana"},
		{"sin producto", receiptReq(dto.MovementLineRequest{Quantity: 2}), "ana"},
		{"sin responsable", receiptReq(dto.MovementLineRequest{ProductID: 1, Quantity: 2}), " "},
		{"sin bodega", dto.CreateReceiptRequest{ScheduleAt: "2026-01-01", From: "X", Products: []dto.MovementLineRequest{{ProductID: 1, Quantity: 1}}}, "ana"},
		{"fecha inválida", dto.CreateReceiptRequest{WarehouseShortCode: "WH", ScheduleAt: "mañana", From: "X", Products: []dto.MovementLineRequest{{ProductID: 1, Quantity: 1}}}, "ana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateReceipt(ctx, tt.who, tt.req)
			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve), "se esperaba ValidationError, se obtuvo %v", err)
		})
	}
	assert.Empty(t, s.logs)
	assert.Zero(t, s.commits+s.rollbacks, "la validación ocurre antes de abrir la transacción")
}

// ─── Status workflow ─────────────────────────────────────────────────────────

func TestAdvanceReceiptStatus_DraftReadyDoneThenFails(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateReceipt(ctx, "ana", receiptReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 1},
		dto.MovementLineRequest{ProductID: 2, Quantity: 2},
	))
	require.NoError(t, err)
	ref := batch[0].ReferenceID

	for _, want := range []string{"Ready", "Done"} {
		out, err := uc.AdvanceReceiptStatus(ctx, ref)
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, l := range out {
			assert.Equal(t, want, l.Status)
		}
	}

	_, err = uc.AdvanceReceiptStatus(ctx, ref)
	var ite *domain.InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, "Done", ite.Current)
	for _, l := range s.logs {
		assert.Equal(t, entity.StatusDone, l.Status)
	}
}

func TestAdvanceDeliveryStatus_ThreeSteps(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateDelivery(ctx, "bob", deliveryReq(dto.MovementLineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	ref := batch[0].ReferenceID

	var seen []string
	for i := 0; i < 3; i++ {
		out, err := uc.AdvanceDeliveryStatus(ctx, ref)
		require.NoError(t, err)
		seen = append(seen, out[0].Status)
	}
	assert.Equal(t, []string{"Waiting", "Ready", "Done"}, seen)

	_, err = uc.AdvanceDeliveryStatus(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvanceStatus_UnknownReferenceIsNotFound(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.AdvanceDeliveryStatus(context.Background(), "WH/OUT/404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var ite *domain.InvalidTransitionError
	assert.False(t, errors.As(err, &ite))
}

func TestAdvanceReceiptStatus_WaitingHasNoReceiptSuccessor(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateReceipt(ctx, "ana", receiptReq(dto.MovementLineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	s.logs[batch[0].ID].Status = entity.StatusWaiting

	_, err = uc.AdvanceReceiptStatus(ctx, batch[0].ReferenceID)
	var ite *domain.InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, "Waiting", ite.Current)
	assert.Equal(t, entity.StatusWaiting, s.logs[batch[0].ID].Status)
}

// ─── Queries / CRUD ──────────────────────────────────────────────────────────

func TestDeliveryRoundTripByReference(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	created, err := uc.CreateDelivery(ctx, "bob", deliveryReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 7},
		dto.MovementLineRequest{ProductID: 3, Quantity: 2},
	))
	require.NoError(t, err)

	fetched, err := uc.ListByReference(ctx, created[0].ReferenceID)
	require.NoError(t, err)
	require.Len(t, fetched, len(created))
	for i := range created {
		assert.Equal(t, created[i].From, fetched[i].From)
		assert.Equal(t, created[i].To, fetched[i].To)
		assert.Equal(t, created[i].ProductID, fetched[i].ProductID)
		assert.Equal(t, created[i].Quantity, fetched[i].Quantity)
		assert.Equal(t, "Draft", fetched[i].Status)
	}

	_, err = uc.ListByReference(ctx, "WH/OUT/0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProductLogs_Classification(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.CreateReceipt(ctx, "ana", receiptReq(dto.MovementLineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	_, err = uc.CreateDelivery(ctx, "bob", deliveryReq(dto.MovementLineRequest{ProductID: 2, Quantity: 1}))
	require.NoError(t, err)
	qty := -3
	_, err = uc.CreateProductLog(ctx, dto.CreateProductLogRequest{
		ReferenceID: "WH/IN/900", ScheduleAt: "2026-10-01", From: "WH/IN/900", To: "WH/OUT/901",
		ProductID: 3, Quantity: &qty, Status: "Draft", Responsible: "ana",
	})
	require.NoError(t, err)

	receipts, err := uc.ListProductLogs(ctx, repository.ClassReceipt)
	require.NoError(t, err)
	deliveries, err := uc.ListProductLogs(ctx, repository.ClassDelivery)
	require.NoError(t, err)
	adjustments, err := uc.ListProductLogs(ctx, repository.ClassAdjustment)
	require.NoError(t, err)
	all, err := uc.ListProductLogs(ctx, repository.ClassAny)
	require.NoError(t, err)

	// el ajuste también cumple la regla de recepción
	assert.Len(t, receipts, 2)
	assert.Len(t, deliveries, 1)
	require.Len(t, adjustments, 1)
	assert.Equal(t, -3, adjustments[0].Quantity)
	assert.Len(t, all, 3)

	named, err := uc.ListProductLogsWithName(ctx, repository.ClassDelivery)
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "Tuerca", named[0].ProductName)
}

func TestCreateProductLog_Validation(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	qty := 1
	base := dto.CreateProductLogRequest{
		ReferenceID: "WH/IN/1", ScheduleAt: "2026-10-01", From: "A", To: "B",
		ProductID: 1, Quantity: &qty, Status: "Draft", Responsible: "ana",
	}

	bad := base
	bad.Status = "Cancelled"
	_, err := uc.CreateProductLog(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.Quantity = nil
	_, err = uc.CreateProductLog(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.ProductID = 77
	_, err = uc.CreateProductLog(ctx, bad)
	var pnf *domain.ProductNotFoundError
	assert.True(t, errors.As(err, &pnf))

	out, err := uc.CreateProductLog(ctx, base)
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
}

func TestUpdateProductLog(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateReceipt(ctx, "ana", receiptReq(dto.MovementLineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	id := batch[0].ID

	newProduct := int64(2)
	qty := 9
	out, err := uc.UpdateProductLog(ctx, id, dto.UpdateProductLogRequest{ProductID: &newProduct, Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.ProductID)
	assert.Equal(t, 9, out.Quantity)
	assert.Equal(t, batch[0].ReferenceID, out.ReferenceID)

	missing := int64(999)
	_, err = uc.UpdateProductLog(ctx, id, dto.UpdateProductLogRequest{ProductID: &missing})
	var pnf *domain.ProductNotFoundError
	assert.True(t, errors.As(err, &pnf))
	assert.Equal(t, int64(2), s.logs[id].ProductID)

	bad := "Archived"
	_, err = uc.UpdateProductLog(ctx, id, dto.UpdateProductLogRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateProductLog(ctx, 12345, dto.UpdateProductLogRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAndGetProductLog(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateReceipt(ctx, "ana", receiptReq(
		dto.MovementLineRequest{ProductID: 1, Quantity: 1},
		dto.MovementLineRequest{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProductLog(ctx, batch[0].ID))
	_, err = uc.GetProductLog(ctx, batch[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteProductLog(ctx, batch[0].ID), domain.ErrNotFound)

	// el resto del lote sigue existiendo
	got, err := uc.GetProductLog(ctx, batch[1].ID)
	require.NoError(t, err)
	assert.Equal(t, batch[1].ReferenceID, got.ReferenceID)
}

func TestListByStatusAndProduct(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	batch, err := uc.CreateDelivery(ctx, "bob", deliveryReq(dto.MovementLineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	_, err = uc.CreateReceipt(ctx, "ana", receiptReq(dto.MovementLineRequest{ProductID: 2, Quantity: 1}))
	require.NoError(t, err)
	_, err = uc.AdvanceDeliveryStatus(ctx, batch[0].ReferenceID)
	require.NoError(t, err)

	waiting, err := uc.ListByStatus(ctx, "Waiting")
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, int64(1), waiting[0].ProductID)

	_, err = uc.ListByStatus(ctx, "waiting")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	byProduct, err := uc.ListByProduct(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)
}
