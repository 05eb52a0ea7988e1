package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestReceiptStats_TotalAndLate(t *testing.T) {
	s := newFakeStore(&entity.Product{ID: 1})
	now := time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	earlierToday := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	add := func(id int64, ref, to string, at time.Time, st entity.LogStatus) {
		s.logs[id] = &entity.ProductLog{ID: id, ReferenceID: ref, From: "X", To: to, ProductID: 1, Quantity: 1, ScheduleAt: at, Status: st}
	}
	// dos líneas del mismo lote cuentan una sola vez
	add(1, "WH/IN/1", "WH", yesterday, entity.StatusReady)
	add(2, "WH/IN/1", "WH", yesterday, entity.StatusReady)
	add(3, "WH/IN/3", "WH", tomorrow, entity.StatusReady)
	// fuera de Ready no cuentan
	add(4, "WH/IN/4", "WH", earlierToday, entity.StatusDraft)
	add(5, "WH/IN/5", "WH", yesterday, entity.StatusDone)
	add(6, "WH/OUT/6", "Cliente", yesterday, entity.StatusReady)

	uc := inventory.NewStatsUseCase(fakeLogRepo{s}).WithClock(func() time.Time { return now })

	receipts, err := uc.ReceiptStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, receipts.Total)
	assert.Equal(t, 1, receipts.Late)

	deliveries, err := uc.DeliveryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deliveries.Total)
	assert.Equal(t, 1, deliveries.Late)
}

func TestDeliveryStats_ScheduledEarlierTodayIsNotLate(t *testing.T) {
	s := newFakeStore(&entity.Product{ID: 1})
	now := time.Date(2026, 10, 15, 23, 0, 0, 0, time.UTC)
	s.logs[1] = &entity.ProductLog{
		ID: 1, ReferenceID: "WH/OUT/1", From: "WH", To: "Cliente", ProductID: 1, Quantity: 1,
		ScheduleAt: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), Status: entity.StatusReady,
	}

	got, err := inventory.NewStatsUseCase(fakeLogRepo{s}).
		WithClock(func() time.Time { return now }).
		DeliveryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Zero(t, got.Late)
}

func TestReceiptStats_LateUsesLocalDateAsWallClock(t *testing.T) {
	s := newFakeStore(&entity.Product{ID: 1})
	bogota := time.FixedZone("COT", -5*60*60)
	// 21:00 del 15 en Bogotá ya es 16 en UTC; "hoy" sigue siendo el 15
	now := time.Date(2026, 10, 15, 21, 0, 0, 0, bogota)

	add := func(id int64, ref string, at time.Time) {
		s.logs[id] = &entity.ProductLog{ID: id, ReferenceID: ref, From: "Proveedor", To: "WH", ProductID: 1, Quantity: 1, ScheduleAt: at, Status: entity.StatusReady}
	}
	// valores TIMESTAMP tal como los entrega pgx: hora de pared en UTC
	add(1, "WH/IN/1", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	add(2, "WH/IN/2", time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC))

	got, err := inventory.NewStatsUseCase(fakeLogRepo{s}).
		WithClock(func() time.Time { return now }).
		ReceiptStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Late)
}
