package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StatsUseCase conteos para el dashboard: lotes Ready y cuántos están atrasados respecto a hoy.
type StatsUseCase struct {
	logRepo repository.ProductLogRepository
	now     func() time.Time
}

// NewStatsUseCase construye el caso de uso con el reloj del sistema.
func NewStatsUseCase(logRepo repository.ProductLogRepository) *StatsUseCase {
	return &StatsUseCase{logRepo: logRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StatsUseCase) WithClock(now func() time.Time) *StatsUseCase {
	uc.now = now
	return uc
}

// ReceiptStats lotes de recepción en Ready.
func (uc *StatsUseCase) ReceiptStats(ctx context.Context) (*dto.MovementStatsResponse, error) {
	return uc.stats(ctx, repository.ClassReceipt)
}

// DeliveryStats lotes de entrega en Ready.
func (uc *StatsUseCase) DeliveryStats(ctx context.Context) (*dto.MovementStatsResponse, error) {
	return uc.stats(ctx, repository.ClassDelivery)
}

func (uc *StatsUseCase) stats(ctx context.Context, class repository.LogClass) (*dto.MovementStatsResponse, error) {
	total, late, err := uc.logRepo.CountReady(ctx, class, startOfDay(uc.now()))
	if err != nil {
		return nil, fail("count "+string(class)+" stats", err)
	}
	return &dto.MovementStatsResponse{Total: total, Late: late}, nil
}

// startOfDay medianoche de la fecha local de t como hora de pared en UTC.
// schedule_at es TIMESTAMP sin zona y pgx lo devuelve en UTC, así que ambos lados se comparan en hora de pared.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
