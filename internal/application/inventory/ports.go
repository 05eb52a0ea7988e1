package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error nada de lo escrito es visible (rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		logRepo repository.ProductLogRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SlipRenderer genera el comprobante PDF de un lote de movimientos.
type SlipRenderer interface {
	RenderSlip(slip MovementSlip) ([]byte, error)
}

// HistoryExporter genera la planilla XLSX del historial de movimientos.
type HistoryExporter interface {
	ExportHistory(rows []*HistoryRow) ([]byte, error)
}
