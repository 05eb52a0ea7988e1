package inventory

import (
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MovementType tipo de lote según el tag de su referencia.
type MovementType string

const (
	TypeReceipt  MovementType = "IN"
	TypeDelivery MovementType = "OUT"
)

// Kind nombre legible del tipo, usado en errores y logs.
func (t MovementType) Kind() string {
	if t == TypeReceipt {
		return "receipt"
	}
	return "delivery"
}

// Tablas de transición de un solo paso. Las recepciones saltan Waiting.
var (
	receiptFlow = map[entity.LogStatus]entity.LogStatus{
		entity.StatusDraft: entity.StatusReady,
		entity.StatusReady: entity.StatusDone,
	}
	deliveryFlow = map[entity.LogStatus]entity.LogStatus{
		entity.StatusDraft:   entity.StatusWaiting,
		entity.StatusWaiting: entity.StatusReady,
		entity.StatusReady:   entity.StatusDone,
	}
)

// NextStatus devuelve el sucesor de current en el flujo del tipo t.
// Si current es terminal o no tiene sucesor retorna *domain.InvalidTransitionError.
func NextStatus(t MovementType, current entity.LogStatus) (entity.LogStatus, error) {
	flow := deliveryFlow
	if t == TypeReceipt {
		flow = receiptFlow
	}
	next, ok := flow[current]
	if !ok {
		return "", &domain.InvalidTransitionError{Kind: t.Kind(), Current: string(current)}
	}
	return next, nil
}
