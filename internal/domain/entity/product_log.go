package entity

import "time"

// LogStatus estado del flujo de un movimiento.
type LogStatus string

const (
	StatusDraft   LogStatus = "Draft"
	StatusWaiting LogStatus = "Waiting"
	StatusReady   LogStatus = "Ready"
	StatusDone    LogStatus = "Done" // terminal
)

// Valid indica si el estado pertenece a la enumeración.
func (s LogStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone:
		return true
	}
	return false
}

// PendingStatuses estados que aún comprometen stock.
var PendingStatuses = []LogStatus{StatusDraft, StatusWaiting, StatusReady}

// Pending indica si el movimiento aún compromete stock (todo lo que no es Done).
func (s LogStatus) Pending() bool {
	for _, p := range PendingStatuses {
		if s == p {
			return true
		}
	}
	return false
}

// ProductLog es un movimiento de stock: una línea de un lote agrupado por ReferenceID.
type ProductLog struct {
	ID          int64
	ReferenceID string // "<short_code>/<IN|OUT>/<id de la primera línea>"
	ScheduleAt  time.Time
	From        string
	To          string
	ProductID   int64
	Quantity    int
	Status      LogStatus
	Responsible string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductLogWithName movimiento con el nombre del producto (LEFT JOIN, puede venir vacío).
type ProductLogWithName struct {
	ProductLog
	ProductName string
}
