package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

// fail propaga los errores de dominio tal cual y envuelve el resto como *domain.StorageError.
func fail(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseSchedule acepta ISO-8601 con o sin zona y fechas simples del input type=date.
func parseSchedule(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.NewValidationError("schedule_at", "es obligatorio")
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("schedule_at", "formato de fecha inválido")
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.NewValidationError(field, "es obligatorio")
	}
	return v, nil
}
