package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidOTP         = errors.New("código inválido o expirado")
)

// ValidationError campo requerido ausente o mal formado. Nunca se llega a persistir nada.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ProductNotFoundError una línea de movimiento referencia un producto inexistente.
// Es un error de validación: aborta el lote completo.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %d no encontrado", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrInvalidInput }

// InvalidTransitionError se pidió avanzar un lote cuyo estado actual no tiene sucesor.
type InvalidTransitionError struct {
	Kind    string // receipt | delivery
	Current string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida para %s desde el estado %q", e.Kind, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrConflict }

// StorageError fallo del almacenamiento subyacente; la transacción ya fue revertida.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
