package entity

import "time"

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string // único
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RefreshToken string // vacío si no hay sesión activa
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
