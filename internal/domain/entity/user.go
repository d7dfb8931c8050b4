package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleUser         = "USER"
	RoleStoreManager = "STORE_MANAGER"
	RoleAdmin        = "ADMIN"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	Contact      string
	Location     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParseRole normaliza el rol recibido. Vacío o desconocido cae a RoleUser; ok indica si el valor era válido.
func ParseRole(raw string) (role string, ok bool) {
	switch r := strings.ToUpper(strings.TrimSpace(raw)); r {
	case RoleUser, RoleStoreManager, RoleAdmin:
		return r, true
	default:
		return RoleUser, false
	}
}
