package entity

import "time"

// Roles del back-office. Deben coincidir con los que valida pkg/jwt.
const (
	RoleAdmin    = "admin"    // catálogo, compras, finanzas, ajustes y usuarios
	RoleOperator = "operator" // pedidos, ajustes de stock y consultas
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User operador del back-office de la tienda.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOperator
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
