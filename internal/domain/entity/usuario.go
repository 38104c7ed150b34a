package entity

import "time"

// Roles válidos para Usuario.
const (
	RolSuperAdmin = "SUPER_ADMIN"
	RolAdmin      = "ADMIN"
	RolVendedor   = "VENDEDOR"
)

// Usuario representa un usuario del sistema. SucursalID limita el alcance de
// ADMIN y VENDEDOR a una sucursal; SUPER_ADMIN opera sin sucursal asignada.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Nombre       string
	Rol          string // SUPER_ADMIN, ADMIN, VENDEDOR
	SucursalID   *string
	Estado       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
