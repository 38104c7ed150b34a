package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUsuarioRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Nombre     string  `json:"nombre" validate:"required,min=1,max=200"`
	Rol        string  `json:"rol" validate:"required,oneof=SUPER_ADMIN ADMIN VENDEDOR"`
	SucursalID *string `json:"sucursal_id" validate:"omitempty,uuid"`
}

// UpdateUsuarioRequest entrada para actualizar un usuario.
type UpdateUsuarioRequest struct {
	Nombre     *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Rol        *string `json:"rol" validate:"omitempty,oneof=SUPER_ADMIN ADMIN VENDEDOR"`
	SucursalID *string `json:"sucursal_id"`
	Estado     *string `json:"estado" validate:"omitempty,oneof=active inactive"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Nombre     string    `json:"nombre"`
	Rol        string    `json:"rol"`
	SucursalID *string   `json:"sucursal_id,omitempty"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UsuarioListResponse lista paginada de usuarios.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
