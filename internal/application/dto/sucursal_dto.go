package dto

import "time"

// CreateSucursalRequest entrada para crear una sucursal.
type CreateSucursalRequest struct {
	Nombre             string `json:"nombre" validate:"required,min=1,max=200"`
	Direccion          string `json:"direccion"`
	TipoNegocioID      *int   `json:"tipo_negocio_id"`
	ManejaConsignacion bool   `json:"maneja_consignacion"`
}

// UpdateSucursalRequest entrada para actualizar una sucursal.
type UpdateSucursalRequest struct {
	Nombre             *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Direccion          *string `json:"direccion"`
	TipoNegocioID      *int    `json:"tipo_negocio_id"`
	ManejaConsignacion *bool   `json:"maneja_consignacion"`
}

// SucursalResponse salida de una sucursal.
type SucursalResponse struct {
	ID                 string    `json:"id"`
	Nombre             string    `json:"nombre"`
	Direccion          string    `json:"direccion"`
	TipoNegocioID      *int      `json:"tipo_negocio_id,omitempty"`
	ManejaConsignacion bool      `json:"maneja_consignacion"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SucursalListResponse lista paginada de sucursales.
type SucursalListResponse struct {
	Items []SucursalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
