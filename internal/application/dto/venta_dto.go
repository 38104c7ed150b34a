package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVentaRequest línea de venta.
type DetalleVentaRequest struct {
	ProductoID      string          `json:"producto_id" validate:"required,uuid"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TipoPropietario string          `json:"tipo_propietario" validate:"omitempty,oneof=PROPIO CONSIGNACION"`
}

// CreateVentaRequest body para POST /api/ventas.
type CreateVentaRequest struct {
	SucursalID string                `json:"sucursal_id" validate:"required,uuid"`
	ClienteID  *string               `json:"cliente_id" validate:"omitempty,uuid"`
	Detalles   []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleVentaResponse línea de venta en respuestas.
type DetalleVentaResponse struct {
	ID              string          `json:"id"`
	ProductoID      string          `json:"producto_id"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TipoPropietario string          `json:"tipo_propietario"`
}

// VentaResponse salida de una venta.
type VentaResponse struct {
	ID         string                 `json:"id"`
	SucursalID string                 `json:"sucursal_id"`
	ClienteID  *string                `json:"cliente_id,omitempty"`
	UsuarioID  string                 `json:"usuario_id"`
	Total      decimal.Decimal        `json:"total"`
	Fecha      time.Time              `json:"fecha"`
	Detalles   []DetalleVentaResponse `json:"detalles"`
}

// VentaListResponse lista paginada de ventas.
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
