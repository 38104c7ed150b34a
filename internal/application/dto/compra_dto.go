package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleCompraRequest línea de compra. TipoPropietario opcional (PROPIO por
// defecto; CONSIGNACION solo en sucursales que la manejan).
type DetalleCompraRequest struct {
	ProductoID      string          `json:"producto_id" validate:"required,uuid"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TipoPropietario string          `json:"tipo_propietario" validate:"omitempty,oneof=PROPIO CONSIGNACION"`
}

// CreateCompraRequest body para POST /api/compras.
type CreateCompraRequest struct {
	SucursalID  string                 `json:"sucursal_id" validate:"required,uuid"`
	ProveedorID string                 `json:"proveedor_id" validate:"required,uuid"`
	Detalles    []DetalleCompraRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleCompraResponse línea de compra en respuestas.
type DetalleCompraResponse struct {
	ID              string          `json:"id"`
	ProductoID      string          `json:"producto_id"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TipoPropietario string          `json:"tipo_propietario"`
}

// CompraResponse salida de una compra.
type CompraResponse struct {
	ID          string                  `json:"id"`
	SucursalID  string                  `json:"sucursal_id"`
	ProveedorID string                  `json:"proveedor_id"`
	UsuarioID   string                  `json:"usuario_id"`
	Total       decimal.Decimal         `json:"total"`
	Fecha       time.Time               `json:"fecha"`
	Detalles    []DetalleCompraResponse `json:"detalles"`
}

// CompraListResponse lista paginada de compras.
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateDevolucionRequest body para POST /api/compras/:id/devoluciones y
// POST /api/ventas/:id/devoluciones.
type CreateDevolucionRequest struct {
	DetalleID       string          `json:"detalle_id" validate:"required,uuid"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	TipoPropietario string          `json:"tipo_propietario" validate:"omitempty,oneof=PROPIO CONSIGNACION"`
	Motivo          string          `json:"motivo" validate:"max=500"`
}

// DevolucionResponse salida de una devolución.
type DevolucionResponse struct {
	ID              string          `json:"id"`
	Tipo            string          `json:"tipo"`
	DetalleID       string          `json:"detalle_id"`
	ProductoID      string          `json:"producto_id"`
	SucursalID      string          `json:"sucursal_id"`
	TipoPropietario string          `json:"tipo_propietario"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Motivo          string          `json:"motivo"`
	Fecha           time.Time       `json:"fecha"`
}
