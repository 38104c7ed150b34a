package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertInventarioRequest body para PUT /api/inventario. TipoPropietario es
// opcional; el reconciliador lo resuelve contra la capacidad de la sucursal
// (PROPIO por defecto).
type UpsertInventarioRequest struct {
	ProductoID      string           `json:"producto_id" validate:"required,uuid"`
	SucursalID      string           `json:"sucursal_id" validate:"required,uuid"`
	TipoPropietario string           `json:"tipo_propietario" validate:"omitempty,oneof=PROPIO CONSIGNACION"`
	Cantidad        decimal.Decimal  `json:"cantidad"`
	StockMinimo     *decimal.Decimal `json:"stock_minimo"`
	StockMaximo     *decimal.Decimal `json:"stock_maximo"`
	EsCritico       *bool            `json:"es_critico"` // forzar el flag, opcional
}

// InventarioResponse salida de un registro de inventario.
type InventarioResponse struct {
	ID              string           `json:"id"`
	ProductoID      string           `json:"producto_id"`
	SucursalID      string           `json:"sucursal_id"`
	TipoPropietario string           `json:"tipo_propietario"`
	Cantidad        decimal.Decimal  `json:"cantidad"`
	StockMinimo     *decimal.Decimal `json:"stock_minimo,omitempty"`
	StockMaximo     *decimal.Decimal `json:"stock_maximo,omitempty"`
	EsCritico       bool             `json:"es_critico"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// InventarioListResponse lista de registros de inventario.
type InventarioListResponse struct {
	Items []InventarioResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
