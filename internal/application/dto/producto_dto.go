package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
type CreateProductoRequest struct {
	Codigo            string          `json:"codigo" validate:"required,min=1,max=100"`
	Nombre            string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion       string          `json:"descripcion"`
	UnidadMedida      string          `json:"unidad_medida" validate:"required"`
	PermiteFracciones bool            `json:"permite_fracciones"`
	PrecioCompra      decimal.Decimal `json:"precio_compra"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	CategoriaID       *string         `json:"categoria_id"`
	ProveedorID       *string         `json:"proveedor_id"`
}

// UpdateProductoRequest entrada para actualizar un producto. La identidad
// (ID, Codigo) no se toca; precios, categoría y proveedor sí.
type UpdateProductoRequest struct {
	Nombre            *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion       *string          `json:"descripcion"`
	UnidadMedida      *string          `json:"unidad_medida"`
	PermiteFracciones *bool            `json:"permite_fracciones"`
	PrecioCompra      *decimal.Decimal `json:"precio_compra"`
	PrecioVenta       *decimal.Decimal `json:"precio_venta"`
	CategoriaID       *string          `json:"categoria_id"`
	ProveedorID       *string          `json:"proveedor_id"`
	Activo            *bool            `json:"activo"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID                string          `json:"id"`
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Descripcion       string          `json:"descripcion"`
	UnidadMedida      string          `json:"unidad_medida"`
	PermiteFracciones bool            `json:"permite_fracciones"`
	PrecioCompra      decimal.Decimal `json:"precio_compra"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	CategoriaID       *string         `json:"categoria_id,omitempty"`
	ProveedorID       *string         `json:"proveedor_id,omitempty"`
	Activo            bool            `json:"activo"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
