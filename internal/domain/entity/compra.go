package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra es una compra a proveedor con sus detalles.
type Compra struct {
	ID          string
	SucursalID  string
	ProveedorID string
	UsuarioID   string
	Total       decimal.Decimal
	Fecha       time.Time
	CreatedAt   time.Time
	Detalles    []DetalleCompra
}

// DetalleCompra es una línea de compra. TipoPropietario queda resuelto al
// crear la compra (PROPIO por defecto) y gobierna contra qué partición de
// inventario se reconcilia la entrada.
type DetalleCompra struct {
	ID              string
	CompraID        string
	ProductoID      string
	Cantidad        decimal.Decimal
	PrecioUnitario  decimal.Decimal
	TipoPropietario TipoPropietario
}
