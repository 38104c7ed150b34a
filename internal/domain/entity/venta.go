package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta es una venta a cliente con sus detalles.
type Venta struct {
	ID         string
	SucursalID string
	ClienteID  *string // nil = consumidor final
	UsuarioID  string
	Total      decimal.Decimal
	Fecha      time.Time
	CreatedAt  time.Time
	Detalles   []DetalleVenta
}

// DetalleVenta es una línea de venta.
type DetalleVenta struct {
	ID              string
	VentaID         string
	ProductoID      string
	Cantidad        decimal.Decimal
	PrecioUnitario  decimal.Decimal
	TipoPropietario TipoPropietario
}
