package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de devolución: contra una compra (sale stock hacia el proveedor) o
// contra una venta (entra stock devuelto por el cliente).
const (
	DevolucionCompra = "COMPRA"
	DevolucionVenta  = "VENTA"
)

// Devolucion referencia el detalle original; la cantidad devuelta nunca puede
// exceder la cantidad de ese detalle.
type Devolucion struct {
	ID              string
	Tipo            string // COMPRA | VENTA
	DetalleID       string // detalle de compra o de venta según Tipo
	ProductoID      string
	SucursalID      string
	TipoPropietario TipoPropietario
	Cantidad        decimal.Decimal
	Motivo          string
	UsuarioID       string
	Fecha           time.Time
	CreatedAt       time.Time
}
