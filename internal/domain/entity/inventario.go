package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoPropietario distingue el stock propio del stock en consignación.
type TipoPropietario string

const (
	PropietarioPropio       TipoPropietario = "PROPIO"
	PropietarioConsignacion TipoPropietario = "CONSIGNACION"
)

// Valido reporta si el valor es uno de los dos tipos reconocidos.
// El string vacío se trata como "no especificado", no como inválido.
func (t TipoPropietario) Valido() bool {
	return t == PropietarioPropio || t == PropietarioConsignacion
}

// RegistroInventario es el stock de un producto en una sucursal para un tipo
// de propietario. La tupla (ProductoID, SucursalID, TipoPropietario) es la
// clave natural: a lo sumo un registro por combinación (índice único en DB).
// Nunca se elimina desde esta API; las ediciones reemplazan la cantidad
// completa, no la incrementan.
type RegistroInventario struct {
	ID              string
	ProductoID      string
	SucursalID      string
	TipoPropietario TipoPropietario
	Cantidad        decimal.Decimal
	StockMinimo     *decimal.Decimal
	StockMaximo     *decimal.Decimal
	EsCritico       bool // cantidad < StockMinimo, o forzado manualmente
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CalcularCritico deriva el flag crítico a partir del mínimo configurado.
// Si no hay mínimo, conserva el valor forzado que traiga el registro.
func (r *RegistroInventario) CalcularCritico() bool {
	if r.StockMinimo == nil {
		return r.EsCritico
	}
	return r.Cantidad.LessThan(*r.StockMinimo)
}
