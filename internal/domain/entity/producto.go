package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de unidad de medida reconocidos. METRO tiene paso grueso (0.1) en
// ventas; cualquier otra unidad con PermiteFracciones usa paso fino (0.01).
const (
	UnidadPieza = "UNIDAD"
	UnidadMetro = "METRO"
	UnidadKilo  = "KILOGRAMO"
	UnidadLitro = "LITRO"
)

// Producto representa un producto del catálogo. Una vez referenciado por
// transacciones históricas su identidad es inmutable; precios, categoría y
// proveedor siguen siendo editables.
type Producto struct {
	ID                string
	Codigo            string // código/SKU único
	Nombre            string
	Descripcion       string
	UnidadMedida      string // UNIDAD, METRO, KILOGRAMO, LITRO, ...
	PermiteFracciones bool   // false => solo cantidades enteras
	PrecioCompra      decimal.Decimal
	PrecioVenta       decimal.Decimal
	CategoriaID       *string
	ProveedorID       *string
	Activo            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
