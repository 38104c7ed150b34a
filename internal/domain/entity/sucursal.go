package entity

import "time"

// Sucursal representa una sucursal del negocio. ManejaConsignacion es el flag
// de configuración que habilita inventario particionado por propietario
// (PROPIO / CONSIGNACION); cuando es false todo el stock se trata como PROPIO.
type Sucursal struct {
	ID                 string
	Nombre             string
	Direccion          string
	TipoNegocioID      *int
	ManejaConsignacion bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
