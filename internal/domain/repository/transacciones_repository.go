package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// CompraRepository define el puerto de persistencia para Compra y sus detalles.
type CompraRepository interface {
	Create(compra *entity.Compra) error
	GetByID(id string) (*entity.Compra, error)
	GetDetalle(detalleID string) (*entity.DetalleCompra, error)
	ListBySucursal(sucursalID string, limit, offset int) ([]*entity.Compra, error)
}

// VentaRepository define el puerto de persistencia para Venta y sus detalles.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	GetDetalle(detalleID string) (*entity.DetalleVenta, error)
	ListBySucursal(sucursalID string, limit, offset int) ([]*entity.Venta, error)
}

// DevolucionRepository define el puerto de persistencia para Devolucion.
type DevolucionRepository interface {
	Create(devolucion *entity.Devolucion) error
	// TotalDevuelto suma las devoluciones previas contra un detalle, para que
	// el acumulado nunca exceda la cantidad original.
	TotalDevuelto(tipo, detalleID string) (decimal.Decimal, error)
	ListByDetalle(tipo, detalleID string) ([]*entity.Devolucion, error)
}
