package repository

import "github.com/jdrada/retail-backoffice/internal/domain/entity"

// InventarioRepository define el puerto de persistencia para RegistroInventario.
// No expone upsert atómico: el reconciliador hace lookup-then-write y la DB
// arbitra carreras con el índice único (producto, sucursal, tipo_propietario).
type InventarioRepository interface {
	Create(registro *entity.RegistroInventario) error
	// Update solo toca cantidad, mínimos/máximos y el flag crítico; la clave
	// natural del registro nunca se reescribe.
	Update(registro *entity.RegistroInventario) error
	GetByID(id string) (*entity.RegistroInventario, error)
	// ListByProducto devuelve todos los registros del producto en todas las
	// sucursales (una sola llamada; el filtrado por sucursal/propietario lo
	// hace el reconciliador).
	ListByProducto(productoID string) ([]*entity.RegistroInventario, error)
	ListBySucursal(sucursalID string, soloCriticos bool, limit, offset int) ([]*entity.RegistroInventario, error)
}
