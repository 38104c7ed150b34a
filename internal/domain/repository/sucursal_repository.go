package repository

import "github.com/jdrada/retail-backoffice/internal/domain/entity"

// SucursalRepository define el puerto de persistencia para Sucursal (DIP).
// El flag ManejaConsignacion que devuelve GetByID es la fuente de verdad para
// el resolver de tipo de propietario; las capas superiores lo cachean por
// sucursal mientras dure la operación en curso.
type SucursalRepository interface {
	Create(sucursal *entity.Sucursal) error
	GetByID(id string) (*entity.Sucursal, error)
	Update(sucursal *entity.Sucursal) error
	List(limit, offset int) ([]*entity.Sucursal, error)
	Delete(id string) error
}
