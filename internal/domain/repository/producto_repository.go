package repository

import "github.com/jdrada/retail-backoffice/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	// List filtra por nombre normalizado (sin tildes) cuando search no es vacío.
	List(search string, limit, offset int) ([]*entity.Producto, error)
	Count(search string) (int, error)
	Delete(id string) error
}
