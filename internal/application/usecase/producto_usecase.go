package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
	"github.com/jdrada/retail-backoffice/pkg/texto"
)

// ProductoUseCase casos de uso CRUD para productos. El stock no se toca aquí:
// se reconcilia vía el reconciliador de inventario.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un nuevo producto con código único.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	existing, _ := uc.repo.GetByCodigo(in.Codigo)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:                uuid.New().String(),
		Codigo:            in.Codigo,
		Nombre:            in.Nombre,
		Descripcion:       in.Descripcion,
		UnidadMedida:      in.UnidadMedida,
		PermiteFracciones: in.PermiteFracciones,
		PrecioCompra:      in.PrecioCompra,
		PrecioVenta:       in.PrecioVenta,
		CategoriaID:       in.CategoriaID,
		ProveedorID:       in.ProveedorID,
		Activo:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update actualiza un producto. La identidad (ID, Codigo) es inmutable una
// vez referenciada por transacciones; precios y clasificación son editables.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.UnidadMedida != nil {
		producto.UnidadMedida = *in.UnidadMedida
	}
	if in.PermiteFracciones != nil {
		producto.PermiteFracciones = *in.PermiteFracciones
	}
	if in.PrecioCompra != nil {
		if in.PrecioCompra.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioCompra = *in.PrecioCompra
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioVenta = *in.PrecioVenta
	}
	if in.CategoriaID != nil {
		producto.CategoriaID = in.CategoriaID
	}
	if in.ProveedorID != nil {
		producto.ProveedorID = in.ProveedorID
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos con búsqueda insensible a tildes y paginación.
func (uc *ProductoUseCase) List(search string, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	normalizado := texto.Normalizar(search)
	items, err := uc.repo.List(normalizado, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(normalizado)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductoListResponse{
		Items: make([]dto.ProductoResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range items {
		out.Items = append(out.Items, *toProductoResponse(p))
	}
	return out, nil
}

// Delete elimina (desactiva) un producto.
func (uc *ProductoUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:                p.ID,
		Codigo:            p.Codigo,
		Nombre:            p.Nombre,
		Descripcion:       p.Descripcion,
		UnidadMedida:      p.UnidadMedida,
		PermiteFracciones: p.PermiteFracciones,
		PrecioCompra:      p.PrecioCompra,
		PrecioVenta:       p.PrecioVenta,
		CategoriaID:       p.CategoriaID,
		ProveedorID:       p.ProveedorID,
		Activo:            p.Activo,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
