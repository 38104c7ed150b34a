package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
	"github.com/jdrada/retail-backoffice/pkg/texto"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
// Mantiene nombre_normalizado (sin tildes, minúsculas) para la búsqueda.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (id, codigo, nombre, nombre_normalizado, descripcion, unidad_medida, permite_fracciones, precio_compra, precio_venta, categoria_id, proveedor_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Codigo, p.Nombre, texto.Normalizar(p.Nombre), p.Descripcion,
		p.UnidadMedida, p.PermiteFracciones, p.PrecioCompra, p.PrecioVenta,
		p.CategoriaID, p.ProveedorID, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	return r.getOne(`WHERE codigo = $1`, codigo)
}

func (r *ProductoRepo) getOne(where string, arg any) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, descripcion, unidad_medida, permite_fracciones, precio_compra, precio_venta, categoria_id, proveedor_id, activo, created_at, updated_at
		FROM productos ` + where
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.UnidadMedida, &p.PermiteFracciones,
		&p.PrecioCompra, &p.PrecioVenta, &p.CategoriaID, &p.ProveedorID, &p.Activo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. Codigo y UnidadMedida no se tocan:
// las transacciones históricas dependen de ellos.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, nombre_normalizado = $3, descripcion = $4, precio_compra = $5, precio_venta = $6, categoria_id = $7, proveedor_id = $8, activo = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, texto.Normalizar(p.Nombre), p.Descripcion,
		p.PrecioCompra, p.PrecioVenta, p.CategoriaID, p.ProveedorID, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación; search filtra por nombre normalizado o código.
func (r *ProductoRepo) List(search string, limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, descripcion, unidad_medida, permite_fracciones, precio_compra, precio_venta, categoria_id, proveedor_id, activo, created_at, updated_at
		FROM productos
		WHERE ($1 = '' OR nombre_normalizado LIKE '%' || $1 || '%' OR codigo ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, texto.Normalizar(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.UnidadMedida, &p.PermiteFracciones,
			&p.PrecioCompra, &p.PrecioVenta, &p.CategoriaID, &p.ProveedorID, &p.Activo,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta productos que cumplen el filtro de búsqueda.
func (r *ProductoRepo) Count(search string) (int, error) {
	query := `
		SELECT count(*) FROM productos
		WHERE ($1 = '' OR nombre_normalizado LIKE '%' || $1 || '%' OR codigo ILIKE '%' || $1 || '%')`
	var n int
	if err := r.q.QueryRow(context.Background(), query, texto.Normalizar(search)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
