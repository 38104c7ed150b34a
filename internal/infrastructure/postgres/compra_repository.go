package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación del puerto CompraRepository sobre PostgreSQL.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

// Create persiste la compra y sus detalles. Debe ejecutarse dentro de una tx
// (vía TxRunner) para que compra e inventario se confirmen juntos.
func (r *CompraRepo) Create(c *entity.Compra) error {
	ctx := context.Background()
	query := `
		INSERT INTO compras (id, sucursal_id, proveedor_id, usuario_id, total, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.SucursalID, c.ProveedorID, c.UsuarioID, c.Total, c.Fecha, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compra: %w", err)
	}

	detQuery := `
		INSERT INTO detalles_compra (id, compra_id, producto_id, cantidad, precio_unitario, tipo_propietario)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, d := range c.Detalles {
		if _, err := r.q.Exec(ctx, detQuery,
			d.ID, d.CompraID, d.ProductoID, d.Cantidad, d.PrecioUnitario, string(d.TipoPropietario),
		); err != nil {
			return fmt.Errorf("insert detalle compra: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus detalles.
func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	ctx := context.Background()
	query := `
		SELECT id, sucursal_id, proveedor_id, usuario_id, total, fecha, created_at
		FROM compras WHERE id = $1`
	var c entity.Compra
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SucursalID, &c.ProveedorID, &c.UsuarioID, &c.Total, &c.Fecha, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}

	detQuery := `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, tipo_propietario
		FROM detalles_compra WHERE compra_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, detQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles compra: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleCompra
		var tipo string
		if err := rows.Scan(&d.ID, &d.CompraID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &tipo); err != nil {
			return nil, fmt.Errorf("scan detalle compra: %w", err)
		}
		d.TipoPropietario = entity.TipoPropietario(tipo)
		c.Detalles = append(c.Detalles, d)
	}
	return &c, rows.Err()
}

// GetDetalle obtiene un detalle de compra por ID.
func (r *CompraRepo) GetDetalle(detalleID string) (*entity.DetalleCompra, error) {
	query := `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, tipo_propietario
		FROM detalles_compra WHERE id = $1`
	var d entity.DetalleCompra
	var tipo string
	err := r.q.QueryRow(context.Background(), query, detalleID).Scan(
		&d.ID, &d.CompraID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &tipo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle compra: %w", err)
	}
	d.TipoPropietario = entity.TipoPropietario(tipo)
	return &d, nil
}

// ListBySucursal lista compras de una sucursal (cabeceras, sin detalles).
func (r *CompraRepo) ListBySucursal(sucursalID string, limit, offset int) ([]*entity.Compra, error) {
	query := `
		SELECT id, sucursal_id, proveedor_id, usuario_id, total, fecha, created_at
		FROM compras WHERE sucursal_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, sucursalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		var c entity.Compra
		if err := rows.Scan(&c.ID, &c.SucursalID, &c.ProveedorID, &c.UsuarioID, &c.Total, &c.Fecha, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
