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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la venta y sus detalles. Debe ejecutarse dentro de una tx
// (vía TxRunner) para que venta e inventario se confirmen juntos.
func (r *VentaRepo) Create(v *entity.Venta) error {
	ctx := context.Background()
	query := `
		INSERT INTO ventas (id, sucursal_id, cliente_id, usuario_id, total, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.SucursalID, v.ClienteID, v.UsuarioID, v.Total, v.Fecha, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}

	detQuery := `
		INSERT INTO detalles_venta (id, venta_id, producto_id, cantidad, precio_unitario, tipo_propietario)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, d := range v.Detalles {
		if _, err := r.q.Exec(ctx, detQuery,
			d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, string(d.TipoPropietario),
		); err != nil {
			return fmt.Errorf("insert detalle venta: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus detalles.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	ctx := context.Background()
	query := `
		SELECT id, sucursal_id, cliente_id, usuario_id, total, fecha, created_at
		FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.SucursalID, &v.ClienteID, &v.UsuarioID, &v.Total, &v.Fecha, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}

	detQuery := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, tipo_propietario
		FROM detalles_venta WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, detQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles venta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleVenta
		var tipo string
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &tipo); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		d.TipoPropietario = entity.TipoPropietario(tipo)
		v.Detalles = append(v.Detalles, d)
	}
	return &v, rows.Err()
}

// GetDetalle obtiene un detalle de venta por ID.
func (r *VentaRepo) GetDetalle(detalleID string) (*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, tipo_propietario
		FROM detalles_venta WHERE id = $1`
	var d entity.DetalleVenta
	var tipo string
	err := r.q.QueryRow(context.Background(), query, detalleID).Scan(
		&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &tipo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle venta: %w", err)
	}
	d.TipoPropietario = entity.TipoPropietario(tipo)
	return &d, nil
}

// ListBySucursal lista ventas de una sucursal (cabeceras, sin detalles).
func (r *VentaRepo) ListBySucursal(sucursalID string, limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT id, sucursal_id, cliente_id, usuario_id, total, fecha, created_at
		FROM ventas WHERE sucursal_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, sucursalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.SucursalID, &v.ClienteID, &v.UsuarioID, &v.Total, &v.Fecha, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
