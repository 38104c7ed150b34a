package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

var _ repository.DevolucionRepository = (*DevolucionRepo)(nil)

// DevolucionRepo implementación del puerto DevolucionRepository sobre PostgreSQL.
type DevolucionRepo struct {
	q Querier
}

// NewDevolucionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDevolucionRepository(q Querier) *DevolucionRepo {
	return &DevolucionRepo{q: q}
}

// Create persiste una devolución.
func (r *DevolucionRepo) Create(d *entity.Devolucion) error {
	query := `
		INSERT INTO devoluciones (id, tipo, detalle_id, producto_id, sucursal_id, tipo_propietario, cantidad, motivo, usuario_id, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Tipo, d.DetalleID, d.ProductoID, d.SucursalID, string(d.TipoPropietario),
		d.Cantidad, d.Motivo, d.UsuarioID, d.Fecha, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert devolucion: %w", err)
	}
	return nil
}

// TotalDevuelto suma las devoluciones ya registradas contra un detalle. Dentro
// de la tx de TxRunner esta suma y el insert posterior son atómicos.
func (r *DevolucionRepo) TotalDevuelto(tipo, detalleID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(cantidad), 0) FROM devoluciones
		WHERE tipo = $1 AND detalle_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, tipo, detalleID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total devuelto: %w", err)
	}
	return total, nil
}

// ListByDetalle lista las devoluciones registradas contra un detalle.
func (r *DevolucionRepo) ListByDetalle(tipo, detalleID string) ([]*entity.Devolucion, error) {
	query := `
		SELECT id, tipo, detalle_id, producto_id, sucursal_id, tipo_propietario, cantidad, motivo, usuario_id, fecha, created_at
		FROM devoluciones WHERE tipo = $1 AND detalle_id = $2 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, tipo, detalleID)
	if err != nil {
		return nil, fmt.Errorf("list devoluciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Devolucion
	for rows.Next() {
		var d entity.Devolucion
		var tp string
		if err := rows.Scan(&d.ID, &d.Tipo, &d.DetalleID, &d.ProductoID, &d.SucursalID, &tp,
			&d.Cantidad, &d.Motivo, &d.UsuarioID, &d.Fecha, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan devolucion: %w", err)
		}
		d.TipoPropietario = entity.TipoPropietario(tp)
		list = append(list, &d)
	}
	return list, rows.Err()
}
