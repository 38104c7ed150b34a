package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetVentasResumen agrega las ventas de una sucursal (o todas si sucursalID es
// vacío) en el rango dado.
func (r *AnalyticsRepo) GetVentasResumen(ctx context.Context, sucursalID string, desde, hasta time.Time) (*repository.VentasResumen, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM ventas
		WHERE fecha >= $1 AND fecha < $2 AND ($3 = '' OR sucursal_id::text = $3)`
	var resumen repository.VentasResumen
	err := r.q.QueryRow(ctx, query, desde, hasta, sucursalID).Scan(&resumen.TotalVentas, &resumen.NumeroVentas)
	if err != nil {
		return nil, fmt.Errorf("resumen ventas: %w", err)
	}
	if resumen.NumeroVentas > 0 {
		resumen.TicketPromedio = resumen.TotalVentas.Div(decimal.NewFromInt(int64(resumen.NumeroVentas))).Round(2)
	}
	return &resumen, nil
}

// GetProductosTop devuelve los productos más vendidos por unidades.
func (r *AnalyticsRepo) GetProductosTop(ctx context.Context, sucursalID string, desde, hasta time.Time, limit int) ([]repository.ProductoTopResult, error) {
	query := `
		SELECT p.id, p.codigo, p.nombre,
		       COALESCE(SUM(dv.cantidad), 0) AS unidades,
		       COALESCE(SUM(dv.cantidad * dv.precio_unitario), 0) AS ingreso
		FROM detalles_venta dv
		JOIN ventas v ON v.id = dv.venta_id
		JOIN productos p ON p.id = dv.producto_id
		WHERE v.fecha >= $1 AND v.fecha < $2 AND ($3 = '' OR v.sucursal_id::text = $3)
		GROUP BY p.id, p.codigo, p.nombre
		ORDER BY unidades DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, desde, hasta, sucursalID, limit)
	if err != nil {
		return nil, fmt.Errorf("productos top: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductoTopResult
	for rows.Next() {
		var p repository.ProductoTopResult
		if err := rows.Scan(&p.ProductoID, &p.Codigo, &p.Nombre, &p.UnidadesVendidas, &p.IngresoBruto); err != nil {
			return nil, fmt.Errorf("scan producto top: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountStockCritico cuenta registros de inventario marcados como críticos.
func (r *AnalyticsRepo) CountStockCritico(ctx context.Context, sucursalID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM inventario
		WHERE es_critico = true AND ($1 = '' OR sucursal_id::text = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, sucursalID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock critico: %w", err)
	}
	return n, nil
}

// GetInventarioReporte devuelve las filas del reporte PDF de inventario.
func (r *AnalyticsRepo) GetInventarioReporte(ctx context.Context, sucursalID string, soloCriticos bool) ([]repository.InventarioReporteItem, error) {
	query := `
		SELECT p.codigo, p.nombre, i.tipo_propietario, i.cantidad, i.stock_minimo, i.es_critico
		FROM inventario i
		JOIN productos p ON p.id = i.producto_id
		WHERE i.sucursal_id = $1 AND ($2 = false OR i.es_critico = true)
		ORDER BY p.nombre, i.tipo_propietario`
	rows, err := r.q.Query(ctx, query, sucursalID, soloCriticos)
	if err != nil {
		return nil, fmt.Errorf("reporte inventario: %w", err)
	}
	defer rows.Close()
	var list []repository.InventarioReporteItem
	for rows.Next() {
		var it repository.InventarioReporteItem
		if err := rows.Scan(&it.Codigo, &it.Nombre, &it.TipoPropietario, &it.Cantidad, &it.StockMinimo, &it.EsCritico); err != nil {
			return nil, fmt.Errorf("scan fila reporte: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
