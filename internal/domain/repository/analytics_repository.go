package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// VentasResumen métricas agregadas de ventas en un rango de fechas.
type VentasResumen struct {
	TotalVentas    decimal.Decimal
	NumeroVentas   int
	TicketPromedio decimal.Decimal
}

// ProductoTopResult resultado crudo de la consulta de productos más vendidos.
type ProductoTopResult struct {
	ProductoID       string
	Codigo           string
	Nombre           string
	UnidadesVendidas decimal.Decimal
	IngresoBruto     decimal.Decimal
}

// InventarioReporteItem fila del reporte de inventario por sucursal.
type InventarioReporteItem struct {
	Codigo          string
	Nombre          string
	TipoPropietario string
	Cantidad        decimal.Decimal
	StockMinimo     *decimal.Decimal
	EsCritico       bool
}

// AnalyticsRepository define las consultas de lectura para dashboard y
// reportes. Las implementaciones son read-only.
type AnalyticsRepository interface {
	// GetVentasResumen agrega las ventas de una sucursal (o todas si
	// sucursalID es vacío) en el rango dado.
	GetVentasResumen(ctx context.Context, sucursalID string, desde, hasta time.Time) (*VentasResumen, error)

	// GetProductosTop devuelve los productos más vendidos por unidades.
	GetProductosTop(ctx context.Context, sucursalID string, desde, hasta time.Time, limit int) ([]ProductoTopResult, error)

	// CountStockCritico cuenta registros de inventario bajo su mínimo.
	CountStockCritico(ctx context.Context, sucursalID string) (int, error)

	// GetInventarioReporte devuelve las filas del reporte PDF de inventario.
	GetInventarioReporte(ctx context.Context, sucursalID string, soloCriticos bool) ([]InventarioReporteItem, error)
}
