package dto

import "github.com/shopspring/decimal"

// ProductoTopDTO producto más vendido en el rango consultado.
type ProductoTopDTO struct {
	ProductoID       string          `json:"producto_id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	UnidadesVendidas decimal.Decimal `json:"unidades_vendidas"`
	IngresoBruto     decimal.Decimal `json:"ingreso_bruto"`
}

// DashboardResponse métricas del tablero principal.
type DashboardResponse struct {
	TotalVentas    decimal.Decimal  `json:"total_ventas"`
	NumeroVentas   int              `json:"numero_ventas"`
	TicketPromedio decimal.Decimal  `json:"ticket_promedio"`
	StockCritico   int              `json:"stock_critico"`
	ProductosTop   []ProductoTopDTO `json:"productos_top"`
}
