package analytics

import (
	"context"
	"time"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

const productosTopLimit = 5

// DashboardUseCase arma las métricas del tablero a partir del repositorio
// de analítica.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetDashboard agrega ventas, productos top y stock crítico de una sucursal
// en el rango dado. sucursalID vacío agrega todas las sucursales.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, sucursalID string, desde, hasta time.Time) (*dto.DashboardResponse, error) {
	resumen, err := uc.analyticsRepo.GetVentasResumen(ctx, sucursalID, desde, hasta)
	if err != nil {
		return nil, err
	}

	top, err := uc.analyticsRepo.GetProductosTop(ctx, sucursalID, desde, hasta, productosTopLimit)
	if err != nil {
		return nil, err
	}

	criticos, err := uc.analyticsRepo.CountStockCritico(ctx, sucursalID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalVentas:    resumen.TotalVentas,
		NumeroVentas:   resumen.NumeroVentas,
		TicketPromedio: resumen.TicketPromedio,
		StockCritico:   criticos,
		ProductosTop:   make([]dto.ProductoTopDTO, 0, len(top)),
	}
	for _, p := range top {
		resp.ProductosTop = append(resp.ProductosTop, dto.ProductoTopDTO{
			ProductoID:       p.ProductoID,
			Codigo:           p.Codigo,
			Nombre:           p.Nombre,
			UnidadesVendidas: p.UnidadesVendidas,
			IngresoBruto:     p.IngresoBruto,
		})
	}
	return resp, nil
}
