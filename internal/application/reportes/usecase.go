package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// InventarioPDFGenerator genera la representación PDF del reporte de
// inventario de una sucursal.
type InventarioPDFGenerator interface {
	GenerateInventarioPDF(
		ctx context.Context,
		sucursal *entity.Sucursal,
		generadoEn time.Time,
		soloCriticos bool,
		items []repository.InventarioReporteItem,
	) ([]byte, error)
}

// UseCase genera el reporte de inventario por sucursal en PDF.
type UseCase struct {
	sucursalRepo  repository.SucursalRepository
	analyticsRepo repository.AnalyticsRepository
	generator     InventarioPDFGenerator
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	sucursalRepo repository.SucursalRepository,
	analyticsRepo repository.AnalyticsRepository,
	generator InventarioPDFGenerator,
) *UseCase {
	return &UseCase{
		sucursalRepo:  sucursalRepo,
		analyticsRepo: analyticsRepo,
		generator:     generator,
	}
}

// InventarioPDF arma el reporte de inventario de la sucursal y devuelve los
// bytes del PDF junto con el nombre de archivo sugerido.
func (uc *UseCase) InventarioPDF(ctx context.Context, sucursalID string, soloCriticos bool) (pdfBytes []byte, filename string, err error) {
	sucursal, err := uc.sucursalRepo.GetByID(sucursalID)
	if err != nil {
		return nil, "", fmt.Errorf("reportes: obtener sucursal: %w", err)
	}
	if sucursal == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.analyticsRepo.GetInventarioReporte(ctx, sucursalID, soloCriticos)
	if err != nil {
		return nil, "", fmt.Errorf("reportes: consultar inventario: %w", err)
	}

	generadoEn := time.Now()
	pdfBytes, err = uc.generator.GenerateInventarioPDF(ctx, sucursal, generadoEn, soloCriticos, items)
	if err != nil {
		return nil, "", fmt.Errorf("reportes: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("inventario_%s.pdf", generadoEn.Format("20060102"))
	return pdfBytes, filename, nil
}
