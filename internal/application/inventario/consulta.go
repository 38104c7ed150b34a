package inventario

import (
	"context"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// ConsultaUseCase lecturas de inventario para los listados del back-office.
type ConsultaUseCase struct {
	invRepo repository.InventarioRepository
}

// NewConsultaUseCase construye el caso de uso de consulta.
func NewConsultaUseCase(invRepo repository.InventarioRepository) *ConsultaUseCase {
	return &ConsultaUseCase{invRepo: invRepo}
}

// ListByProducto devuelve los registros de un producto en todas las sucursales.
func (uc *ConsultaUseCase) ListByProducto(_ context.Context, productoID string) ([]dto.InventarioResponse, error) {
	registros, err := uc.invRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventarioResponse, 0, len(registros))
	for _, r := range registros {
		out = append(out, ToInventarioResponse(r))
	}
	return out, nil
}

// ListBySucursal devuelve los registros de una sucursal, opcionalmente solo
// los críticos, con paginación.
func (uc *ConsultaUseCase) ListBySucursal(_ context.Context, sucursalID string, soloCriticos bool, page dto.PageRequest) (*dto.InventarioListResponse, error) {
	page.DefaultPage()
	registros, err := uc.invRepo.ListBySucursal(sucursalID, soloCriticos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InventarioListResponse{
		Items: make([]dto.InventarioResponse, 0, len(registros)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range registros {
		out.Items = append(out.Items, ToInventarioResponse(r))
	}
	return out, nil
}

// ToInventarioResponse convierte la entidad al DTO de salida.
func ToInventarioResponse(r *entity.RegistroInventario) dto.InventarioResponse {
	return dto.InventarioResponse{
		ID:              r.ID,
		ProductoID:      r.ProductoID,
		SucursalID:      r.SucursalID,
		TipoPropietario: string(r.TipoPropietario),
		Cantidad:        r.Cantidad,
		StockMinimo:     r.StockMinimo,
		StockMaximo:     r.StockMaximo,
		EsCritico:       r.EsCritico,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
