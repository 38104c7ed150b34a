package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// SucursalUseCase casos de uso CRUD para sucursales. El flag de consignación
// que se edita aquí gobierna el resolver de tipo de propietario en todos los
// flujos de inventario.
type SucursalUseCase struct {
	repo repository.SucursalRepository
}

// NewSucursalUseCase construye el caso de uso.
func NewSucursalUseCase(repo repository.SucursalRepository) *SucursalUseCase {
	return &SucursalUseCase{repo: repo}
}

// Create crea una sucursal.
func (uc *SucursalUseCase) Create(in dto.CreateSucursalRequest) (*dto.SucursalResponse, error) {
	now := time.Now()
	sucursal := &entity.Sucursal{
		ID:                 uuid.New().String(),
		Nombre:             in.Nombre,
		Direccion:          in.Direccion,
		TipoNegocioID:      in.TipoNegocioID,
		ManejaConsignacion: in.ManejaConsignacion,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(sucursal); err != nil {
		return nil, err
	}
	return toSucursalResponse(sucursal), nil
}

// GetByID obtiene una sucursal por ID.
func (uc *SucursalUseCase) GetByID(id string) (*dto.SucursalResponse, error) {
	sucursal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, nil
	}
	return toSucursalResponse(sucursal), nil
}

// Update actualiza una sucursal.
func (uc *SucursalUseCase) Update(id string, in dto.UpdateSucursalRequest) (*dto.SucursalResponse, error) {
	sucursal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		sucursal.Nombre = *in.Nombre
	}
	if in.Direccion != nil {
		sucursal.Direccion = *in.Direccion
	}
	if in.TipoNegocioID != nil {
		sucursal.TipoNegocioID = in.TipoNegocioID
	}
	if in.ManejaConsignacion != nil {
		sucursal.ManejaConsignacion = *in.ManejaConsignacion
	}
	sucursal.UpdatedAt = time.Now()
	if err := uc.repo.Update(sucursal); err != nil {
		return nil, err
	}
	return toSucursalResponse(sucursal), nil
}

// List lista sucursales con paginación.
func (uc *SucursalUseCase) List(page dto.PageRequest) (*dto.SucursalListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SucursalListResponse{
		Items: make([]dto.SucursalResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range items {
		out.Items = append(out.Items, *toSucursalResponse(s))
	}
	return out, nil
}

// Delete elimina una sucursal.
func (uc *SucursalUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toSucursalResponse(s *entity.Sucursal) *dto.SucursalResponse {
	return &dto.SucursalResponse{
		ID:                 s.ID,
		Nombre:             s.Nombre,
		Direccion:          s.Direccion,
		TipoNegocioID:      s.TipoNegocioID,
		ManejaConsignacion: s.ManejaConsignacion,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
