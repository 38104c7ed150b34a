package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// UsuarioUseCase casos de uso de administración de usuarios (solo roles
// administradores llegan aquí; el RBAC se aplica en el router).
type UsuarioUseCase struct {
	repo         repository.UsuarioRepository
	sucursalRepo repository.SucursalRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository, sucursalRepo repository.SucursalRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, sucursalRepo: sucursalRepo}
}

// Create crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe. ADMIN y VENDEDOR
// requieren sucursal asignada; SUPER_ADMIN opera sin sucursal.
func (uc *UsuarioUseCase) Create(in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	existing, _ := uc.repo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.Rol != entity.RolSuperAdmin {
		if in.SucursalID == nil {
			return nil, domain.ErrInvalidInput
		}
		sucursal, err := uc.sucursalRepo.GetByID(*in.SucursalID)
		if err != nil {
			return nil, err
		}
		if sucursal == nil {
			return nil, domain.ErrNotFound
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Rol:          in.Rol,
		SucursalID:   in.SucursalID,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(id string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	return toUsuarioResponse(usuario), nil
}

// Update actualiza un usuario; si llega password se rehashea.
func (uc *UsuarioUseCase) Update(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		usuario.Nombre = *in.Nombre
	}
	if in.Rol != nil {
		usuario.Rol = *in.Rol
	}
	if in.SucursalID != nil {
		usuario.SucursalID = in.SucursalID
	}
	if in.Estado != nil {
		usuario.Estado = *in.Estado
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	usuario.UpdatedAt = time.Now()
	if err := uc.repo.Update(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// List lista usuarios con paginación.
func (uc *UsuarioUseCase) List(page dto.PageRequest) (*dto.UsuarioListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UsuarioListResponse{
		Items: make([]dto.UsuarioResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, u := range items {
		out.Items = append(out.Items, *toUsuarioResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario.
func (uc *UsuarioUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		SucursalID: u.SucursalID,
		Estado:     u.Estado,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
