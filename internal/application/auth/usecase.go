package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
	"github.com/jdrada/retail-backoffice/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación (login). El alta de usuarios vive
// en usecase.UsuarioUseCase y requiere rol administrador.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT con rol y sucursal y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrForbidden
	}

	sucursalID := ""
	if usuario.SucursalID != nil {
		sucursalID = *usuario.SucursalID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, sucursalID,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:         usuario.ID,
			Email:      usuario.Email,
			Nombre:     usuario.Nombre,
			Rol:        usuario.Rol,
			SucursalID: usuario.SucursalID,
			Estado:     usuario.Estado,
			CreatedAt:  usuario.CreatedAt,
			UpdatedAt:  usuario.UpdatedAt,
		},
	}, nil
}
