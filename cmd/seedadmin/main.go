// seedadmin crea el usuario SUPER_ADMIN inicial del sistema.
//
// Uso: go run ./cmd/seedadmin
// Lee las credenciales de las env vars SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD
// y SEED_ADMIN_NOMBRE, además de la configuración de DB habitual.
// Si el email ya existe, no hace nada (idempotente).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/infrastructure/postgres"
	"github.com/jdrada/retail-backoffice/pkg/config"
)

func main() {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	nombre := os.Getenv("SEED_ADMIN_NOMBRE")
	if nombre == "" {
		nombre = "Administrador"
	}
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_PASSWORD debe tener al menos 8 caracteres")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewUsuarioRepository(pool)

	existente, err := repo.GetByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar usuario: %v\n", err)
		os.Exit(1)
	}
	if existente != nil {
		fmt.Printf("El usuario %s ya existe (rol %s), nada que hacer\n", email, existente.Rol)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	admin := &entity.Usuario{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          entity.RolSuperAdmin, // sin sucursal asignada: opera sobre todas
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			fmt.Printf("El usuario %s ya existe, nada que hacer\n", email)
			return
		}
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuario SUPER_ADMIN creado: %s (%s)\n", email, admin.ID)
}
