package entity

import "time"

// Categoria agrupa productos.
type Categoria struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cliente de ventas.
type Cliente struct {
	ID        string
	Nombre    string
	Documento string // NIT o cédula
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Proveedor de compras.
type Proveedor struct {
	ID        string
	Nombre    string
	Documento string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
