package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente  = errors.New("stock insuficiente")

	// Errores del núcleo de inventario. Las validaciones de tipo de
	// propietario y cantidad se resuelven antes de cualquier escritura.
	ErrTipoPropietarioInvalido = errors.New("tipo de propietario no permitido en esta sucursal")
	ErrCantidadInvalida        = errors.New("cantidad inválida")
	ErrInventarioEscritura     = errors.New("error al escribir inventario")
	ErrInventarioLookup        = errors.New("error al consultar inventario existente")
)
