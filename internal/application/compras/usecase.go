// Package compras implementa la creación de compras a proveedor y sus
// devoluciones. Toda línea pasa por el resolver de tipo de propietario y el
// validador de cantidades antes de emitir cualquier escritura.
package compras

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	dominv "github.com/jdrada/retail-backoffice/internal/domain/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// DetalleInput línea de compra ya parseada.
type DetalleInput struct {
	ProductoID      string
	Cantidad        decimal.Decimal
	PrecioUnitario  decimal.Decimal
	TipoPropietario entity.TipoPropietario
}

// CompraInput entrada para crear una compra.
type CompraInput struct {
	SucursalID  string
	ProveedorID string
	UsuarioID   string
	Detalles    []DetalleInput
}

// DevolucionInput entrada para devolver una línea de compra al proveedor.
type DevolucionInput struct {
	DetalleID       string
	Cantidad        decimal.Decimal
	TipoPropietario entity.TipoPropietario // vacío = el de la línea original
	Motivo          string
	UsuarioID       string
}

// UseCase crea compras y devoluciones de compra de forma transaccional: el
// documento y el ajuste de inventario se confirman o revierten juntos.
type UseCase struct {
	txRunner      appinv.TxRunner
	reconciliador *appinv.Reconciliador
	productoRepo  repository.ProductoRepository
	sucursalRepo  repository.SucursalRepository
	proveedorRepo repository.ProveedorRepository
	compraRepo    repository.CompraRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner appinv.TxRunner,
	reconciliador *appinv.Reconciliador,
	productoRepo repository.ProductoRepository,
	sucursalRepo repository.SucursalRepository,
	proveedorRepo repository.ProveedorRepository,
	compraRepo repository.CompraRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		reconciliador: reconciliador,
		productoRepo:  productoRepo,
		sucursalRepo:  sucursalRepo,
		proveedorRepo: proveedorRepo,
		compraRepo:    compraRepo,
	}
}

// Create valida todas las líneas (resolver + validador, sin tocar la DB de
// escritura) y después persiste compra + inventario en una transacción. La
// capacidad de consignación de la sucursal se resuelve una sola vez por
// operación, no por línea.
func (uc *UseCase) Create(ctx context.Context, input CompraInput) (*entity.Compra, error) {
	if len(input.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	sucursal, err := uc.sucursalRepo.GetByID(input.SucursalID)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrNotFound)
	}
	proveedor, err := uc.proveedorRepo.GetByID(input.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, fmt.Errorf("%w: proveedor", domain.ErrNotFound)
	}

	now := time.Now()
	compra := &entity.Compra{
		ID:          uuid.New().String(),
		SucursalID:  input.SucursalID,
		ProveedorID: input.ProveedorID,
		UsuarioID:   input.UsuarioID,
		Fecha:       now,
		CreatedAt:   now,
		Total:       decimal.Zero,
	}

	// Fase de validación: todo error de línea se detecta antes de escribir.
	productos := make(map[string]*entity.Producto, len(input.Detalles))
	for _, det := range input.Detalles {
		producto, err := uc.productoRepo.GetByID(det.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, det.ProductoID)
		}
		productos[det.ProductoID] = producto

		if err := dominv.ValidarCantidad(producto, det.Cantidad); err != nil {
			return nil, err
		}
		tipo, err := dominv.ResolverTipoPropietario(sucursal.ManejaConsignacion, det.TipoPropietario)
		if err != nil {
			return nil, err
		}
		if det.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		compra.Detalles = append(compra.Detalles, entity.DetalleCompra{
			ID:              uuid.New().String(),
			CompraID:        compra.ID,
			ProductoID:      det.ProductoID,
			Cantidad:        det.Cantidad,
			PrecioUnitario:  det.PrecioUnitario,
			TipoPropietario: tipo,
		})
		compra.Total = compra.Total.Add(det.Cantidad.Mul(det.PrecioUnitario))
	}

	// Fase transaccional: primero el documento, después el inventario.
	err = uc.txRunner.Run(ctx, func(repos appinv.TxRepos) error {
		if err := repos.Compras.Create(compra); err != nil {
			return err
		}
		for _, det := range compra.Detalles {
			if _, err := uc.reconciliador.Ajustar(ctx, repos.Inventario, sucursal,
				det.ProductoID, det.TipoPropietario, det.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return compra, nil
}

// DevolverDetalle registra una devolución de compra: sale stock de la
// sucursal de vuelta al proveedor. La cantidad acumulada devuelta nunca puede
// exceder la cantidad original de la línea.
func (uc *UseCase) DevolverDetalle(ctx context.Context, compraID string, input DevolucionInput) (*entity.Devolucion, error) {
	compra, err := uc.compraRepo.GetByID(compraID)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, fmt.Errorf("%w: compra", domain.ErrNotFound)
	}
	detalle, err := uc.compraRepo.GetDetalle(input.DetalleID)
	if err != nil {
		return nil, err
	}
	if detalle == nil || detalle.CompraID != compraID {
		return nil, fmt.Errorf("%w: detalle de compra", domain.ErrNotFound)
	}
	sucursal, err := uc.sucursalRepo.GetByID(compra.SucursalID)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrNotFound)
	}
	producto, err := uc.productoRepo.GetByID(detalle.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}

	// El tipo solicitado se valida contra la sucursal; si no viene, hereda el
	// de la línea original. Una petición inválida falla, no se sobreescribe.
	solicitado := input.TipoPropietario
	if solicitado == "" {
		solicitado = detalle.TipoPropietario
	}
	tipo, err := dominv.ResolverTipoPropietario(sucursal.ManejaConsignacion, solicitado)
	if err != nil {
		return nil, err
	}

	if err := dominv.ValidarCantidadDevolucion(producto, input.Cantidad, detalle.Cantidad); err != nil {
		return nil, err
	}

	now := time.Now()
	devolucion := &entity.Devolucion{
		ID:              uuid.New().String(),
		Tipo:            entity.DevolucionCompra,
		DetalleID:       detalle.ID,
		ProductoID:      detalle.ProductoID,
		SucursalID:      compra.SucursalID,
		TipoPropietario: tipo,
		Cantidad:        input.Cantidad,
		Motivo:          input.Motivo,
		UsuarioID:       input.UsuarioID,
		Fecha:           now,
		CreatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(repos appinv.TxRepos) error {
		// El acumulado se verifica dentro de la tx para cerrar la ventana
		// entre dos devoluciones concurrentes del mismo detalle.
		devuelto, err := repos.Devoluciones.TotalDevuelto(entity.DevolucionCompra, detalle.ID)
		if err != nil {
			return err
		}
		if devuelto.Add(input.Cantidad).GreaterThan(detalle.Cantidad) {
			return fmt.Errorf("%w: ya se devolvieron %s de %s", domain.ErrCantidadInvalida,
				devuelto, detalle.Cantidad)
		}
		if err := repos.Devoluciones.Create(devolucion); err != nil {
			return err
		}
		_, err = uc.reconciliador.Ajustar(ctx, repos.Inventario, sucursal,
			detalle.ProductoID, tipo, input.Cantidad.Neg())
		return err
	})
	if err != nil {
		return nil, err
	}
	return devolucion, nil
}

// GetByID obtiene una compra con detalles.
func (uc *UseCase) GetByID(_ context.Context, id string) (*entity.Compra, error) {
	return uc.compraRepo.GetByID(id)
}

// List lista compras por sucursal.
func (uc *UseCase) List(_ context.Context, sucursalID string, limit, offset int) ([]*entity.Compra, error) {
	return uc.compraRepo.ListBySucursal(sucursalID, limit, offset)
}
