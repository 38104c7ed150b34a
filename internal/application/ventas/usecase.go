// Package ventas implementa la creación de ventas y las devoluciones de
// venta. Comparte con compras el mismo resolver de tipo de propietario y el
// mismo validador de cantidades, de modo que el veredicto para una línea es
// idéntico en ambos flujos.
package ventas

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

// DetalleInput línea de venta ya parseada.
type DetalleInput struct {
	ProductoID      string
	Cantidad        decimal.Decimal
	PrecioUnitario  decimal.Decimal
	TipoPropietario entity.TipoPropietario
}

// VentaInput entrada para crear una venta.
type VentaInput struct {
	SucursalID string
	ClienteID  *string
	UsuarioID  string
	Detalles   []DetalleInput
}

// DevolucionInput entrada para devolver una línea de venta (entra stock).
type DevolucionInput struct {
	DetalleID       string
	Cantidad        decimal.Decimal
	TipoPropietario entity.TipoPropietario // vacío = el de la línea original
	Motivo          string
	UsuarioID       string
}

// UseCase crea ventas y devoluciones de venta de forma transaccional.
type UseCase struct {
	txRunner      appinv.TxRunner
	reconciliador *appinv.Reconciliador
	productoRepo  repository.ProductoRepository
	sucursalRepo  repository.SucursalRepository
	clienteRepo   repository.ClienteRepository
	ventaRepo     repository.VentaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner appinv.TxRunner,
	reconciliador *appinv.Reconciliador,
	productoRepo repository.ProductoRepository,
	sucursalRepo repository.SucursalRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		reconciliador: reconciliador,
		productoRepo:  productoRepo,
		sucursalRepo:  sucursalRepo,
		clienteRepo:   clienteRepo,
		ventaRepo:     ventaRepo,
	}
}

// Create valida todas las líneas antes de escribir y persiste venta +
// descuento de inventario en una transacción. Si algún producto no tiene
// stock suficiente, toda la venta se revierte.
func (uc *UseCase) Create(ctx context.Context, input VentaInput) (*entity.Venta, error) {
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
	if input.ClienteID != nil {
		cliente, err := uc.clienteRepo.GetByID(*input.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:         uuid.New().String(),
		SucursalID: input.SucursalID,
		ClienteID:  input.ClienteID,
		UsuarioID:  input.UsuarioID,
		Fecha:      now,
		CreatedAt:  now,
		Total:      decimal.Zero,
	}

	for _, det := range input.Detalles {
		producto, err := uc.productoRepo.GetByID(det.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, det.ProductoID)
		}
		if err := dominv.ValidarCantidad(producto, det.Cantidad); err != nil {
			return nil, err
		}
		tipo, err := dominv.ResolverTipoPropietario(sucursal.ManejaConsignacion, det.TipoPropietario)
		if err != nil {
			return nil, err
		}
		precio := det.PrecioUnitario
		if precio.IsZero() {
			precio = producto.PrecioVenta
		}
		if precio.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		venta.Detalles = append(venta.Detalles, entity.DetalleVenta{
			ID:              uuid.New().String(),
			VentaID:         venta.ID,
			ProductoID:      det.ProductoID,
			Cantidad:        det.Cantidad,
			PrecioUnitario:  precio,
			TipoPropietario: tipo,
		})
		venta.Total = venta.Total.Add(det.Cantidad.Mul(precio))
	}

	err = uc.txRunner.Run(ctx, func(repos appinv.TxRepos) error {
		if err := repos.Ventas.Create(venta); err != nil {
			return err
		}
		for _, det := range venta.Detalles {
			if _, err := uc.reconciliador.Ajustar(ctx, repos.Inventario, sucursal,
				det.ProductoID, det.TipoPropietario, det.Cantidad.Neg()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return venta, nil
}

// DevolverDetalle registra una devolución de venta: el cliente regresa
// producto y el stock vuelve a la sucursal.
func (uc *UseCase) DevolverDetalle(ctx context.Context, ventaID string, input DevolucionInput) (*entity.Devolucion, error) {
	venta, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, fmt.Errorf("%w: venta", domain.ErrNotFound)
	}
	detalle, err := uc.ventaRepo.GetDetalle(input.DetalleID)
	if err != nil {
		return nil, err
	}
	if detalle == nil || detalle.VentaID != ventaID {
		return nil, fmt.Errorf("%w: detalle de venta", domain.ErrNotFound)
	}
	sucursal, err := uc.sucursalRepo.GetByID(venta.SucursalID)
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
		Tipo:            entity.DevolucionVenta,
		DetalleID:       detalle.ID,
		ProductoID:      detalle.ProductoID,
		SucursalID:      venta.SucursalID,
		TipoPropietario: tipo,
		Cantidad:        input.Cantidad,
		Motivo:          input.Motivo,
		UsuarioID:       input.UsuarioID,
		Fecha:           now,
		CreatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(repos appinv.TxRepos) error {
		devuelto, err := repos.Devoluciones.TotalDevuelto(entity.DevolucionVenta, detalle.ID)
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
			detalle.ProductoID, tipo, input.Cantidad)
		return err
	})
	if err != nil {
		return nil, err
	}
	return devolucion, nil
}

// GetByID obtiene una venta con detalles.
func (uc *UseCase) GetByID(_ context.Context, id string) (*entity.Venta, error) {
	return uc.ventaRepo.GetByID(id)
}

// List lista ventas por sucursal.
func (uc *UseCase) List(_ context.Context, sucursalID string, limit, offset int) ([]*entity.Venta, error) {
	return uc.ventaRepo.ListBySucursal(sucursalID, limit, offset)
}
