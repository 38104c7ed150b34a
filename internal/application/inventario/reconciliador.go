// Package inventario implementa el reconciliador de inventario: el único
// punto del sistema que decide entre crear o actualizar un registro de stock
// para la tupla (producto, sucursal, tipo de propietario).
package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	dominv "github.com/jdrada/retail-backoffice/internal/domain/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// UpsertInput entrada del reconciliador. TipoPropietario puede venir vacío;
// se resuelve contra la capacidad de la sucursal (PROPIO por defecto).
type UpsertInput struct {
	ProductoID      string
	SucursalID      string
	TipoPropietario entity.TipoPropietario
	Cantidad        decimal.Decimal
	StockMinimo     *decimal.Decimal
	StockMaximo     *decimal.Decimal
	EsCritico       *bool // forzar el flag; nil = derivar del mínimo
}

// Reconciliador implementa el upsert de inventario por lookup-then-write: la
// persistencia no expone upsert atómico por clave natural, así que se listan
// los registros del producto, se filtra en memoria y se decide crear o
// actualizar. La ventana entre lectura y escritura no es atómica: dos
// reconciliaciones concurrentes sobre la misma clave pueden intentar ambas un
// create; el índice único (producto_id, sucursal_id, tipo_propietario)
// rechaza la segunda y el error se propaga sin reintento.
type Reconciliador struct {
	sucursalRepo repository.SucursalRepository
	invRepo      repository.InventarioRepository
}

// NewReconciliador construye el reconciliador.
func NewReconciliador(sucursalRepo repository.SucursalRepository, invRepo repository.InventarioRepository) *Reconciliador {
	return &Reconciliador{sucursalRepo: sucursalRepo, invRepo: invRepo}
}

// Upsert resuelve la sucursal y reconcilia el registro fuera de transacción
// (flujo de edición directa de inventario).
func (r *Reconciliador) Upsert(ctx context.Context, input UpsertInput) (*entity.RegistroInventario, error) {
	sucursal, err := r.sucursalRepo.GetByID(input.SucursalID)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, domain.ErrNotFound
	}
	return r.UpsertConCapacidad(ctx, r.invRepo, sucursal.ManejaConsignacion, input)
}

// UpsertConCapacidad reconcilia usando el repositorio y la capacidad de
// sucursal provistos por el caller (mismo patrón que los flujos
// transaccionales de compras/ventas, que resuelven la sucursal una sola vez
// por operación, no por línea).
func (r *Reconciliador) UpsertConCapacidad(
	_ context.Context,
	invRepo repository.InventarioRepository,
	manejaConsignacion bool,
	input UpsertInput,
) (*entity.RegistroInventario, error) {
	tipo, err := dominv.ResolverTipoPropietario(manejaConsignacion, input.TipoPropietario)
	if err != nil {
		return nil, err
	}
	if input.Cantidad.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad en inventario no puede ser negativa", domain.ErrCantidadInvalida)
	}
	if input.StockMinimo != nil && input.StockMinimo.IsNegative() {
		return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrCantidadInvalida)
	}
	if input.StockMaximo != nil && input.StockMaximo.IsNegative() {
		return nil, fmt.Errorf("%w: stock máximo negativo", domain.ErrCantidadInvalida)
	}

	// Lookup: una sola llamada por producto; el filtrado por sucursal (y por
	// propietario solo cuando la sucursal particiona) se hace aquí. Un fallo
	// del lookup se reporta como tal y NO se trata como ausencia: tratarlo
	// como "no encontrado" enmascararía el error y produciría un create
	// duplicado contra el índice único.
	registros, err := invRepo.ListByProducto(input.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInventarioLookup, err)
	}
	existente := BuscarRegistro(registros, input.SucursalID, tipo, manejaConsignacion)

	now := time.Now()
	if existente != nil {
		// Update: solo campos mutables; la clave natural nunca se reescribe.
		existente.Cantidad = input.Cantidad
		existente.StockMinimo = input.StockMinimo
		existente.StockMaximo = input.StockMaximo
		if input.EsCritico != nil {
			existente.EsCritico = *input.EsCritico
		} else {
			existente.EsCritico = existente.CalcularCritico()
		}
		existente.UpdatedAt = now
		if err := invRepo.Update(existente); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInventarioEscritura, err)
		}
		return existente, nil
	}

	nuevo := &entity.RegistroInventario{
		ID:              uuid.New().String(),
		ProductoID:      input.ProductoID,
		SucursalID:      input.SucursalID,
		TipoPropietario: tipo,
		Cantidad:        input.Cantidad,
		StockMinimo:     input.StockMinimo,
		StockMaximo:     input.StockMaximo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.EsCritico != nil {
		nuevo.EsCritico = *input.EsCritico
	} else {
		nuevo.EsCritico = nuevo.CalcularCritico()
	}
	if err := invRepo.Create(nuevo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInventarioEscritura, err)
	}
	return nuevo, nil
}

// Ajustar aplica un delta (positivo o negativo) a la cantidad vigente de la
// clave y reconcilia con el nuevo total. Es el camino que usan compras,
// ventas y devoluciones; la edición directa de inventario usa Upsert, que
// reemplaza la cantidad completa. Un delta que dejaría la cantidad negativa
// falla con ErrStockInsuficiente.
func (r *Reconciliador) Ajustar(
	ctx context.Context,
	invRepo repository.InventarioRepository,
	sucursal *entity.Sucursal,
	productoID string,
	tipo entity.TipoPropietario,
	delta decimal.Decimal,
) (*entity.RegistroInventario, error) {
	registros, err := invRepo.ListByProducto(productoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInventarioLookup, err)
	}
	actual := decimal.Zero
	var minimo, maximo *decimal.Decimal
	if existente := BuscarRegistro(registros, sucursal.ID, tipo, sucursal.ManejaConsignacion); existente != nil {
		actual = existente.Cantidad
		minimo = existente.StockMinimo
		maximo = existente.StockMaximo
	}
	nuevo := actual.Add(delta)
	if nuevo.IsNegative() {
		return nil, fmt.Errorf("%w: disponible %s, requerido %s", domain.ErrStockInsuficiente, actual, delta.Abs())
	}
	return r.UpsertConCapacidad(ctx, invRepo, sucursal.ManejaConsignacion, UpsertInput{
		ProductoID:      productoID,
		SucursalID:      sucursal.ID,
		TipoPropietario: tipo,
		Cantidad:        nuevo,
		StockMinimo:     minimo,
		StockMaximo:     maximo,
	})
}

// BuscarRegistro localiza el registro por sucursal; el tipo de propietario
// solo discrimina cuando la sucursal particiona inventario. Lo usan también
// los flujos de compras/ventas para leer la cantidad vigente antes de
// reconciliar.
func BuscarRegistro(
	registros []*entity.RegistroInventario,
	sucursalID string,
	tipo entity.TipoPropietario,
	manejaConsignacion bool,
) *entity.RegistroInventario {
	for _, reg := range registros {
		if reg.SucursalID != sucursalID {
			continue
		}
		if manejaConsignacion && reg.TipoPropietario != tipo {
			continue
		}
		return reg
	}
	return nil
}
