package inventario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSucursalRepo struct {
	sucursales map[string]*entity.Sucursal
}

func (f *fakeSucursalRepo) Create(*entity.Sucursal) error { return nil }
func (f *fakeSucursalRepo) Update(*entity.Sucursal) error { return nil }
func (f *fakeSucursalRepo) Delete(string) error           { return nil }
func (f *fakeSucursalRepo) List(int, int) ([]*entity.Sucursal, error) {
	return nil, nil
}
func (f *fakeSucursalRepo) GetByID(id string) (*entity.Sucursal, error) {
	return f.sucursales[id], nil
}

type fakeInvRepo struct {
	registros map[string]*entity.RegistroInventario // por ID

	listErr   error
	createErr error
	updateErr error

	listCalls   int
	createCalls int
	updateCalls int
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{registros: map[string]*entity.RegistroInventario{}}
}

func (f *fakeInvRepo) Create(r *entity.RegistroInventario) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	// Emula el índice único (producto, sucursal, tipo_propietario).
	for _, existente := range f.registros {
		if existente.ProductoID == r.ProductoID && existente.SucursalID == r.SucursalID &&
			existente.TipoPropietario == r.TipoPropietario {
			return domain.ErrDuplicate
		}
	}
	clon := *r
	f.registros[r.ID] = &clon
	return nil
}

func (f *fakeInvRepo) Update(r *entity.RegistroInventario) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	clon := *r
	f.registros[r.ID] = &clon
	return nil
}

func (f *fakeInvRepo) GetByID(id string) (*entity.RegistroInventario, error) {
	return f.registros[id], nil
}

func (f *fakeInvRepo) ListByProducto(productoID string) ([]*entity.RegistroInventario, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.RegistroInventario
	for _, r := range f.registros {
		if r.ProductoID == productoID {
			clon := *r
			out = append(out, &clon)
		}
	}
	return out, nil
}

func (f *fakeInvRepo) ListBySucursal(string, bool, int, int) ([]*entity.RegistroInventario, error) {
	return nil, nil
}

const (
	sucSinConsignacion = "11111111-1111-1111-1111-111111111111"
	sucConConsignacion = "22222222-2222-2222-2222-222222222222"
	productoID         = "33333333-3333-3333-3333-333333333333"
)

func buildReconciliador(invRepo *fakeInvRepo) *appinv.Reconciliador {
	sucRepo := &fakeSucursalRepo{sucursales: map[string]*entity.Sucursal{
		sucSinConsignacion: {ID: sucSinConsignacion, Nombre: "Centro", ManejaConsignacion: false},
		sucConConsignacion: {ID: sucConConsignacion, Nombre: "Norte", ManejaConsignacion: true},
	}}
	return appinv.NewReconciliador(sucRepo, invRepo)
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios create / update
// ──────────────────────────────────────────────────────────────────────────────

// Producto nuevo, sucursal sin consignación, cantidad 5 → crea PROPIO.
func TestUpsert_CreaRegistroConDefaultPropio(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)

	reg, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("5"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PropietarioPropio, reg.TipoPropietario,
		"sin tipo solicitado el registro se crea como PROPIO")
	assert.True(t, reg.Cantidad.Equal(d("5")))
	assert.Equal(t, 1, invRepo.createCalls)
	assert.Equal(t, 0, invRepo.updateCalls)
}

// Registro existente, misma clave, cantidad 5 → 8: update, mismo ID, un solo registro.
func TestUpsert_ActualizaRegistroExistente(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)

	creado, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("5"),
	})
	require.NoError(t, err)

	actualizado, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("8"),
	})
	require.NoError(t, err)

	assert.Equal(t, creado.ID, actualizado.ID, "el ID no cambia en un update")
	assert.True(t, actualizado.Cantidad.Equal(d("8")))
	assert.Len(t, invRepo.registros, 1, "exactamente un registro para la clave")
	assert.Equal(t, 1, invRepo.createCalls, "la segunda llamada debe ser update, no create")
	assert.Equal(t, 1, invRepo.updateCalls)
}

// Idempotencia: dos upserts con la misma cantidad dejan un único registro.
func TestUpsert_Idempotente(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)
	input := appinv.UpsertInput{ProductoID: productoID, SucursalID: sucSinConsignacion, Cantidad: d("5")}

	r1, err := rec.Upsert(context.Background(), input)
	require.NoError(t, err)
	r2, err := rec.Upsert(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, r1.ID, r2.ID)
	assert.True(t, r1.Cantidad.Equal(r2.Cantidad))
	assert.Len(t, invRepo.registros, 1)
}

// Sucursal con consignación: PROPIO y CONSIGNACION son registros separados.
func TestUpsert_ParticionPorPropietario(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)

	propio, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:      productoID,
		SucursalID:      sucConConsignacion,
		TipoPropietario: entity.PropietarioPropio,
		Cantidad:        d("10"),
	})
	require.NoError(t, err)

	consignado, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:      productoID,
		SucursalID:      sucConConsignacion,
		TipoPropietario: entity.PropietarioConsignacion,
		Cantidad:        d("4"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, propio.ID, consignado.ID)
	assert.Len(t, invRepo.registros, 2,
		"cada tipo de propietario tiene su propio registro cuando la sucursal particiona")
}

// Sucursal sin consignación: el propietario no discrimina; un registro
// existente se actualiza aunque el request no traiga tipo.
func TestUpsert_SinParticionMatcheaSoloPorSucursal(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)

	creado, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:      productoID,
		SucursalID:      sucSinConsignacion,
		TipoPropietario: entity.PropietarioPropio,
		Cantidad:        d("3"),
	})
	require.NoError(t, err)

	actualizado, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("7"),
	})
	require.NoError(t, err)
	assert.Equal(t, creado.ID, actualizado.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos
// ──────────────────────────────────────────────────────────────────────────────

// CONSIGNACION en sucursal que no la maneja: se rechaza antes de tocar el repo.
func TestUpsert_ConsignacionRechazadaSinLookup(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)

	_, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:      productoID,
		SucursalID:      sucSinConsignacion,
		TipoPropietario: entity.PropietarioConsignacion,
		Cantidad:        d("1"),
	})

	assert.ErrorIs(t, err, domain.ErrTipoPropietarioInvalido)
	assert.Equal(t, 0, invRepo.listCalls, "la validación falla antes de cualquier consulta")
	assert.Equal(t, 0, invRepo.createCalls)
}

// Fallo del lookup: se reporta como ErrInventarioLookup y NO se intenta crear.
func TestUpsert_LookupFallidoNoCrea(t *testing.T) {
	invRepo := newFakeInvRepo()
	invRepo.listErr = errors.New("timeout de red")
	rec := buildReconciliador(invRepo)

	_, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("5"),
	})

	assert.ErrorIs(t, err, domain.ErrInventarioLookup,
		"el fallo del lookup se distingue de la ausencia genuina del registro")
	assert.Equal(t, 0, invRepo.createCalls, "no debe intentarse un create tras lookup fallido")
}

// Fallo de escritura: se propaga como ErrInventarioEscritura sin reintento.
func TestUpsert_EscrituraFallida(t *testing.T) {
	invRepo := newFakeInvRepo()
	invRepo.createErr = errors.New("violación de constraint")
	rec := buildReconciliador(invRepo)

	_, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("5"),
	})

	assert.ErrorIs(t, err, domain.ErrInventarioEscritura)
	assert.Equal(t, 1, invRepo.createCalls, "un solo intento, sin retry")
}

func TestUpsert_CantidadNegativaRechazada(t *testing.T) {
	rec := buildReconciliador(newFakeInvRepo())

	_, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: sucSinConsignacion,
		Cantidad:   d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
}

func TestUpsert_SucursalInexistente(t *testing.T) {
	rec := buildReconciliador(newFakeInvRepo())

	_, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID: productoID,
		SucursalID: "99999999-9999-9999-9999-999999999999",
		Cantidad:   d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El flag crítico se deriva del mínimo salvo que venga forzado.
func TestUpsert_FlagCritico(t *testing.T) {
	invRepo := newFakeInvRepo()
	rec := buildReconciliador(invRepo)
	min := d("10")

	reg, err := rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:  productoID,
		SucursalID:  sucSinConsignacion,
		Cantidad:    d("5"),
		StockMinimo: &min,
	})
	require.NoError(t, err)
	assert.True(t, reg.EsCritico, "cantidad 5 bajo el mínimo 10 es crítico")

	forzado := false
	reg, err = rec.Upsert(context.Background(), appinv.UpsertInput{
		ProductoID:  productoID,
		SucursalID:  sucSinConsignacion,
		Cantidad:    d("5"),
		StockMinimo: &min,
		EsCritico:   &forzado,
	})
	require.NoError(t, err)
	assert.False(t, reg.EsCritico, "el flag forzado gana sobre el derivado")
}
