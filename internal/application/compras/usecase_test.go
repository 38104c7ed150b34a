package compras_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdrada/retail-backoffice/internal/application/compras"
	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSucursalRepo struct{ sucursales map[string]*entity.Sucursal }

func (f *fakeSucursalRepo) Create(*entity.Sucursal) error               { return nil }
func (f *fakeSucursalRepo) Update(*entity.Sucursal) error               { return nil }
func (f *fakeSucursalRepo) Delete(string) error                         { return nil }
func (f *fakeSucursalRepo) List(int, int) ([]*entity.Sucursal, error) { return nil, nil }
func (f *fakeSucursalRepo) GetByID(id string) (*entity.Sucursal, error) { return f.sucursales[id], nil }

type fakeProductoRepo struct{ productos map[string]*entity.Producto }

func (f *fakeProductoRepo) Create(*entity.Producto) error                        { return nil }
func (f *fakeProductoRepo) Update(*entity.Producto) error                        { return nil }
func (f *fakeProductoRepo) Delete(string) error                                  { return nil }
func (f *fakeProductoRepo) GetByCodigo(string) (*entity.Producto, error) { return nil, nil }
func (f *fakeProductoRepo) List(string, int, int) ([]*entity.Producto, error) { return nil, nil }
func (f *fakeProductoRepo) Count(string) (int, error) { return 0, nil }
func (f *fakeProductoRepo) GetByID(id string) (*entity.Producto, error) { return f.productos[id], nil }

type fakeProveedorRepo struct{ proveedores map[string]*entity.Proveedor }

func (f *fakeProveedorRepo) Create(*entity.Proveedor) error                  { return nil }
func (f *fakeProveedorRepo) Update(*entity.Proveedor) error                  { return nil }
func (f *fakeProveedorRepo) Delete(string) error                             { return nil }
func (f *fakeProveedorRepo) GetByDocumento(string) (*entity.Proveedor, error) { return nil, nil }
func (f *fakeProveedorRepo) List(int, int) ([]*entity.Proveedor, error) { return nil, nil }
func (f *fakeProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return f.proveedores[id], nil
}

type fakeCompraRepo struct {
	compras     map[string]*entity.Compra
	createCalls int
}

func newFakeCompraRepo() *fakeCompraRepo {
	return &fakeCompraRepo{compras: map[string]*entity.Compra{}}
}

func (f *fakeCompraRepo) Create(c *entity.Compra) error {
	f.createCalls++
	clon := *c
	f.compras[c.ID] = &clon
	return nil
}
func (f *fakeCompraRepo) GetByID(id string) (*entity.Compra, error) { return f.compras[id], nil }
func (f *fakeCompraRepo) GetDetalle(detalleID string) (*entity.DetalleCompra, error) {
	for _, c := range f.compras {
		for i := range c.Detalles {
			if c.Detalles[i].ID == detalleID {
				return &c.Detalles[i], nil
			}
		}
	}
	return nil, nil
}
func (f *fakeCompraRepo) ListBySucursal(string, int, int) ([]*entity.Compra, error) {
	return nil, nil
}

type fakeDevolucionRepo struct{ devoluciones []*entity.Devolucion }

func (f *fakeDevolucionRepo) Create(d *entity.Devolucion) error {
	clon := *d
	f.devoluciones = append(f.devoluciones, &clon)
	return nil
}
func (f *fakeDevolucionRepo) TotalDevuelto(tipo, detalleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.devoluciones {
		if d.Tipo == tipo && d.DetalleID == detalleID {
			total = total.Add(d.Cantidad)
		}
	}
	return total, nil
}
func (f *fakeDevolucionRepo) ListByDetalle(string, string) ([]*entity.Devolucion, error) {
	return nil, nil
}

type fakeInvRepo struct {
	registros   map[string]*entity.RegistroInventario
	createCalls int
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{registros: map[string]*entity.RegistroInventario{}}
}

func (f *fakeInvRepo) Create(r *entity.RegistroInventario) error {
	f.createCalls++
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
	clon := *r
	f.registros[r.ID] = &clon
	return nil
}
func (f *fakeInvRepo) GetByID(id string) (*entity.RegistroInventario, error) {
	return f.registros[id], nil
}
func (f *fakeInvRepo) ListByProducto(productoID string) ([]*entity.RegistroInventario, error) {
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

// fakeTxRunner ejecuta el callback directamente con los fakes; no hay
// rollback real, los tests solo verifican el error propagado.
type fakeTxRunner struct{ repos appinv.TxRepos }

func (f *fakeTxRunner) Run(_ context.Context, fn func(appinv.TxRepos) error) error {
	return fn(f.repos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	sucID         = "11111111-1111-1111-1111-111111111111"
	sucConsigID   = "22222222-2222-2222-2222-222222222222"
	prodPiezaID   = "33333333-3333-3333-3333-333333333333"
	prodMetroID   = "44444444-4444-4444-4444-444444444444"
	proveedorID   = "55555555-5555-5555-5555-555555555555"
	usuarioTestID = "66666666-6666-6666-6666-666666666666"
)

type fixture struct {
	uc         *compras.UseCase
	compraRepo *fakeCompraRepo
	invRepo    *fakeInvRepo
	devolRepo  *fakeDevolucionRepo
}

func build(t *testing.T) *fixture {
	t.Helper()
	sucRepo := &fakeSucursalRepo{sucursales: map[string]*entity.Sucursal{
		sucID:       {ID: sucID, Nombre: "Centro", ManejaConsignacion: false},
		sucConsigID: {ID: sucConsigID, Nombre: "Norte", ManejaConsignacion: true},
	}}
	prodRepo := &fakeProductoRepo{productos: map[string]*entity.Producto{
		prodPiezaID: {
			ID: prodPiezaID, Codigo: "CAM-001", Nombre: "Camisa",
			UnidadMedida: entity.UnidadPieza, PermiteFracciones: false,
			PrecioVenta: d("25000"),
		},
		prodMetroID: {
			ID: prodMetroID, Codigo: "TEL-001", Nombre: "Tela lino",
			UnidadMedida: entity.UnidadMetro, PermiteFracciones: true,
			PrecioVenta: d("12000"),
		},
	}}
	provRepo := &fakeProveedorRepo{proveedores: map[string]*entity.Proveedor{
		proveedorID: {ID: proveedorID, Nombre: "Textiles SA"},
	}}
	compraRepo := newFakeCompraRepo()
	invRepo := newFakeInvRepo()
	devolRepo := &fakeDevolucionRepo{}
	txRunner := &fakeTxRunner{repos: appinv.TxRepos{
		Compras:      compraRepo,
		Devoluciones: devolRepo,
		Inventario:   invRepo,
	}}
	rec := appinv.NewReconciliador(sucRepo, invRepo)
	return &fixture{
		uc:         compras.NewUseCase(txRunner, rec, prodRepo, sucRepo, provRepo, compraRepo),
		compraRepo: compraRepo,
		invRepo:    invRepo,
		devolRepo:  devolRepo,
	}
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func detalle(productoID, cantidad, precio string) compras.DetalleInput {
	return compras.DetalleInput{
		ProductoID:     productoID,
		Cantidad:       d(cantidad),
		PrecioUnitario: d(precio),
	}
}

// stockDe devuelve la cantidad vigente para (producto, sucursal, tipo).
func stockDe(f *fixture, productoID, sucursalID string, tipo entity.TipoPropietario) decimal.Decimal {
	for _, r := range f.invRepo.registros {
		if r.ProductoID == productoID && r.SucursalID == sucursalID && r.TipoPropietario == tipo {
			return r.Cantidad
		}
	}
	return decimal.Zero
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CompraIngresaStock(t *testing.T) {
	f := build(t)

	compra, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID:  sucID,
		ProveedorID: proveedorID,
		UsuarioID:   usuarioTestID,
		Detalles: []compras.DetalleInput{
			detalle(prodPiezaID, "3", "15000"),
			detalle(prodMetroID, "2.5", "8000"),
		},
	})

	require.NoError(t, err)
	require.Len(t, compra.Detalles, 2)
	assert.True(t, compra.Total.Equal(d("65000")), "3*15000 + 2.5*8000 = 65000, total %s", compra.Total)
	assert.Equal(t, 1, f.compraRepo.createCalls)

	// Sin consignación todo entra como PROPIO.
	assert.True(t, stockDe(f, prodPiezaID, sucID, entity.PropietarioPropio).Equal(d("3")))
	assert.True(t, stockDe(f, prodMetroID, sucID, entity.PropietarioPropio).Equal(d("2.5")))
	for _, det := range compra.Detalles {
		assert.Equal(t, entity.PropietarioPropio, det.TipoPropietario)
	}
}

func TestCreate_AcumulaSobreStockExistente(t *testing.T) {
	f := build(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{detalle(prodPiezaID, "5", "15000")},
	})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{detalle(prodPiezaID, "3", "15000")},
	})
	require.NoError(t, err)

	assert.True(t, stockDe(f, prodPiezaID, sucID, entity.PropietarioPropio).Equal(d("8")),
		"la segunda compra acumula sobre el registro existente")
	assert.Len(t, f.invRepo.registros, 1)
}

func TestCreate_ConsignacionEnSucursalHabilitada(t *testing.T) {
	f := build(t)

	input := compras.CompraInput{
		SucursalID: sucConsigID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{{
			ProductoID:      prodPiezaID,
			Cantidad:        d("4"),
			PrecioUnitario:  d("15000"),
			TipoPropietario: entity.PropietarioConsignacion,
		}},
	}
	compra, err := f.uc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, entity.PropietarioConsignacion, compra.Detalles[0].TipoPropietario)
	assert.True(t, stockDe(f, prodPiezaID, sucConsigID, entity.PropietarioConsignacion).Equal(d("4")))
}

func TestCreate_ConsignacionRechazadaSinEscrituras(t *testing.T) {
	f := build(t)

	_, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{{
			ProductoID:      prodPiezaID,
			Cantidad:        d("1"),
			PrecioUnitario:  d("15000"),
			TipoPropietario: entity.PropietarioConsignacion,
		}},
	})

	assert.ErrorIs(t, err, domain.ErrTipoPropietarioInvalido)
	assert.Equal(t, 0, f.compraRepo.createCalls, "la validación ocurre antes de persistir")
	assert.Empty(t, f.invRepo.registros)
}

func TestCreate_CantidadFraccionalEnPiezaRechazada(t *testing.T) {
	f := build(t)

	_, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{detalle(prodPiezaID, "2.5", "15000")},
	})

	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
	assert.Equal(t, 0, f.compraRepo.createCalls)
}

// Una línea inválida invalida la compra completa aunque las demás sean buenas.
func TestCreate_LineaInvalidaAbortaTodo(t *testing.T) {
	f := build(t)

	_, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{
			detalle(prodPiezaID, "3", "15000"),
			detalle(prodPiezaID, "0", "15000"), // cero no es válido
		},
	})

	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
	assert.Equal(t, 0, f.compraRepo.createCalls)
	assert.Empty(t, f.invRepo.registros)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := build(t)

	_, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID:  sucID,
		ProveedorID: "99999999-9999-9999-9999-999999999999",
		UsuarioID:   usuarioTestID,
		Detalles:    []compras.DetalleInput{detalle(prodPiezaID, "1", "15000")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinDetalles(t *testing.T) {
	f := build(t)

	_, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DevolverDetalle
// ──────────────────────────────────────────────────────────────────────────────

// compraConStock crea una compra de 5 piezas y devuelve (compraID, detalleID).
func compraConStock(t *testing.T, f *fixture) (string, string) {
	t.Helper()
	compra, err := f.uc.Create(context.Background(), compras.CompraInput{
		SucursalID: sucID, ProveedorID: proveedorID, UsuarioID: usuarioTestID,
		Detalles: []compras.DetalleInput{detalle(prodPiezaID, "5", "15000")},
	})
	require.NoError(t, err)
	return compra.ID, compra.Detalles[0].ID
}

func TestDevolverDetalle_DescuentaStock(t *testing.T) {
	f := build(t)
	compraID, detalleID := compraConStock(t, f)

	devolucion, err := f.uc.DevolverDetalle(context.Background(), compraID, compras.DevolucionInput{
		DetalleID: detalleID,
		Cantidad:  d("2"),
		Motivo:    "defecto de fábrica",
		UsuarioID: usuarioTestID,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.DevolucionCompra, devolucion.Tipo)
	assert.True(t, stockDe(f, prodPiezaID, sucID, entity.PropietarioPropio).Equal(d("3")),
		"devolver al proveedor saca stock de la sucursal")
}

func TestDevolverDetalle_AcumuladoNoExcedeOriginal(t *testing.T) {
	f := build(t)
	compraID, detalleID := compraConStock(t, f)
	ctx := context.Background()

	_, err := f.uc.DevolverDetalle(ctx, compraID, compras.DevolucionInput{
		DetalleID: detalleID, Cantidad: d("3"), UsuarioID: usuarioTestID,
	})
	require.NoError(t, err)

	// Quedan 2 devolvibles; pedir 3 debe fallar.
	_, err = f.uc.DevolverDetalle(ctx, compraID, compras.DevolucionInput{
		DetalleID: detalleID, Cantidad: d("3"), UsuarioID: usuarioTestID,
	})
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
	assert.Len(t, f.devolRepo.devoluciones, 1, "la segunda devolución no se registra")
}

func TestDevolverDetalle_MasQueLaLineaRechazado(t *testing.T) {
	f := build(t)
	compraID, detalleID := compraConStock(t, f)

	_, err := f.uc.DevolverDetalle(context.Background(), compraID, compras.DevolucionInput{
		DetalleID: detalleID, Cantidad: d("6"), UsuarioID: usuarioTestID,
	})
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
}

func TestDevolverDetalle_DetalleDeOtraCompra(t *testing.T) {
	f := build(t)
	_, detalleID := compraConStock(t, f)

	_, err := f.uc.DevolverDetalle(context.Background(),
		"99999999-9999-9999-9999-999999999999",
		compras.DevolucionInput{DetalleID: detalleID, Cantidad: d("1"), UsuarioID: usuarioTestID},
	)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Si ya se vendió parte del stock comprado, la devolución al proveedor no
// puede dejar la cantidad en negativo.
func TestDevolverDetalle_SinStockSuficiente(t *testing.T) {
	f := build(t)
	compraID, detalleID := compraConStock(t, f)

	// Simular que ya salieron 4 de las 5 piezas por ventas.
	for _, r := range f.invRepo.registros {
		r.Cantidad = d("1")
	}

	_, err := f.uc.DevolverDetalle(context.Background(), compraID, compras.DevolucionInput{
		DetalleID: detalleID, Cantidad: d("2"), UsuarioID: usuarioTestID,
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
}
