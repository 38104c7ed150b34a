package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdrada/retail-backoffice/internal/application/compras"
	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/application/ventas"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	apphttp "github.com/jdrada/retail-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jdrada/retail-backoffice/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar los handlers de devoluciones end-to-end
// ──────────────────────────────────────────────────────────────────────────────

type scopeSucursalRepo struct{ sucursales map[string]*entity.Sucursal }

func (f *scopeSucursalRepo) Create(*entity.Sucursal) error             { return nil }
func (f *scopeSucursalRepo) Update(*entity.Sucursal) error             { return nil }
func (f *scopeSucursalRepo) Delete(string) error                       { return nil }
func (f *scopeSucursalRepo) List(int, int) ([]*entity.Sucursal, error) { return nil, nil }
func (f *scopeSucursalRepo) GetByID(id string) (*entity.Sucursal, error) {
	return f.sucursales[id], nil
}

type scopeProductoRepo struct{ productos map[string]*entity.Producto }

func (f *scopeProductoRepo) Create(*entity.Producto) error                     { return nil }
func (f *scopeProductoRepo) Update(*entity.Producto) error                     { return nil }
func (f *scopeProductoRepo) Delete(string) error                               { return nil }
func (f *scopeProductoRepo) GetByCodigo(string) (*entity.Producto, error)      { return nil, nil }
func (f *scopeProductoRepo) List(string, int, int) ([]*entity.Producto, error) { return nil, nil }
func (f *scopeProductoRepo) Count(string) (int, error)                         { return 0, nil }
func (f *scopeProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return f.productos[id], nil
}

type scopeProveedorRepo struct{ proveedores map[string]*entity.Proveedor }

func (f *scopeProveedorRepo) Create(*entity.Proveedor) error                   { return nil }
func (f *scopeProveedorRepo) Update(*entity.Proveedor) error                   { return nil }
func (f *scopeProveedorRepo) Delete(string) error                              { return nil }
func (f *scopeProveedorRepo) GetByDocumento(string) (*entity.Proveedor, error) { return nil, nil }
func (f *scopeProveedorRepo) List(int, int) ([]*entity.Proveedor, error)       { return nil, nil }
func (f *scopeProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return f.proveedores[id], nil
}

type scopeClienteRepo struct{}

func (f *scopeClienteRepo) Create(*entity.Cliente) error                   { return nil }
func (f *scopeClienteRepo) Update(*entity.Cliente) error                   { return nil }
func (f *scopeClienteRepo) Delete(string) error                            { return nil }
func (f *scopeClienteRepo) GetByDocumento(string) (*entity.Cliente, error) { return nil, nil }
func (f *scopeClienteRepo) List(int, int) ([]*entity.Cliente, error)       { return nil, nil }
func (f *scopeClienteRepo) GetByID(string) (*entity.Cliente, error)        { return nil, nil }

type scopeCompraRepo struct{ compras map[string]*entity.Compra }

func (f *scopeCompraRepo) Create(c *entity.Compra) error {
	clon := *c
	f.compras[c.ID] = &clon
	return nil
}
func (f *scopeCompraRepo) GetByID(id string) (*entity.Compra, error) { return f.compras[id], nil }
func (f *scopeCompraRepo) GetDetalle(detalleID string) (*entity.DetalleCompra, error) {
	for _, c := range f.compras {
		for i := range c.Detalles {
			if c.Detalles[i].ID == detalleID {
				return &c.Detalles[i], nil
			}
		}
	}
	return nil, nil
}
func (f *scopeCompraRepo) ListBySucursal(string, int, int) ([]*entity.Compra, error) {
	return nil, nil
}

type scopeVentaRepo struct{ ventas map[string]*entity.Venta }

func (f *scopeVentaRepo) Create(v *entity.Venta) error {
	clon := *v
	f.ventas[v.ID] = &clon
	return nil
}
func (f *scopeVentaRepo) GetByID(id string) (*entity.Venta, error) { return f.ventas[id], nil }
func (f *scopeVentaRepo) GetDetalle(detalleID string) (*entity.DetalleVenta, error) {
	for _, v := range f.ventas {
		for i := range v.Detalles {
			if v.Detalles[i].ID == detalleID {
				return &v.Detalles[i], nil
			}
		}
	}
	return nil, nil
}
func (f *scopeVentaRepo) ListBySucursal(string, int, int) ([]*entity.Venta, error) {
	return nil, nil
}

type scopeDevolucionRepo struct{ devoluciones []*entity.Devolucion }

func (f *scopeDevolucionRepo) Create(d *entity.Devolucion) error {
	clon := *d
	f.devoluciones = append(f.devoluciones, &clon)
	return nil
}
func (f *scopeDevolucionRepo) TotalDevuelto(tipo, detalleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.devoluciones {
		if d.Tipo == tipo && d.DetalleID == detalleID {
			total = total.Add(d.Cantidad)
		}
	}
	return total, nil
}
func (f *scopeDevolucionRepo) ListByDetalle(string, string) ([]*entity.Devolucion, error) {
	return nil, nil
}

type scopeInvRepo struct{ registros map[string]*entity.RegistroInventario }

func (f *scopeInvRepo) Create(r *entity.RegistroInventario) error {
	clon := *r
	f.registros[r.ID] = &clon
	return nil
}
func (f *scopeInvRepo) Update(r *entity.RegistroInventario) error {
	clon := *r
	f.registros[r.ID] = &clon
	return nil
}
func (f *scopeInvRepo) GetByID(id string) (*entity.RegistroInventario, error) {
	return f.registros[id], nil
}
func (f *scopeInvRepo) ListByProducto(productoID string) ([]*entity.RegistroInventario, error) {
	var out []*entity.RegistroInventario
	for _, r := range f.registros {
		if r.ProductoID == productoID {
			clon := *r
			out = append(out, &clon)
		}
	}
	return out, nil
}
func (f *scopeInvRepo) ListBySucursal(string, bool, int, int) ([]*entity.RegistroInventario, error) {
	return nil, nil
}

type scopeTxRunner struct{ repos appinv.TxRepos }

func (f *scopeTxRunner) Run(_ context.Context, fn func(appinv.TxRepos) error) error {
	return fn(f.repos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: documentos en la sucursal B, tokens atados a la sucursal A
// ──────────────────────────────────────────────────────────────────────────────

const (
	sucursalAID      = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	sucursalBID      = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	productoScopeID  = "cccccccc-cccc-cccc-cccc-cccccccccccc"
	proveedorScopeID = "dddddddd-dddd-dddd-dddd-dddddddddddd"
	compraScopeID    = "eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"
	detCompraScopeID = "ffffffff-ffff-ffff-ffff-ffffffffffff"
	ventaScopeID     = "99999999-9999-9999-9999-999999999999"
	detVentaScopeID  = "88888888-8888-8888-8888-888888888888"
	registroInvBID   = "77777777-7777-7777-7777-777777777777"
)

type devolucionFixture struct {
	app       *fiber.App
	devolRepo *scopeDevolucionRepo
	invRepo   *scopeInvRepo
}

// buildDevolucionApp monta los handlers de compras y ventas con el mismo
// middleware y agrupación de roles que el router real, sobre repos en memoria.
// La compra y la venta preexistentes viven en la sucursal B con stock 10.
func buildDevolucionApp(t *testing.T) *devolucionFixture {
	t.Helper()

	sucRepo := &scopeSucursalRepo{sucursales: map[string]*entity.Sucursal{
		sucursalAID: {ID: sucursalAID, Nombre: "Sucursal A"},
		sucursalBID: {ID: sucursalBID, Nombre: "Sucursal B"},
	}}
	prodRepo := &scopeProductoRepo{productos: map[string]*entity.Producto{
		productoScopeID: {
			ID: productoScopeID, Codigo: "CAM-010", Nombre: "Camisa",
			UnidadMedida: entity.UnidadPieza, PermiteFracciones: false,
			PrecioVenta: dec("25000"),
		},
	}}
	provRepo := &scopeProveedorRepo{proveedores: map[string]*entity.Proveedor{
		proveedorScopeID: {ID: proveedorScopeID, Nombre: "Textiles SA"},
	}}

	compraRepo := &scopeCompraRepo{compras: map[string]*entity.Compra{
		compraScopeID: {
			ID: compraScopeID, SucursalID: sucursalBID, ProveedorID: proveedorScopeID,
			Detalles: []entity.DetalleCompra{{
				ID: detCompraScopeID, CompraID: compraScopeID, ProductoID: productoScopeID,
				Cantidad: dec("10"), PrecioUnitario: dec("15000"),
				TipoPropietario: entity.PropietarioPropio,
			}},
		},
	}}
	ventaRepo := &scopeVentaRepo{ventas: map[string]*entity.Venta{
		ventaScopeID: {
			ID: ventaScopeID, SucursalID: sucursalBID,
			Detalles: []entity.DetalleVenta{{
				ID: detVentaScopeID, VentaID: ventaScopeID, ProductoID: productoScopeID,
				Cantidad: dec("10"), PrecioUnitario: dec("25000"),
				TipoPropietario: entity.PropietarioPropio,
			}},
		},
	}}
	devolRepo := &scopeDevolucionRepo{}
	invRepo := &scopeInvRepo{registros: map[string]*entity.RegistroInventario{
		registroInvBID: {
			ID: registroInvBID, ProductoID: productoScopeID, SucursalID: sucursalBID,
			TipoPropietario: entity.PropietarioPropio, Cantidad: dec("10"),
		},
	}}
	txRunner := &scopeTxRunner{repos: appinv.TxRepos{
		Compras:      compraRepo,
		Ventas:       ventaRepo,
		Devoluciones: devolRepo,
		Inventario:   invRepo,
	}}
	rec := appinv.NewReconciliador(sucRepo, invRepo)

	compraHandler := apphttp.NewCompraHandler(
		compras.NewUseCase(txRunner, rec, prodRepo, sucRepo, provRepo, compraRepo))
	ventaHandler := apphttp.NewVentaHandler(
		ventas.NewUseCase(txRunner, rec, prodRepo, sucRepo, &scopeClienteRepo{}, ventaRepo))

	app := fiber.New()
	protected := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	comprasGroup := protected.Group("/compras",
		apphttp.RequireRole(entity.RolSuperAdmin, entity.RolAdmin))
	comprasGroup.Post("/:id/devoluciones", compraHandler.Devolver)
	ventasGroup := protected.Group("/ventas",
		apphttp.RequireRole(entity.RolSuperAdmin, entity.RolAdmin, entity.RolVendedor))
	ventasGroup.Post("/:id/devoluciones", ventaHandler.Devolver)

	return &devolucionFixture{app: app, devolRepo: devolRepo, invRepo: invRepo}
}

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// tokenParaSucursal genera un JWT con el rol y la sucursal indicados.
func tokenParaSucursal(t *testing.T, rol, sucursalID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, rol, sucursalID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func postDevolucion(t *testing.T, app *fiber.App, path, authHeader, detalleID string) *http.Response {
	t.Helper()
	body, err := json.Marshal(fiber.Map{
		"detalle_id": detalleID,
		"cantidad":   "3",
		"motivo":     "defecto de fábrica",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func stockSucursalB(f *devolucionFixture) decimal.Decimal {
	for _, r := range f.invRepo.registros {
		if r.ProductoID == productoScopeID && r.SucursalID == sucursalBID &&
			r.TipoPropietario == entity.PropietarioPropio {
			return r.Cantidad
		}
	}
	return decimal.Zero
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance de sucursal en devoluciones
// ──────────────────────────────────────────────────────────────────────────────

// Un ADMIN atado a la sucursal A no puede devolver contra una compra de la
// sucursal B: 403 sin tocar devoluciones ni inventario.
func TestDevolverCompra_AdminDeOtraSucursalRecibe403(t *testing.T) {
	f := buildDevolucionApp(t)

	resp := postDevolucion(t, f.app,
		fmt.Sprintf("/api/compras/%s/devoluciones", compraScopeID),
		tokenParaSucursal(t, entity.RolAdmin, sucursalAID), detCompraScopeID)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, f.devolRepo.devoluciones, "no debe registrarse la devolución")
	assert.True(t, stockSucursalB(f).Equal(dec("10")), "el stock de B no debe moverse, quedó %s", stockSucursalB(f))
}

// Lo mismo para ventas: el vendedor de A no alcanza una venta de B.
func TestDevolverVenta_VendedorDeOtraSucursalRecibe403(t *testing.T) {
	f := buildDevolucionApp(t)

	resp := postDevolucion(t, f.app,
		fmt.Sprintf("/api/ventas/%s/devoluciones", ventaScopeID),
		tokenParaSucursal(t, entity.RolVendedor, sucursalAID), detVentaScopeID)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, f.devolRepo.devoluciones)
	assert.True(t, stockSucursalB(f).Equal(dec("10")))
}

// Control positivo: el ADMIN de la propia sucursal sí devuelve y el stock baja.
func TestDevolverCompra_AdminDeLaMismaSucursalDevuelve(t *testing.T) {
	f := buildDevolucionApp(t)

	resp := postDevolucion(t, f.app,
		fmt.Sprintf("/api/compras/%s/devoluciones", compraScopeID),
		tokenParaSucursal(t, entity.RolAdmin, sucursalBID), detCompraScopeID)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, f.devolRepo.devoluciones, 1)
	assert.Equal(t, sucursalBID, f.devolRepo.devoluciones[0].SucursalID)
	assert.True(t, stockSucursalB(f).Equal(dec("7")), "10 - 3 = 7, quedó %s", stockSucursalB(f))
}

// El SUPER_ADMIN no está atado a ninguna sucursal: devuelve contra B aunque su
// token traiga A.
func TestDevolverVenta_SuperAdminAlcanzaCualquierSucursal(t *testing.T) {
	f := buildDevolucionApp(t)

	resp := postDevolucion(t, f.app,
		fmt.Sprintf("/api/ventas/%s/devoluciones", ventaScopeID),
		tokenParaSucursal(t, entity.RolSuperAdmin, sucursalAID), detVentaScopeID)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, f.devolRepo.devoluciones, 1)
	// La devolución de venta reingresa stock a la sucursal de la venta.
	assert.True(t, stockSucursalB(f).Equal(dec("13")), "10 + 3 = 13, quedó %s", stockSucursalB(f))
}
