package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/analytics"
	"github.com/jdrada/retail-backoffice/internal/application/auth"
	"github.com/jdrada/retail-backoffice/internal/application/compras"
	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/application/reportes"
	"github.com/jdrada/retail-backoffice/internal/application/usecase"
	"github.com/jdrada/retail-backoffice/internal/application/ventas"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	SucursalUC    *usecase.SucursalUseCase
	ProductoUC    *usecase.ProductoUseCase
	CategoriaUC   *usecase.CategoriaUseCase
	ClienteUC     *usecase.ClienteUseCase
	ProveedorUC   *usecase.ProveedorUseCase
	UsuarioUC     *usecase.UsuarioUseCase
	Reconciliador *appinv.Reconciliador
	InventarioUC  *appinv.ConsultaUseCase
	ComprasUC     *compras.UseCase
	VentasUC      *ventas.UseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportesUC    *reportes.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RolSuperAdmin, entity.RolAdmin)
	todosLosRoles := RequireRole(entity.RolSuperAdmin, entity.RolAdmin, entity.RolVendedor)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sucursales: lectura para todos, escritura solo SUPER_ADMIN (la
	// activación de consignación es una decisión de configuración global)
	sucursales := protected.Group("/sucursales")
	sucursalHandler := NewSucursalHandler(deps.SucursalUC)
	sucursales.Get("/", todosLosRoles, sucursalHandler.List)
	sucursales.Get("/:id", todosLosRoles, sucursalHandler.GetByID)
	sucursales.Post("/", RequireRole(entity.RolSuperAdmin), sucursalHandler.Create)
	sucursales.Put("/:id", RequireRole(entity.RolSuperAdmin), sucursalHandler.Update)
	sucursales.Delete("/:id", RequireRole(entity.RolSuperAdmin), sucursalHandler.Delete)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", todosLosRoles, productoHandler.List)
	productos.Get("/:id", todosLosRoles, productoHandler.GetByID)
	productos.Post("/", adminOnly, productoHandler.Create)
	productos.Put("/:id", adminOnly, productoHandler.Update)
	productos.Delete("/:id", adminOnly, productoHandler.Delete)

	// Categorías
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Get("/", todosLosRoles, categoriaHandler.List)
	categorias.Get("/:id", todosLosRoles, categoriaHandler.GetByID)
	categorias.Post("/", adminOnly, categoriaHandler.Create)
	categorias.Put("/:id", adminOnly, categoriaHandler.Update)
	categorias.Delete("/:id", adminOnly, categoriaHandler.Delete)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", todosLosRoles, clienteHandler.List)
	clientes.Get("/:id", todosLosRoles, clienteHandler.GetByID)
	clientes.Post("/", todosLosRoles, clienteHandler.Create)
	clientes.Put("/:id", todosLosRoles, clienteHandler.Update)
	clientes.Delete("/:id", adminOnly, clienteHandler.Delete)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Get("/", todosLosRoles, proveedorHandler.List)
	proveedores.Get("/:id", todosLosRoles, proveedorHandler.GetByID)
	proveedores.Post("/", adminOnly, proveedorHandler.Create)
	proveedores.Put("/:id", adminOnly, proveedorHandler.Update)
	proveedores.Delete("/:id", adminOnly, proveedorHandler.Delete)

	// Usuarios (administración)
	usuarios := protected.Group("/usuarios", adminOnly)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	// Inventario: consulta para todos los roles, edición directa solo admin
	inventario := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.Reconciliador, deps.InventarioUC)
	inventario.Get("/", todosLosRoles, inventarioHandler.List)
	inventario.Put("/", adminOnly, inventarioHandler.Upsert)

	// Compras y devoluciones de compra
	comprasGroup := protected.Group("/compras", adminOnly)
	compraHandler := NewCompraHandler(deps.ComprasUC)
	comprasGroup.Get("/", compraHandler.List)
	comprasGroup.Get("/:id", compraHandler.GetByID)
	comprasGroup.Post("/", compraHandler.Create)
	comprasGroup.Post("/:id/devoluciones", compraHandler.Devolver)

	// Ventas y devoluciones de venta (el vendedor también)
	ventasGroup := protected.Group("/ventas", todosLosRoles)
	ventaHandler := NewVentaHandler(deps.VentasUC)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Post("/", ventaHandler.Create)
	ventasGroup.Post("/:id/devoluciones", ventaHandler.Devolver)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", adminOnly, dashboardHandler.Get)

	reporteHandler := NewReporteHandler(deps.ReportesUC)
	protected.Get("/reportes/inventario.pdf", adminOnly, reporteHandler.InventarioPDF)
}
