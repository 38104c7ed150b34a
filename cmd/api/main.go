package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jdrada/retail-backoffice/internal/application/analytics"
	"github.com/jdrada/retail-backoffice/internal/application/auth"
	"github.com/jdrada/retail-backoffice/internal/application/compras"
	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/application/reportes"
	"github.com/jdrada/retail-backoffice/internal/application/usecase"
	"github.com/jdrada/retail-backoffice/internal/application/ventas"
	infrapdf "github.com/jdrada/retail-backoffice/internal/infrastructure/pdf"
	"github.com/jdrada/retail-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/jdrada/retail-backoffice/internal/interfaces/http"
	"github.com/jdrada/retail-backoffice/pkg/config"
	"github.com/jdrada/retail-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	sucursalRepo := postgres.NewSucursalRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Reconciliador: única puerta de escritura sobre el inventario.
	reconciliador := appinv.NewReconciliador(sucursalRepo, inventarioRepo)
	inventarioUC := appinv.NewConsultaUseCase(inventarioRepo)

	comprasUC := compras.NewUseCase(
		txRunner, reconciliador,
		productoRepo, sucursalRepo, proveedorRepo, compraRepo,
	)
	ventasUC := ventas.NewUseCase(
		txRunner, reconciliador,
		productoRepo, sucursalRepo, clienteRepo, ventaRepo,
	)

	sucursalUC := usecase.NewSucursalUseCase(sucursalRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, sucursalRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// PDF: reporte de inventario por sucursal
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportesUC := reportes.NewUseCase(sucursalRepo, analyticsRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		SucursalUC:    sucursalUC,
		ProductoUC:    productoUC,
		CategoriaUC:   categoriaUC,
		ClienteUC:     clienteUC,
		ProveedorUC:   proveedorUC,
		UsuarioUC:     usuarioUC,
		Reconciliador: reconciliador,
		InventarioUC:  inventarioUC,
		ComprasUC:     comprasUC,
		VentasUC:      ventasUC,
		DashboardUC:   dashboardUC,
		ReportesUC:    reportesUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
