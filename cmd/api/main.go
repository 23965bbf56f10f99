package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/taller-erp/internal/application/auth"
	"github.com/jhoicas/taller-erp/internal/application/catalog"
	"github.com/jhoicas/taller-erp/internal/application/customers"
	"github.com/jhoicas/taller-erp/internal/application/finance"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/application/payroll"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/application/sales"
	"github.com/jhoicas/taller-erp/internal/application/workforce"
	"github.com/jhoicas/taller-erp/internal/infrastructure/idempotency"
	"github.com/jhoicas/taller-erp/internal/infrastructure/payment"
	"github.com/jhoicas/taller-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/taller-erp/internal/interfaces/http"
	"github.com/jhoicas/taller-erp/pkg/config"
	"github.com/jhoicas/taller-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	workerRepo := postgres.NewWorkerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	salaryRepo := postgres.NewSalaryRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := auth.NewRBACGuard(workerRepo)
	planGate := workforce.NewPlanGate(companyRepo)

	idemStore, err := idempotency.NewRedisStore(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer idemStore.Close()

	// Pasarela de pago: Razorpay con credenciales; noop en desarrollo.
	var payments ports.PaymentProcessor
	if rp := payment.NewRazorpayProcessor(cfg.Razorpay); rp != nil {
		payments = rp
	} else {
		log.Warn().Msg("sin credenciales de Razorpay: usando pasarela noop de desarrollo")
		payments = payment.NoopProcessor{}
	}

	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, guard, productRepo, movementRepo)
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, adjustStockUC, guard, payments, idemStore,
		saleRepo, productRepo, customerRepo,
	)
	saleUC := sales.NewSaleUseCase(txRunner, adjustStockUC, guard, saleRepo, ledgerRepo)
	productUC := catalog.NewProductUseCase(txRunner, guard, productRepo)
	customerUC := customers.NewCustomerUseCase(guard, customerRepo)
	workerUC := workforce.NewWorkerUseCase(guard, planGate, workerRepo)
	payrollUC := payroll.NewPayrollUseCase(txRunner, guard, workerRepo, attendanceRepo, salaryRepo)
	ledgerUC := finance.NewLedgerUseCase(ledgerRepo)
	authUC := auth.NewAuthUseCase(workerRepo, companyRepo, auth.JWTConfig{
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
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		CreateSale:  createSaleUC,
		SaleUC:      saleUC,
		AdjustStock: adjustStockUC,
		WorkerUC:    workerUC,
		PayrollUC:   payrollUC,
		LedgerUC:    ledgerUC,
		JWTSecret:   cfg.JWT.Secret,
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
