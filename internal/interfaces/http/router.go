package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/auth"
	"github.com/jhoicas/taller-erp/internal/application/catalog"
	"github.com/jhoicas/taller-erp/internal/application/customers"
	"github.com/jhoicas/taller-erp/internal/application/finance"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/application/payroll"
	"github.com/jhoicas/taller-erp/internal/application/sales"
	"github.com/jhoicas/taller-erp/internal/application/workforce"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	CustomerUC  *customers.CustomerUseCase
	CreateSale  *sales.CreateSaleUseCase
	SaleUC      *sales.SaleUseCase
	AdjustStock *inventory.AdjustStockUseCase
	WorkerUC    *workforce.WorkerUseCase
	PayrollUC   *payroll.PayrollUseCase
	LedgerUC    *finance.LedgerUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Customers (protegido)
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id/status", saleHandler.UpdateStatus)
	salesGroup.Post("/:id/return", saleHandler.Return)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/stock/:productID", inventoryHandler.GetStock)
	invGroup.Get("/reconcile/:productID", inventoryHandler.Reconcile)

	// Workers (protegido, solo admin; el guard vuelve a validar contra la DB)
	workersGroup := protected.Group("/workers", RequireRole(entity.RoleAdmin))
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workersGroup.Post("/", workerHandler.Create)
	workersGroup.Get("/", workerHandler.List)
	workersGroup.Get("/:id", workerHandler.GetByID)
	workersGroup.Delete("/:id", workerHandler.Deactivate)
	workersGroup.Patch("/:id/pay", workerHandler.UpdatePay)

	// Attendance y payroll (protegido, admin o manager)
	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	attendance := protected.Group("/attendance", RequireRole(entity.RoleAdmin, entity.RoleManager))
	attendance.Post("/", payrollHandler.MarkAttendance)

	payrollGroup := protected.Group("/payroll", RequireRole(entity.RoleAdmin, entity.RoleManager))
	payrollGroup.Get("/compute", payrollHandler.Compute)
	payrollGroup.Post("/salaries", payrollHandler.UpsertSalary)
	payrollGroup.Post("/salaries/recompute", payrollHandler.RecomputeAll)
	payrollGroup.Get("/salaries", payrollHandler.ListSalaries)
	payrollGroup.Get("/salaries/:id", payrollHandler.GetSalary)
	payrollGroup.Post("/salaries/:id/pay", payrollHandler.Pay)

	// Ledger financiero (protegido, admin o manager)
	ledgerGroup := protected.Group("/ledger", RequireRole(entity.RoleAdmin, entity.RoleManager))
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Get("/", ledgerHandler.List)
}
