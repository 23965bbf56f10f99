package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Permisos consultados contra el AccessGuard antes de cada mutación.
const (
	PermSalesCreate     = "sales:create"
	PermSalesUpdate     = "sales:update"
	PermInventoryAdjust = "inventory:adjust"
	PermPayrollManage   = "payroll:manage"
	PermWorkersManage   = "workers:manage"
	PermProductsManage  = "products:manage"
	PermCustomersManage = "customers:manage"
)

// AccessGuard colaborador externo de autorización. Los casos de uso lo
// consultan antes de mutar y propagan ErrForbidden cuando responde false.
type AccessGuard interface {
	Authorize(ctx context.Context, actorID, companyID, permission string) (bool, error)
}

// SubscriptionGate colaborador externo de límites del plan.
// WorkerLimit retorna el máximo de trabajadores activos; negativo = sin límite.
type SubscriptionGate interface {
	WorkerLimit(ctx context.Context, companyID string) (int, error)
}

// PaymentProcessor pasarela de pago opaca. Solo se invoca cuando el método
// de pago no es diferido; un error aborta la venta antes de cualquier
// escritura de stock o libro.
type PaymentProcessor interface {
	Charge(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]interface{}) (reference string, err error)
}

// IdempotencyStore deduplica reintentos de createSale por clave del caller.
// Get retorna el ID de la venta ya creada para esa clave ("" si no existe).
type IdempotencyStore interface {
	Get(ctx context.Context, companyID, key string) (string, error)
	Put(ctx context.Context, companyID, key, saleID string) error
}
