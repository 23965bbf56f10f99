package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que abarca
// venta, movimientos de inventario, cuenta del cliente y libro financiero.
// Orden fijo de escritura dentro de fn: venta → movimientos/stock →
// cliente → asiento financiero.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// InventoryUseCase integra la venta con inventario: descuenta stock línea
// por línea dentro de la transacción del caller. Si retorna error
// (ej: ErrInsufficientStock), el caller hace rollback.
type InventoryUseCase interface {
	RegisterOutInTx(
		ctx context.Context,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		companyID, productID, userID string,
		quantity decimal.Decimal,
		saleID string,
		now time.Time,
	) (*entity.InventoryMovement, error)
	RegisterReturnInTx(
		ctx context.Context,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		companyID, productID, userID string,
		quantity decimal.Decimal,
		saleID string,
		now time.Time,
	) (*entity.InventoryMovement, error)
}
