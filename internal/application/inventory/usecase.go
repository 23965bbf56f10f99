package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// Reintentos ante pérdida de escritura condicional (deadlock/serialización).
const (
	maxConflictRetries = 3
	conflictBackoff    = 25 * time.Millisecond
)

// AdjustStockUseCase es el único mutador sancionado del contador de stock.
// Cada ajuste bloquea la fila del producto (SELECT FOR UPDATE), registra el
// movimiento con cantidad antes/después y actualiza el contador en la misma
// transacción: los ajustes concurrentes sobre un producto quedan
// serializados y el contador nunca baja de cero.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	guard       ports.AccessGuard
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	guard ports.AccessGuard,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		guard:       guard,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// AdjustInput entrada para un ajuste de stock.
// in/out/return: Quantity es la magnitud (> 0).
// adjustment: Quantity es el valor absoluto final del contador (>= 0).
// transfer: Quantity > 0 y FromLocation/ToLocation obligatorios; no altera el total.
type AdjustInput struct {
	CompanyID    string
	UserID       string
	ProductID    string
	Type         string
	Quantity     decimal.Decimal
	Reason       string
	FromLocation string
	ToLocation   string
}

// AdjustStock valida, autoriza y aplica el ajuste. Retorna el movimiento
// registrado y el contador resultante. Ante conflicto de escritura
// concurrente reintenta acotadamente con backoff antes de propagar.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, input AdjustInput) (*entity.InventoryMovement, decimal.Decimal, error) {
	if err := uc.validate(input); err != nil {
		return nil, decimal.Zero, err
	}
	ok, err := uc.guard.Authorize(ctx, input.UserID, input.CompanyID, ports.PermInventoryAdjust)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !ok {
		return nil, decimal.Zero, domain.ErrForbidden
	}

	var mov *entity.InventoryMovement
	var newQty decimal.Decimal
	for attempt := 0; ; attempt++ {
		mov, newQty, err = uc.adjustOnce(ctx, input)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt >= maxConflictRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, decimal.Zero, domain.ErrTimeout
		case <-time.After(conflictBackoff * time.Duration(attempt+1)):
		}
	}
	if err != nil {
		return nil, decimal.Zero, err
	}
	return mov, newQty, nil
}

func (uc *AdjustStockUseCase) validate(input AdjustInput) error {
	if input.ProductID == "" || input.CompanyID == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeReturn:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if input.FromLocation == "" || input.ToLocation == "" || input.FromLocation == input.ToLocation {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// adjustOnce un intento: transacción con bloqueo de fila del producto.
func (uc *AdjustStockUseCase) adjustOnce(ctx context.Context, input AdjustInput) (*entity.InventoryMovement, decimal.Decimal, error) {
	var mov *entity.InventoryMovement
	var newQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto; serializa ajustes concurrentes
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.CompanyID != input.CompanyID {
			return domain.ErrForbidden
		}

		before := product.StockQuantity
		after, location, err := applyKind(product, input)
		if err != nil {
			return err
		}

		if err := productRepo.UpdateStock(ctx, product.ID, after, location); err != nil {
			return err
		}
		now := time.Now()
		mov = &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      input.CompanyID,
			ProductID:      input.ProductID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reason:         input.Reason,
			FromLocation:   input.FromLocation,
			ToLocation:     input.ToLocation,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		newQty = after
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return mov, newQty, nil
}

// applyKind calcula el contador resultante según el tipo de movimiento.
func applyKind(product *entity.Product, input AdjustInput) (after decimal.Decimal, location string, err error) {
	before := product.StockQuantity
	location = product.Location
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeReturn:
		return before.Add(input.Quantity), location, nil
	case entity.MovementTypeOut:
		if before.LessThan(input.Quantity) {
			return decimal.Zero, "", domain.ErrInsufficientStock
		}
		return before.Sub(input.Quantity), location, nil
	case entity.MovementTypeAdjustment:
		// Fija el contador al valor absoluto solicitado
		return input.Quantity, location, nil
	case entity.MovementTypeTransfer:
		// Cambio de ubicación: el total no cambia
		if before.LessThan(input.Quantity) {
			return decimal.Zero, "", domain.ErrInsufficientStock
		}
		return before, input.ToLocation, nil
	}
	return decimal.Zero, "", domain.ErrInvalidInput
}

// RegisterOutInTx ejecuta una salida (out) con los repositorios del caller
// (misma transacción). Lo usa la creación de ventas para descontar stock
// línea por línea; si retorna error el caller hace rollback completo.
func (uc *AdjustStockUseCase) RegisterOutInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	companyID, productID, userID string,
	quantity decimal.Decimal,
	saleID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if product.StockQuantity.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}
	after := product.StockQuantity.Sub(quantity)
	if err := productRepo.UpdateStock(ctx, productID, after, product.Location); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ProductID:      productID,
		Type:           entity.MovementTypeOut,
		Quantity:       quantity,
		QuantityBefore: product.StockQuantity,
		QuantityAfter:  after,
		Reason:         "venta",
		SaleID:         saleID,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterReturnInTx reingresa stock de una devolución dentro de la
// transacción del caller (operación compensatoria de ReturnSale).
func (uc *AdjustStockUseCase) RegisterReturnInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	companyID, productID, userID string,
	quantity decimal.Decimal,
	saleID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	after := product.StockQuantity.Add(quantity)
	if err := productRepo.UpdateStock(ctx, productID, after, product.Location); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ProductID:      productID,
		Type:           entity.MovementTypeReturn,
		Quantity:       quantity,
		QuantityBefore: product.StockQuantity,
		QuantityAfter:  after,
		Reason:         "devolución",
		SaleID:         saleID,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// GetStock lee el contador actual del producto.
func (uc *AdjustStockUseCase) GetStock(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return decimal.Zero, domain.ErrForbidden
	}
	return product.StockQuantity, nil
}

// Reconcile verifica el invariante de conciliación de un producto: el
// QuantityAfter del movimiento más reciente debe igualar el contador.
func (uc *AdjustStockUseCase) Reconcile(ctx context.Context, companyID, productID string) (stock, ledger decimal.Decimal, consistent bool, err error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, false, err
	}
	if product == nil {
		return decimal.Zero, decimal.Zero, false, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return decimal.Zero, decimal.Zero, false, domain.ErrForbidden
	}
	latest, err := uc.movRepo.GetLatestByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, false, err
	}
	if latest == nil {
		// Sin movimientos: el contador debe seguir en su valor inicial
		return product.StockQuantity, product.StockQuantity, true, nil
	}
	return product.StockQuantity, latest.QuantityAfter, product.StockQuantity.Equal(latest.QuantityAfter), nil
}

// ListMovements lista el libro de inventario de la empresa, opcionalmente
// filtrado por producto y rango de fechas.
func (uc *AdjustStockUseCase) ListMovements(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID != "" {
		product, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		return uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
	}
	return uc.movRepo.ListByCompany(ctx, companyID, from, to, limit, offset)
}
