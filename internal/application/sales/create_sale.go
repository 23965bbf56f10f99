package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
	domsales "github.com/jhoicas/taller-erp/internal/domain/sales"
)

// Intentos máximos ante colisión de consecutivo o conflicto de escritura.
const maxCreateAttempts = 4

// Moneda por defecto para la pasarela cuando el request no la trae.
const defaultCurrency = "INR"

// CreateSaleUseCase convierte una venta (orden o memo) en cambios
// consistentes de stock, cuenta del cliente y libro financiero: todo dentro
// de una transacción, con el cobro externo ANTES de cualquier escritura.
// Los reintentos del caller se deduplican con la clave de idempotencia.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	inventoryUC  InventoryUseCase
	guard        ports.AccessGuard
	payments     ports.PaymentProcessor
	idempotency  ports.IdempotencyStore
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	inventoryUC InventoryUseCase,
	guard ports.AccessGuard,
	payments ports.PaymentProcessor,
	idempotency ports.IdempotencyStore,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		guard:        guard,
		payments:     payments,
		idempotency:  idempotency,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// CreateSale crea la venta completa. idempotencyKey vacío = sin deduplicación.
//
// Fases:
//  1. Validación y autorización: nada se escribe si falla.
//  2. Lecturas (productos, cliente) y cálculo de totales: tampoco escribe.
//  3. Cobro en la pasarela si el método no es diferido: si falla, se aborta
//     antes de tocar stock o libros (ErrPaymentFailed).
//  4. Una transacción: venta → salidas de stock por línea → cuenta del
//     cliente → asiento income. Rollback deja todo intacto.
//
// Si la transacción falla después de un cobro exitoso, se retorna
// PartialFailureError con la referencia del cobro para conciliación.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID, userID, idempotencyKey string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermSalesCreate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	// Reintento deduplicado: si la clave ya produjo una venta, devolverla.
	// Si el store no responde se continúa sin deduplicación (la venta vale
	// más que la clave), pero nunca en silencio: un reintento a ciegas
	// durante la caída puede duplicarse.
	if idempotencyKey != "" {
		saleID, err := uc.idempotency.Get(ctx, companyID, idempotencyKey)
		if err != nil {
			log.Warn().Err(err).
				Str("company_id", companyID).
				Msg("store de idempotencia no disponible: venta sin deduplicar")
		} else if saleID != "" {
			return uc.saleRepo.GetByID(ctx, saleID)
		}
	}

	// Validar productos y precios (solo lectura, fuera de la tx)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.DeletedAt != nil {
			return nil, domain.ErrProductNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if !product.Active {
			return nil, domain.ErrInvalidInput
		}
		// Pre-chequeo de stock; el chequeo autoritativo va dentro de la tx
		if product.StockQuantity.LessThan(item.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
		productsByID[item.ProductID] = product
	}

	// Cliente (opcional)
	var customer *entity.Customer
	if in.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	// Totales
	var subtotal decimal.Decimal
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		lineTotal := domsales.LineTotal(item.UnitPrice, item.Quantity, item.LineDiscount)
		if lineTotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(lineTotal)
		items = append(items, &entity.SaleItem{
			ID:           uuid.New().String(),
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineDiscount: item.LineDiscount,
			LineTotal:    lineTotal,
		})
	}
	total := domsales.GrandTotal(subtotal, in.DiscountAmount, in.TaxAmount, in.Shipping)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	paid, due, payStatus := domsales.SplitPayment(in.PaymentMethod, total)

	// Cobro externo ANTES de cualquier escritura (pago no diferido)
	chargeRef := ""
	if in.PaymentMethod != entity.PaymentMethodDue && total.GreaterThan(decimal.Zero) {
		currency := in.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		chargeRef, err = uc.payments.Charge(ctx, total, currency, map[string]interface{}{
			"company_id": companyID,
			"kind":       in.Kind,
		})
		if err != nil {
			return nil, errors.Join(domain.ErrPaymentFailed, err)
		}
	}

	sale, err := uc.persistSale(ctx, companyID, userID, in, items, subtotal, total, paid, due, payStatus, chargeRef, customer)
	if err != nil {
		if chargeRef != "" {
			// El cobro ya se aplicó: fallo parcial, nunca silencioso
			return nil, &domain.PartialFailureError{
				Op:        "createSale",
				ChargeRef: chargeRef,
				Completed: []string{"charge"},
				Err:       err,
			}
		}
		return nil, err
	}

	if idempotencyKey != "" {
		// Best effort: si falla el registro de la clave, el peor caso es un
		// duplicado detectable por el caller, no una venta perdida
		_ = uc.idempotency.Put(ctx, companyID, idempotencyKey, sale.ID)
	}
	return sale, nil
}

// persistSale ejecuta la transacción con reintento acotado ante colisión de
// consecutivo (ErrDuplicate) o conflicto de escritura (ErrConflict).
func (uc *CreateSaleUseCase) persistSale(
	ctx context.Context,
	companyID, userID string,
	in dto.CreateSaleRequest,
	items []*entity.SaleItem,
	subtotal, total, paid, due decimal.Decimal,
	payStatus, chargeRef string,
	customer *entity.Customer,
) (*entity.Sale, error) {
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		now := time.Now()
		seq, err := uc.saleRepo.CountByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		sale := &entity.Sale{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			Number:         GenerateNumber(in.Kind, companyID, now, seq+1+int64(attempt)),
			Kind:           in.Kind,
			CustomerID:     in.CustomerID,
			Subtotal:       subtotal,
			DiscountAmount: in.DiscountAmount,
			TaxAmount:      in.TaxAmount,
			Shipping:       in.Shipping,
			Total:          total,
			PaymentMethod:  in.PaymentMethod,
			PaymentStatus:  payStatus,
			PaidAmount:     paid,
			DueAmount:      due,
			PaymentRef:     chargeRef,
			Status:         entity.SaleStatusConfirmed,
			Notes:          in.Notes,
			Items:          cloneItems(items, ""),
			CreatedAt:      now,
			UpdatedAt:      now,
			CreatedBy:      userID,
		}
		for _, it := range sale.Items {
			it.SaleID = sale.ID
		}

		err = uc.txRunner.RunSale(ctx, func(
			saleRepo repository.SaleRepository,
			movRepo repository.InventoryMovementRepository,
			productRepo repository.ProductRepository,
			customerRepo repository.CustomerRepository,
			ledgerRepo repository.LedgerRepository,
		) error {
			// 1) Cabecera y líneas (detecta colisión de consecutivo)
			if err := saleRepo.Create(ctx, sale); err != nil {
				return err
			}
			// 2) Una salida de inventario por línea, referida a la venta
			for _, it := range sale.Items {
				if _, err := uc.inventoryUC.RegisterOutInTx(
					ctx, movRepo, productRepo,
					companyID, it.ProductID, userID,
					it.Quantity, sale.ID, now,
				); err != nil {
					return err
				}
			}
			// 3) Cuenta corriente del cliente
			if customer != nil {
				if err := customerRepo.ApplySale(ctx, customer.ID, total, due, now); err != nil {
					return err
				}
			}
			// 4) Asiento income solo si hubo pago inmediato
			if paid.GreaterThan(decimal.Zero) {
				entry := &entity.LedgerEntry{
					ID:            uuid.New().String(),
					CompanyID:     companyID,
					Type:          entity.LedgerTypeIncome,
					Amount:        paid,
					Description:   "venta " + sale.Number,
					ReferenceType: entity.LedgerRefSale,
					ReferenceID:   sale.ID,
					PaymentMethod: in.PaymentMethod,
					CreatedAt:     now,
					CreatedBy:     userID,
				}
				if err := ledgerRepo.Create(ctx, entry); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return sale, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	return nil, lastErr
}

func validateRequest(in dto.CreateSaleRequest) error {
	if in.Kind != entity.SaleKindOrder && in.Kind != entity.SaleKindMemo {
		return domain.ErrInvalidInput
	}
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return domain.ErrInvalidInput
	}
	one := decimal.NewFromInt(1)
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity.LessThan(one) {
			return domain.ErrInvalidInput
		}
		if item.LineDiscount.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if in.DiscountAmount.IsNegative() || in.TaxAmount.IsNegative() || in.Shipping.IsNegative() {
		return domain.ErrInvalidInput
	}
	// Memo: recibo simplificado, sin estructura de envío
	if in.Kind == entity.SaleKindMemo && !in.Shipping.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

func cloneItems(items []*entity.SaleItem, saleID string) []*entity.SaleItem {
	out := make([]*entity.SaleItem, len(items))
	for i, it := range items {
		c := *it
		c.SaleID = saleID
		out[i] = &c
	}
	return out
}
