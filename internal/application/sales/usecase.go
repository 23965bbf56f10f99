package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
	domsales "github.com/jhoicas/taller-erp/internal/domain/sales"
)

// SaleUseCase operaciones sobre ventas existentes: lectura, transición de
// estado y devolución compensatoria.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	inventoryUC InventoryUseCase
	guard       ports.AccessGuard
	saleRepo    repository.SaleRepository
	ledgerRepo  repository.LedgerRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	inventoryUC InventoryUseCase,
	guard ports.AccessGuard,
	saleRepo repository.SaleRepository,
	ledgerRepo repository.LedgerRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		guard:       guard,
		saleRepo:    saleRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetSale obtiene una venta con sus líneas (alcance por empresa).
func (uc *SaleUseCase) GetSale(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// ListSales lista ventas de la empresa con filtros y paginación.
func (uc *SaleUseCase) ListSales(ctx context.Context, companyID string, filter repository.SaleFilter) ([]*entity.Sale, error) {
	return uc.saleRepo.ListByCompany(ctx, companyID, filter)
}

// UpdateSaleStatus aplica una transición de estado. Las transiciones legales
// forman un DAG con terminales cancelled/returned/delivered; el cambio de
// estado por sí solo NO toca inventario. Por eso returned no se acepta por
// esta vía: esa transición solo la ejecuta ReturnSale, que repone el stock
// y asienta el reembolso en la misma transacción.
func (uc *SaleUseCase) UpdateSaleStatus(ctx context.Context, companyID, userID, saleID, newStatus string) (*entity.Sale, error) {
	if !domsales.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	if newStatus == entity.SaleStatusReturned {
		return nil, domain.ErrInvalidTransition
	}
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermSalesUpdate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	sale, err := uc.GetSale(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if !domsales.CanTransition(sale.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	if err := uc.saleRepo.UpdateStatus(ctx, saleID, newStatus, now); err != nil {
		return nil, err
	}
	sale.Status = newStatus
	sale.UpdatedAt = now
	return sale, nil
}

// ReturnSale devolución compensatoria explícita: reingresa el stock de cada
// línea (movimientos return), registra un asiento refund por lo pagado y
// marca la venta como returned. Todo en una transacción.
func (uc *SaleUseCase) ReturnSale(ctx context.Context, companyID, userID, saleID, reason string) (*entity.Sale, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermSalesUpdate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	sale, err := uc.GetSale(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if !domsales.CanTransition(sale.Status, entity.SaleStatusReturned) {
		return nil, domain.ErrInvalidTransition
	}

	description := "devolución venta " + sale.Number
	if reason != "" {
		description += ": " + reason
	}

	now := time.Now()
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CustomerRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		for _, it := range sale.Items {
			if _, err := uc.inventoryUC.RegisterReturnInTx(
				ctx, movRepo, productRepo,
				companyID, it.ProductID, userID,
				it.Quantity, sale.ID, now,
			); err != nil {
				return err
			}
		}
		if sale.PaidAmount.GreaterThan(decimal.Zero) {
			entry := &entity.LedgerEntry{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				Type:          entity.LedgerTypeRefund,
				Amount:        sale.PaidAmount,
				Description:   description,
				ReferenceType: entity.LedgerRefSale,
				ReferenceID:   sale.ID,
				PaymentMethod: sale.PaymentMethod,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := ledgerRepo.Create(ctx, entry); err != nil {
				return err
			}
			if err := saleRepo.UpdatePaymentStatus(ctx, sale.ID, entity.PaymentStatusRefunded, now); err != nil {
				return err
			}
		}
		return saleRepo.UpdateStatus(ctx, sale.ID, entity.SaleStatusReturned, now)
	})
	if err != nil {
		return nil, err
	}
	sale.Status = entity.SaleStatusReturned
	if sale.PaidAmount.GreaterThan(decimal.Zero) {
		sale.PaymentStatus = entity.PaymentStatusRefunded
	}
	sale.UpdatedAt = now
	return sale, nil
}
