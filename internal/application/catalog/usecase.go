package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// ProductUseCase mantiene el catálogo. El contador de stock solo se fija en
// el alta (stock inicial, con su movimiento de apertura); después únicamente
// lo mutan los movimientos de inventario.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	guard       ports.AccessGuard
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, guard ports.AccessGuard, productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, guard: guard, productRepo: productRepo}
}

// CreateProduct alta con SKU único por empresa. El stock inicial queda
// trazado con un movimiento de apertura en la misma transacción.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermProductsManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Cost:          in.Cost,
		StockQuantity: in.InitialStock,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		UnitMeasure:   in.UnitMeasure,
		Location:      in.Location,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if !in.InitialStock.IsZero() {
			mov := &entity.InventoryMovement{
				ID:             uuid.New().String(),
				CompanyID:      companyID,
				ProductID:      product.ID,
				Type:           entity.MovementTypeIn,
				Quantity:       in.InitialStock,
				QuantityBefore: decimal.Zero,
				QuantityAfter:  in.InitialStock,
				Reason:         "stock inicial",
				CreatedAt:      now,
				CreatedBy:      userID,
			}
			return movRepo.Create(ctx, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct lee un producto (alcance por empresa; excluye borrados).
func (uc *ProductUseCase) GetProduct(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.DeletedAt != nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// ListProducts lista el catálogo de la empresa.
func (uc *ProductUseCase) ListProducts(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByCompany(ctx, companyID, limit, offset)
}

// UpdateProduct edita los campos del catálogo; el stock no se toca aquí.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, companyID, userID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermProductsManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.GetProduct(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	product.Description = in.Description
	product.Price = in.Price
	product.Cost = in.Cost
	product.MinStock = in.MinStock
	product.MaxStock = in.MaxStock
	if in.UnitMeasure != "" {
		product.UnitMeasure = in.UnitMeasure
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct baja lógica: el producto deja de aparecer y venderse, pero
// las ventas y movimientos históricos que lo referencian siguen resolviendo.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, companyID, userID, id string) error {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermProductsManage)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	if _, err := uc.GetProduct(ctx, companyID, id); err != nil {
		return err
	}
	return uc.productRepo.SoftDelete(ctx, id)
}
