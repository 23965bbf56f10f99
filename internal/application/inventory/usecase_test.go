package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

const (
	companyID = "company-1"
	userID    = "worker-1"
	productID = "product-1"
)

// ── Dobles mínimos en memoria ─────────────────────────────────────────────────

type stubProductRepo struct {
	product *entity.Product
}

func (r *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return r.product, nil
}
func (r *stubProductRepo) GetByCompanyAndSKU(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) GetForUpdate(context.Context, string) (*entity.Product, error) {
	return r.product, nil
}
func (r *stubProductRepo) UpdateStock(_ context.Context, _ string, quantity decimal.Decimal, location string) error {
	r.product.StockQuantity = quantity
	r.product.Location = location
	return nil
}
func (r *stubProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) SoftDelete(context.Context, string) error      { return nil }
func (r *stubProductRepo) ListByCompany(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type stubMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *stubMovementRepo) GetByID(context.Context, string) (*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *stubMovementRepo) GetLatestByProduct(context.Context, string) (*entity.InventoryMovement, error) {
	if len(r.movements) == 0 {
		return nil, nil
	}
	return r.movements[len(r.movements)-1], nil
}
func (r *stubMovementRepo) ListByProduct(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}
func (r *stubMovementRepo) ListByCompany(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

// passTxRunner ejecuta fn directamente con los repos compartidos.
type passTxRunner struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

func (r *passTxRunner) Run(_ context.Context, fn func(
	repository.InventoryMovementRepository,
	repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.productRepo)
}

// conflictTxRunner falla con ErrConflict n veces antes de delegar.
type conflictTxRunner struct {
	inner     *passTxRunner
	failures  int
	attempted int
}

func (r *conflictTxRunner) Run(ctx context.Context, fn func(
	repository.InventoryMovementRepository,
	repository.ProductRepository,
) error) error {
	r.attempted++
	if r.attempted <= r.failures {
		return domain.ErrConflict
	}
	return r.inner.Run(ctx, fn)
}

type allowGuard struct{}

func (allowGuard) Authorize(context.Context, string, string, string) (bool, error) {
	return true, nil
}

func fixture(stock int64, location string) (*inventory.AdjustStockUseCase, *stubProductRepo, *stubMovementRepo) {
	productRepo := &stubProductRepo{product: &entity.Product{
		ID:            productID,
		CompanyID:     companyID,
		StockQuantity: decimal.NewFromInt(stock),
		Location:      location,
		Active:        true,
	}}
	movRepo := &stubMovementRepo{}
	tx := &passTxRunner{movRepo: movRepo, productRepo: productRepo}
	uc := inventory.NewAdjustStockUseCase(tx, allowGuard{}, productRepo, movRepo)
	return uc, productRepo, movRepo
}

func adjust(t *testing.T, uc *inventory.AdjustStockUseCase, kind string, qty int64) (*entity.InventoryMovement, decimal.Decimal, error) {
	t.Helper()
	return uc.AdjustStock(context.Background(), inventory.AdjustInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: productID,
		Type:      kind,
		Quantity:  decimal.NewFromInt(qty),
	})
}

// ── Tipos de movimiento ───────────────────────────────────────────────────────

func TestAdjustStock_Entrada(t *testing.T) {
	uc, productRepo, movRepo := fixture(10, "A-1")

	mov, newQty, err := adjust(t, uc, entity.MovementTypeIn, 5)
	require.NoError(t, err)

	assert.True(t, newQty.Equal(decimal.NewFromInt(15)))
	assert.True(t, productRepo.product.StockQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, mov.QuantityBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.QuantityAfter.Equal(decimal.NewFromInt(15)))
	assert.Len(t, movRepo.movements, 1)
}

func TestAdjustStock_Salida(t *testing.T) {
	uc, _, _ := fixture(10, "A-1")
	_, newQty, err := adjust(t, uc, entity.MovementTypeOut, 4)
	require.NoError(t, err)
	assert.True(t, newQty.Equal(decimal.NewFromInt(6)))
}

// TestAdjustStock_SalidaInsuficiente el contador nunca baja de cero: la
// salida que excede el stock se rechaza sin registrar movimiento.
func TestAdjustStock_SalidaInsuficiente(t *testing.T) {
	uc, productRepo, movRepo := fixture(3, "A-1")

	_, _, err := adjust(t, uc, entity.MovementTypeOut, 5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, productRepo.product.StockQuantity.Equal(decimal.NewFromInt(3)), "contador intacto")
	assert.Empty(t, movRepo.movements, "sin movimiento fantasma")
}

// TestAdjustStock_AjusteAbsoluto adjustment fija el contador al valor dado.
func TestAdjustStock_AjusteAbsoluto(t *testing.T) {
	uc, _, _ := fixture(10, "A-1")
	mov, newQty, err := adjust(t, uc, entity.MovementTypeAdjustment, 2)
	require.NoError(t, err)
	assert.True(t, newQty.Equal(decimal.NewFromInt(2)))
	assert.True(t, mov.QuantityBefore.Equal(decimal.NewFromInt(10)))
}

// TestAdjustStock_TransferenciaNoAlteraTotal transfer mueve la ubicación
// del producto y deja el total exactamente igual.
func TestAdjustStock_TransferenciaNoAlteraTotal(t *testing.T) {
	uc, productRepo, movRepo := fixture(10, "A-1")

	_, newQty, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{
		CompanyID:    companyID,
		UserID:       userID,
		ProductID:    productID,
		Type:         entity.MovementTypeTransfer,
		Quantity:     decimal.NewFromInt(10),
		FromLocation: "A-1",
		ToLocation:   "B-2",
	})
	require.NoError(t, err)

	assert.True(t, newQty.Equal(decimal.NewFromInt(10)), "el total no cambia")
	assert.Equal(t, "B-2", productRepo.product.Location)
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, "A-1", movRepo.movements[0].FromLocation)
	assert.Equal(t, "B-2", movRepo.movements[0].ToLocation)
}

func TestAdjustStock_TransferenciaMismaUbicacion(t *testing.T) {
	uc, _, _ := fixture(10, "A-1")
	_, _, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{
		CompanyID:    companyID,
		UserID:       userID,
		ProductID:    productID,
		Type:         entity.MovementTypeTransfer,
		Quantity:     decimal.NewFromInt(1),
		FromLocation: "A-1",
		ToLocation:   "A-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Reintentos y conciliación ─────────────────────────────────────────────────

// TestAdjustStock_ReintentaAnteConflicto un conflicto de escritura
// transitorio se reintenta acotadamente y termina aplicándose.
func TestAdjustStock_ReintentaAnteConflicto(t *testing.T) {
	productRepo := &stubProductRepo{product: &entity.Product{
		ID: productID, CompanyID: companyID,
		StockQuantity: decimal.NewFromInt(10), Active: true,
	}}
	movRepo := &stubMovementRepo{}
	tx := &conflictTxRunner{
		inner:    &passTxRunner{movRepo: movRepo, productRepo: productRepo},
		failures: 2,
	}
	uc := inventory.NewAdjustStockUseCase(tx, allowGuard{}, productRepo, movRepo)

	_, newQty, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{
		CompanyID: companyID, UserID: userID, ProductID: productID,
		Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.True(t, newQty.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 3, tx.attempted, "dos conflictos + un éxito")
}

// TestAdjustStock_ConflictoPersistentePropaga agotados los reintentos el
// conflicto se propaga al caller.
func TestAdjustStock_ConflictoPersistentePropaga(t *testing.T) {
	productRepo := &stubProductRepo{product: &entity.Product{
		ID: productID, CompanyID: companyID,
		StockQuantity: decimal.NewFromInt(10), Active: true,
	}}
	movRepo := &stubMovementRepo{}
	tx := &conflictTxRunner{
		inner:    &passTxRunner{movRepo: movRepo, productRepo: productRepo},
		failures: 100,
	}
	uc := inventory.NewAdjustStockUseCase(tx, allowGuard{}, productRepo, movRepo)

	_, _, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{
		CompanyID: companyID, UserID: userID, ProductID: productID,
		Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestReconcile_Consistente tras una cadena de ajustes el QuantityAfter del
// último movimiento coincide con el contador.
func TestReconcile_Consistente(t *testing.T) {
	uc, _, _ := fixture(10, "A-1")

	_, _, err := adjust(t, uc, entity.MovementTypeIn, 5)
	require.NoError(t, err)
	_, _, err = adjust(t, uc, entity.MovementTypeOut, 3)
	require.NoError(t, err)

	stock, ledger, consistent, err := uc.Reconcile(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.True(t, consistent)
	assert.True(t, stock.Equal(decimal.NewFromInt(12)))
	assert.True(t, ledger.Equal(stock))
}

// TestReconcile_Divergencia un contador manipulado fuera del libro se
// detecta como inconsistencia.
func TestReconcile_Divergencia(t *testing.T) {
	uc, productRepo, _ := fixture(10, "A-1")

	_, _, err := adjust(t, uc, entity.MovementTypeIn, 5)
	require.NoError(t, err)

	// Corrupción directa del contador, sin movimiento que la respalde
	productRepo.product.StockQuantity = decimal.NewFromInt(99)

	stock, ledger, consistent, err := uc.Reconcile(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.False(t, consistent)
	assert.True(t, stock.Equal(decimal.NewFromInt(99)))
	assert.True(t, ledger.Equal(decimal.NewFromInt(15)))
}

// TestReconcile_SinMovimientos sin historia el contador inicial es la verdad.
func TestReconcile_SinMovimientos(t *testing.T) {
	uc, _, _ := fixture(7, "A-1")
	stock, ledger, consistent, err := uc.Reconcile(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.True(t, consistent)
	assert.True(t, stock.Equal(decimal.NewFromInt(7)))
	assert.True(t, ledger.Equal(decimal.NewFromInt(7)))
}
