package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/sales"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// Dobles en memoria para los casos de uso de ventas. Sin mocks generados:
// estructuras simples que respetan el contrato de cada puerto.

type memSaleRepo struct {
	sales   map[string]*entity.Sale
	numbers map[string]bool // companyID+number
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: map[string]*entity.Sale{}, numbers: map[string]bool{}}
}

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	key := sale.CompanyID + "|" + sale.Number
	if r.numbers[key] {
		return domain.ErrDuplicate
	}
	r.numbers[key] = true
	r.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *memSaleRepo) CountByCompany(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *memSaleRepo) ListByCompany(_ context.Context, companyID string, _ repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	s, ok := r.sales[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	s.Status = status
	s.UpdatedAt = at
	return nil
}

func (r *memSaleRepo) UpdatePaymentStatus(_ context.Context, id, paymentStatus string, at time.Time) error {
	s, ok := r.sales[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	s.PaymentStatus = paymentStatus
	s.UpdatedAt = at
	return nil
}

type memMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) GetLatestByProduct(_ context.Context, productID string) (*entity.InventoryMovement, error) {
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			return r.movements[i], nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByCompany(_ context.Context, companyID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, quantity decimal.Decimal, location string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.StockQuantity = quantity
	p.Location = location
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	p.Active = false
	return nil
}

func (r *memProductRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	r := &memCustomerRepo{customers: map[string]*entity.Customer{}}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *memCustomerRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) ApplySale(_ context.Context, id string, total, due decimal.Decimal, at time.Time) error {
	c, ok := r.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalPurchases = c.TotalPurchases.Add(total)
	c.DueAmount = c.DueAmount.Add(due)
	c.LastPurchaseAt = &at
	return nil
}

type memLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (r *memLedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memLedgerRepo) ListByCompany(_ context.Context, companyID string, _ repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeSaleTxRunner pasa los repos compartidos sin transacción real.
// failErr simula el fallo de la transacción (rollback en la base real).
type fakeSaleTxRunner struct {
	saleRepo     repository.SaleRepository
	movRepo      repository.InventoryMovementRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
	failErr      error
}

func (f *fakeSaleTxRunner) RunSale(_ context.Context, fn func(
	repository.SaleRepository,
	repository.InventoryMovementRepository,
	repository.ProductRepository,
	repository.CustomerRepository,
	repository.LedgerRepository,
) error) error {
	if f.failErr != nil {
		return f.failErr
	}
	return fn(f.saleRepo, f.movRepo, f.productRepo, f.customerRepo, f.ledgerRepo)
}

type allowAllGuard struct{}

func (allowAllGuard) Authorize(context.Context, string, string, string) (bool, error) {
	return true, nil
}

type denyAllGuard struct{}

func (denyAllGuard) Authorize(context.Context, string, string, string) (bool, error) {
	return false, nil
}

// fakePayments registra los cobros; err simula rechazo de la pasarela.
type fakePayments struct {
	charges []decimal.Decimal
	ref     string
	err     error
}

func (f *fakePayments) Charge(_ context.Context, amount decimal.Decimal, _ string, _ map[string]interface{}) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.charges = append(f.charges, amount)
	if f.ref == "" {
		return "pay_test_001", nil
	}
	return f.ref, nil
}

type memIdempotency struct {
	keys   map[string]string
	getErr error // simula un store caído en la lectura
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: map[string]string{}}
}

func (s *memIdempotency) Get(_ context.Context, companyID, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.keys[companyID+"|"+key], nil
}

func (s *memIdempotency) Put(_ context.Context, companyID, key, saleID string) error {
	s.keys[companyID+"|"+key] = saleID
	return nil
}

// noTx TxRunner de inventario que nunca se usa en estos tests.
type noTx struct{}

func (noTx) Run(context.Context, func(repository.InventoryMovementRepository, repository.ProductRepository) error) error {
	panic("no debe invocarse en este test")
}

// Alias para verificar en compilación que los dobles cumplen los puertos.
var (
	_ repository.SaleRepository = (*memSaleRepo)(nil)
	_ sales.SaleTxRunner        = (*fakeSaleTxRunner)(nil)
)
