package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// CustomerUseCase altas y consulta de clientes. La cuenta corriente
// (TotalPurchases/DueAmount) no se edita aquí: la acumulan las ventas.
type CustomerUseCase struct {
	guard        ports.AccessGuard
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(guard ports.AccessGuard, customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{guard: guard, customerRepo: customerRepo}
}

// CreateCustomer alta de cliente con cuenta corriente en cero.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, companyID, userID string, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermCustomersManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Mobile:    in.Mobile,
		Address:   in.Address,
		TaxID:     in.TaxID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer lee un cliente (alcance por empresa).
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

// ListCustomers lista clientes de la empresa.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	return uc.customerRepo.ListByCompany(ctx, companyID, limit, offset)
}

// UpdateCustomer edita datos de contacto; nunca la cuenta corriente.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, companyID, userID, id string, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermCustomersManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	customer, err := uc.GetCustomer(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	customer.Mobile = in.Mobile
	customer.Address = in.Address
	customer.TaxID = in.TaxID
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
