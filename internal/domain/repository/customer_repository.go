package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// ApplySale acumula una venta completada en la cuenta del cliente:
	// TotalPurchases += total, DueAmount += due (solo pago diferido),
	// LastPurchaseAt = at. Un solo UPDATE con incrementos atómicos.
	ApplySale(ctx context.Context, id string, total, due decimal.Decimal, at time.Time) error
}
