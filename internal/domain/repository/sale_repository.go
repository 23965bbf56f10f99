package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas (alcance por empresa).
type SaleFilter struct {
	CustomerID string
	Kind       string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	// Create persiste cabecera y líneas. Retorna domain.ErrDuplicate si el
	// número consecutivo choca con otro de la misma empresa (el caller
	// regenera y reintenta).
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// CountByCompany cantidad de ventas de la empresa (base del consecutivo).
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	ListByCompany(ctx context.Context, companyID string, filter SaleFilter) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string, at time.Time) error
}
