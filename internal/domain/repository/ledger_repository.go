package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// LedgerFilter filtros de listado del libro financiero.
type LedgerFilter struct {
	Type          string
	ReferenceType string
	ReferenceID   string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// LedgerRepository es el puerto del libro financiero. Append-only: solo
// Create y listados; la auditabilidad depende de que nadie edite asientos.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	ListByCompany(ctx context.Context, companyID string, filter LedgerFilter) ([]*entity.LedgerEntry, error)
}
