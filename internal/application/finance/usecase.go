package finance

import (
	"context"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// LedgerUseCase expone el libro financiero en solo lectura. Los asientos los
// escriben las ventas y la nómina dentro de sus propias transacciones; aquí
// no hay mutadores.
type LedgerUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ListEntries lista los asientos de la empresa con los filtros dados.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, companyID string, filter repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return uc.ledgerRepo.ListByCompany(ctx, companyID, filter)
}
