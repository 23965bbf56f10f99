package payroll

import (
	"context"

	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// PayrollTxRunner ejecuta una función dentro de una transacción que abarca
// nómina y libro financiero (acción de pago: sub-registro + asiento salary).
type PayrollTxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		salaryRepo repository.SalaryRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
