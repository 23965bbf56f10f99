package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// SalaryRepository define el puerto de persistencia de nómina.
type SalaryRepository interface {
	// Upsert inserta o sobreescribe los campos calculados del registro
	// (clave: empresa+trabajador+mes+año). Las columnas del sub-registro de
	// pago no participan del UPDATE, así la recomputación nunca borra el
	// historial de un pago ya hecho. Retorna el ID resultante.
	Upsert(ctx context.Context, record *entity.SalaryRecord) (string, error)
	GetByID(ctx context.Context, id string) (*entity.SalaryRecord, error)
	GetByWorkerPeriod(ctx context.Context, workerID string, month, year int) (*entity.SalaryRecord, error)
	ListByCompany(ctx context.Context, companyID string, month, year, limit, offset int) ([]*entity.SalaryRecord, error)
	// RecordPayment escribe el sub-registro de pago de una nómina.
	RecordPayment(ctx context.Context, id, status, method string, paidAmount decimal.Decimal, paidAt time.Time, transactionID string) error
}
