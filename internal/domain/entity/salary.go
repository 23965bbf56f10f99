package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de un registro de nómina.
const (
	SalaryPaymentPending = "pending"
	SalaryPaymentPartial = "partial"
	SalaryPaymentPaid    = "paid"
)

// SalaryRecord es la nómina mensual de un trabajador, única por
// (empresa, trabajador, mes, año). Los campos calculados se sobreescriben
// en cada recomputación (upsert idempotente); el sub-registro de pago de
// una nómina ya pagada nunca se pisa.
type SalaryRecord struct {
	ID         string
	CompanyID  string
	WorkerID   string
	Month      int // 1-12
	Year       int
	BaseSalary decimal.Decimal // snapshot del salario base del trabajador

	// Resumen de asistencia
	PresentDays  int
	AbsentDays   int
	LateDays     int
	WorkingHours decimal.Decimal

	// Desglose de devengos
	OvertimeHours  decimal.Decimal
	OvertimeRate   decimal.Decimal
	OvertimeAmount decimal.Decimal
	Bonus          decimal.Decimal
	Allowance      decimal.Decimal
	EarningsTotal  decimal.Decimal

	// Desglose de deducciones
	Advance         decimal.Decimal
	Penalty         decimal.Decimal
	Tax             decimal.Decimal
	OtherDeduction  decimal.Decimal
	DeductionsTotal decimal.Decimal

	NetSalary decimal.Decimal // max(0, devengos - deducciones)

	// Sub-registro de pago (se muta una vez con la acción de pago)
	PaymentStatus string
	PaymentMethod string
	PaidAmount    decimal.Decimal
	PaidAt        *time.Time
	TransactionID string

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
