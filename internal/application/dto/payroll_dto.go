package dto

import "github.com/shopspring/decimal"

// MarkAttendanceRequest registra/actualiza la asistencia diaria de un trabajador.
type MarkAttendanceRequest struct {
	WorkerID      string          `json:"worker_id"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Status        string          `json:"status"`
	WorkingHours  decimal.Decimal `json:"working_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LeaveType     string          `json:"leave_type,omitempty"`
}

// SalaryComponentsRequest componentes aportados por el caller; deducciones
// default a cero (puntos de extensión sin cálculo automático).
type SalaryComponentsRequest struct {
	Bonus     decimal.Decimal `json:"bonus"`
	Allowance decimal.Decimal `json:"allowance"`
	Advance   decimal.Decimal `json:"advance"`
	Penalty   decimal.Decimal `json:"penalty"`
	Tax       decimal.Decimal `json:"tax"`
	Other     decimal.Decimal `json:"other"`
}

// UpsertSalaryRequest recomputa y persiste la nómina de un trabajador/mes.
type UpsertSalaryRequest struct {
	WorkerID   string                  `json:"worker_id"`
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Components SalaryComponentsRequest `json:"components"`
}

// PaySalaryRequest acción de pago de una nómina. PaidAmount nulo = neto completo.
type PaySalaryRequest struct {
	Method     string           `json:"method"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
}

// SalaryResponse registro de nómina con desglose.
type SalaryResponse struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"worker_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	PresentDays  int             `json:"present_days"`
	AbsentDays   int             `json:"absent_days"`
	LateDays     int             `json:"late_days"`
	WorkingHours decimal.Decimal `json:"working_hours"`

	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	OvertimeRate   decimal.Decimal `json:"overtime_rate"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount"`
	Bonus          decimal.Decimal `json:"bonus"`
	Allowance      decimal.Decimal `json:"allowance"`
	EarningsTotal  decimal.Decimal `json:"earnings_total"`

	Advance         decimal.Decimal `json:"advance"`
	Penalty         decimal.Decimal `json:"penalty"`
	Tax             decimal.Decimal `json:"tax"`
	OtherDeduction  decimal.Decimal `json:"other_deduction"`
	DeductionsTotal decimal.Decimal `json:"deductions_total"`

	NetSalary decimal.Decimal `json:"net_salary"`

	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidAt        string          `json:"paid_at,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}
