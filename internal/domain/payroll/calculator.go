package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// Convención de nómina: el divisor del mes es SIEMPRE 30 días, sin importar
// el calendario real del mes objetivo. Es política de negocio heredada del
// sistema original; mantiene comparables las nóminas entre meses.
const DaysInMonthConvention = 30

// DefaultWorkdayHours jornada por defecto cuando el registro de asistencia
// no trae horas trabajadas.
const DefaultWorkdayHours = 8

// overtimeFactor multiplicador de la tarifa de hora extra derivada.
var overtimeFactor = decimal.NewFromFloat(1.5)

// Config configuración de pago del trabajador más los componentes que el
// caller puede aportar. Las deducciones default a cero: son puntos de
// extensión sin lógica de cálculo propia (se preserva el comportamiento
// del sistema original).
type Config struct {
	BaseSalary   decimal.Decimal
	OvertimeRate decimal.Decimal // cero = usar tarifa derivada
	Bonus        decimal.Decimal
	Allowance    decimal.Decimal
	Advance      decimal.Decimal
	Penalty      decimal.Decimal
	Tax          decimal.Decimal
	Other        decimal.Decimal
}

// Computation resultado puro del cálculo de nómina de un mes.
type Computation struct {
	BaseSalary   decimal.Decimal
	PresentDays  int
	AbsentDays   int
	LateDays     int
	WorkingHours decimal.Decimal

	OvertimeHours  decimal.Decimal
	OvertimeRate   decimal.Decimal
	OvertimeAmount decimal.Decimal
	Bonus          decimal.Decimal
	Allowance      decimal.Decimal
	EarningsTotal  decimal.Decimal

	Advance         decimal.Decimal
	Penalty         decimal.Decimal
	Tax             decimal.Decimal
	OtherDeduction  decimal.Decimal
	DeductionsTotal decimal.Decimal

	NetSalary decimal.Decimal
}

// DerivedOvertimeRate tarifa de hora extra por defecto:
// (salarioBase / 30 / 8) * 1.5.
func DerivedOvertimeRate(baseSalary decimal.Decimal) decimal.Decimal {
	hourly := baseSalary.
		Div(decimal.NewFromInt(DaysInMonthConvention)).
		Div(decimal.NewFromInt(DefaultWorkdayHours))
	return hourly.Mul(overtimeFactor)
}

// Calculate deriva la nómina del mes a partir de los hechos de asistencia y
// la configuración de pago (función pura, sin efectos).
//
//	tarifaDiaria  = salarioBase / 30
//	devengos      = tarifaDiaria*díasPresente + horasExtra*tarifaExtra + bono + auxilio
//	deducciones   = anticipo + sanción + impuesto + otros
//	netSalary     = max(0, devengos - deducciones)
func Calculate(cfg Config, records []*entity.AttendanceRecord) Computation {
	c := Computation{
		BaseSalary:     cfg.BaseSalary,
		Bonus:          cfg.Bonus,
		Allowance:      cfg.Allowance,
		Advance:        cfg.Advance,
		Penalty:        cfg.Penalty,
		Tax:            cfg.Tax,
		OtherDeduction: cfg.Other,
	}

	defaultHours := decimal.NewFromInt(DefaultWorkdayHours)
	for _, r := range records {
		switch r.Status {
		case entity.AttendancePresent:
			c.PresentDays++
			hours := r.WorkingHours
			if hours.IsZero() {
				hours = defaultHours
			}
			c.WorkingHours = c.WorkingHours.Add(hours)
			c.OvertimeHours = c.OvertimeHours.Add(r.OvertimeHours)
		case entity.AttendanceLate:
			c.LateDays++
			hours := r.WorkingHours
			if hours.IsZero() {
				hours = defaultHours
			}
			c.WorkingHours = c.WorkingHours.Add(hours)
		case entity.AttendanceAbsent:
			c.AbsentDays++
		}
	}

	c.OvertimeRate = cfg.OvertimeRate
	if c.OvertimeRate.IsZero() {
		c.OvertimeRate = DerivedOvertimeRate(cfg.BaseSalary)
	}
	c.OvertimeAmount = c.OvertimeHours.Mul(c.OvertimeRate)

	dailyRate := cfg.BaseSalary.Div(decimal.NewFromInt(DaysInMonthConvention))
	attendancePay := dailyRate.Mul(decimal.NewFromInt(int64(c.PresentDays)))
	c.EarningsTotal = attendancePay.Add(c.OvertimeAmount).Add(c.Bonus).Add(c.Allowance)

	c.DeductionsTotal = c.Advance.Add(c.Penalty).Add(c.Tax).Add(c.OtherDeduction)

	// La nómina neta nunca es negativa
	c.NetSalary = c.EarningsTotal.Sub(c.DeductionsTotal)
	if c.NetSalary.IsNegative() {
		c.NetSalary = decimal.Zero
	}
	return c
}
