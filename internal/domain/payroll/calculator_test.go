package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/payroll"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func record(n int, status string, working, overtime float64) *entity.AttendanceRecord {
	return &entity.AttendanceRecord{
		WorkerID:      "w1",
		Date:          day(n),
		Status:        status,
		WorkingHours:  decimal.NewFromFloat(working),
		OvertimeHours: decimal.NewFromFloat(overtime),
	}
}

// presentDays genera n registros present consecutivos sin horas explícitas.
func presentDays(n int, overtimePerDay float64) []*entity.AttendanceRecord {
	out := make([]*entity.AttendanceRecord, 0, n)
	for i := 1; i <= n; i++ {
		ot := 0.0
		if i <= 1 {
			ot = overtimePerDay
		}
		out = append(out, record(i, entity.AttendancePresent, 0, ot))
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Vector exacto: salario base 3000, 22 días presente, 4h extra a tarifa 20,
// bono 100 → neto = (3000/30)*22 + 4*20 + 100 = 2200 + 80 + 100 = 2380.
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_VectorExacto(t *testing.T) {
	records := presentDays(22, 4)
	cfg := payroll.Config{
		BaseSalary:   decimal.NewFromInt(3000),
		OvertimeRate: decimal.NewFromInt(20),
		Bonus:        decimal.NewFromInt(100),
	}

	c := payroll.Calculate(cfg, records)

	require.Equal(t, 22, c.PresentDays)
	assert.True(t, c.OvertimeHours.Equal(decimal.NewFromInt(4)), "horas extra: %s", c.OvertimeHours)
	assert.True(t, c.OvertimeAmount.Equal(decimal.NewFromInt(80)), "monto extra: %s", c.OvertimeAmount)
	assert.True(t, c.EarningsTotal.Equal(decimal.NewFromInt(2380)), "devengos: %s", c.EarningsTotal)
	assert.True(t, c.NetSalary.Equal(decimal.NewFromInt(2380)), "neto: %s", c.NetSalary)
}

func TestCalculate_ConteosPorEstado(t *testing.T) {
	records := []*entity.AttendanceRecord{
		record(1, entity.AttendancePresent, 8, 0),
		record(2, entity.AttendancePresent, 6, 2),
		record(3, entity.AttendanceLate, 0, 0), // jornada por defecto (8h)
		record(4, entity.AttendanceAbsent, 0, 0),
		record(5, entity.AttendanceHoliday, 0, 0),
		record(6, entity.AttendanceLeave, 0, 0),
	}
	c := payroll.Calculate(payroll.Config{BaseSalary: decimal.NewFromInt(3000)}, records)

	assert.Equal(t, 2, c.PresentDays)
	assert.Equal(t, 1, c.LateDays)
	assert.Equal(t, 1, c.AbsentDays)
	// 8 + 6 + 8 (late con default) = 22
	assert.True(t, c.WorkingHours.Equal(decimal.NewFromInt(22)), "horas: %s", c.WorkingHours)
	// Las horas extra de un día late no cuentan
	assert.True(t, c.OvertimeHours.Equal(decimal.NewFromInt(2)))
}

func TestCalculate_TarifaExtraDerivada(t *testing.T) {
	// (2400/30/8)*1.5 = 15
	rate := payroll.DerivedOvertimeRate(decimal.NewFromInt(2400))
	assert.True(t, rate.Equal(decimal.NewFromInt(15)), "tarifa derivada: %s", rate)

	// Sin tarifa configurada, Calculate usa la derivada
	records := presentDays(1, 2)
	c := payroll.Calculate(payroll.Config{BaseSalary: decimal.NewFromInt(2400)}, records)
	assert.True(t, c.OvertimeRate.Equal(decimal.NewFromInt(15)))
	assert.True(t, c.OvertimeAmount.Equal(decimal.NewFromInt(30)))
}

func TestCalculate_NetoNuncaNegativo(t *testing.T) {
	records := presentDays(1, 0)
	cfg := payroll.Config{
		BaseSalary: decimal.NewFromInt(300), // 1 día presente = 10
		Advance:    decimal.NewFromInt(500),
	}
	c := payroll.Calculate(cfg, records)

	assert.True(t, c.DeductionsTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, c.NetSalary.IsZero(), "el neto se recorta a cero, no %s", c.NetSalary)
}

func TestCalculate_DeduccionesDefaultCero(t *testing.T) {
	c := payroll.Calculate(payroll.Config{BaseSalary: decimal.NewFromInt(3000)}, presentDays(10, 0))
	assert.True(t, c.DeductionsTotal.IsZero())
	assert.True(t, c.NetSalary.Equal(c.EarningsTotal))
}

func TestCalculate_SinAsistencia(t *testing.T) {
	c := payroll.Calculate(payroll.Config{BaseSalary: decimal.NewFromInt(3000)}, nil)
	assert.Equal(t, 0, c.PresentDays)
	assert.True(t, c.NetSalary.IsZero())
}
