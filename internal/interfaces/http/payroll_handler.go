package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/payroll"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// PayrollHandler maneja asistencia y nómina (protegido, admin/manager).
type PayrollHandler struct {
	uc *payroll.PayrollUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.PayrollUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc}
}

func toSalaryResponse(s *entity.SalaryRecord) dto.SalaryResponse {
	resp := dto.SalaryResponse{
		ID:           s.ID,
		WorkerID:     s.WorkerID,
		Month:        s.Month,
		Year:         s.Year,
		BaseSalary:   s.BaseSalary,
		PresentDays:  s.PresentDays,
		AbsentDays:   s.AbsentDays,
		LateDays:     s.LateDays,
		WorkingHours: s.WorkingHours,

		OvertimeHours:  s.OvertimeHours,
		OvertimeRate:   s.OvertimeRate,
		OvertimeAmount: s.OvertimeAmount,
		Bonus:          s.Bonus,
		Allowance:      s.Allowance,
		EarningsTotal:  s.EarningsTotal,

		Advance:         s.Advance,
		Penalty:         s.Penalty,
		Tax:             s.Tax,
		OtherDeduction:  s.OtherDeduction,
		DeductionsTotal: s.DeductionsTotal,

		NetSalary: s.NetSalary,

		PaymentStatus: s.PaymentStatus,
		PaymentMethod: s.PaymentMethod,
		PaidAmount:    s.PaidAmount,
		TransactionID: s.TransactionID,
	}
	if s.PaidAt != nil {
		resp.PaidAt = s.PaidAt.Format(time.RFC3339)
	}
	return resp
}

// MarkAttendance registra o corrige la asistencia diaria de un trabajador.
// POST /api/attendance
func (h *PayrollHandler) MarkAttendance(c *fiber.Ctx) error {
	var in dto.MarkAttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.MarkAttendance(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":             rec.ID,
		"worker_id":      rec.WorkerID,
		"date":           rec.Date.Format("2006-01-02"),
		"status":         rec.Status,
		"working_hours":  rec.WorkingHours,
		"overtime_hours": rec.OvertimeHours,
	})
}

// Compute calcula la nómina del mes sin persistirla (solo lectura,
// componentes en cero).
// GET /api/payroll/compute?worker_id=&month=&year=
func (h *PayrollHandler) Compute(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	comp, err := h.uc.ComputeSalary(c.Context(), GetCompanyID(c), c.Query("worker_id"), month, year, dto.SalaryComponentsRequest{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comp)
}

// UpsertSalary recomputa y persiste la nómina de un trabajador/mes. El
// sub-registro de pago previo, si existe, se preserva.
// POST /api/payroll/salaries
func (h *PayrollHandler) UpsertSalary(c *fiber.Ctx) error {
	var in dto.UpsertSalaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.UpsertSalaryRecord(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalaryResponse(record))
}

// RecomputeAll recomputa la nómina del mes para todos los trabajadores
// activos; responde cuántos registros quedaron al día.
// POST /api/payroll/salaries/recompute?month=&year=
func (h *PayrollHandler) RecomputeAll(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	n, err := h.uc.RecomputeAll(c.Context(), GetCompanyID(c), GetUserID(c), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recomputed": n, "month": month, "year": year})
}

// Pay marca una nómina como pagada (total o parcial) y asienta el egreso.
// POST /api/payroll/salaries/:id/pay
func (h *PayrollHandler) Pay(c *fiber.Ctx) error {
	var in dto.PaySalaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.PaySalary(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Method, in.PaidAmount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalaryResponse(record))
}

// GetSalary obtiene un registro de nómina.
// GET /api/payroll/salaries/:id
func (h *PayrollHandler) GetSalary(c *fiber.Ctx) error {
	record, err := h.uc.GetSalary(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalaryResponse(record))
}

// ListSalaries lista la nómina de la empresa, opcionalmente de un mes.
// GET /api/payroll/salaries?month=&year=
func (h *PayrollHandler) ListSalaries(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListSalaries(c.Context(), GetCompanyID(c), c.QueryInt("month"), c.QueryInt("year"), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSalaryResponse(s))
	}
	return c.JSON(out)
}
