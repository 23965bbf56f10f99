package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	dompayroll "github.com/jhoicas/taller-erp/internal/domain/payroll"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// PayrollUseCase deriva la nómina mensual desde los hechos de asistencia y
// la configuración de pago del trabajador, con upsert idempotente por
// (trabajador, mes, año) y acción de pago que emite exactamente un asiento
// salary en el libro financiero.
type PayrollUseCase struct {
	txRunner       PayrollTxRunner
	guard          ports.AccessGuard
	workerRepo     repository.WorkerRepository
	attendanceRepo repository.AttendanceRepository
	salaryRepo     repository.SalaryRepository
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(
	txRunner PayrollTxRunner,
	guard ports.AccessGuard,
	workerRepo repository.WorkerRepository,
	attendanceRepo repository.AttendanceRepository,
	salaryRepo repository.SalaryRepository,
) *PayrollUseCase {
	return &PayrollUseCase{
		txRunner:       txRunner,
		guard:          guard,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
	}
}

// monthRange [inicio, fin] del mes calendario (solo para consultar
// asistencia; el divisor de la nómina sigue siendo la convención de 30).
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// ComputeSalary calcula la nómina del mes SIN efectos (lectura pura).
func (uc *PayrollUseCase) ComputeSalary(ctx context.Context, companyID, workerID string, month, year int, components dto.SalaryComponentsRequest) (dompayroll.Computation, error) {
	var zero dompayroll.Computation
	if month < 1 || month > 12 || year < 2000 {
		return zero, domain.ErrInvalidInput
	}
	worker, err := uc.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return zero, err
	}
	if worker == nil {
		return zero, domain.ErrWorkerNotFound
	}
	if worker.CompanyID != companyID {
		return zero, domain.ErrForbidden
	}

	from, to := monthRange(month, year)
	records, err := uc.attendanceRepo.ListByWorkerRange(ctx, workerID, from, to)
	if err != nil {
		return zero, err
	}
	cfg := dompayroll.Config{
		BaseSalary:   worker.BaseSalary,
		OvertimeRate: worker.OvertimeRate,
		Bonus:        components.Bonus,
		Allowance:    components.Allowance,
		Advance:      components.Advance,
		Penalty:      components.Penalty,
		Tax:          components.Tax,
		Other:        components.Other,
	}
	return dompayroll.Calculate(cfg, records), nil
}

// UpsertSalaryRecord recomputa y persiste la nómina del mes. Idempotente:
// repetirlo con la misma entrada deja exactamente un registro con los mismos
// campos, y nunca pisa el sub-registro de pago de una nómina ya pagada
// (la unicidad la garantiza el índice, no un check-then-insert).
func (uc *PayrollUseCase) UpsertSalaryRecord(ctx context.Context, companyID, userID string, in dto.UpsertSalaryRequest) (*entity.SalaryRecord, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermPayrollManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	c, err := uc.ComputeSalary(ctx, companyID, in.WorkerID, in.Month, in.Year, in.Components)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.SalaryRecord{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		WorkerID:        in.WorkerID,
		Month:           in.Month,
		Year:            in.Year,
		BaseSalary:      c.BaseSalary,
		PresentDays:     c.PresentDays,
		AbsentDays:      c.AbsentDays,
		LateDays:        c.LateDays,
		WorkingHours:    c.WorkingHours,
		OvertimeHours:   c.OvertimeHours,
		OvertimeRate:    c.OvertimeRate,
		OvertimeAmount:  c.OvertimeAmount,
		Bonus:           c.Bonus,
		Allowance:       c.Allowance,
		EarningsTotal:   c.EarningsTotal,
		Advance:         c.Advance,
		Penalty:         c.Penalty,
		Tax:             c.Tax,
		OtherDeduction:  c.OtherDeduction,
		DeductionsTotal: c.DeductionsTotal,
		NetSalary:       c.NetSalary,
		PaymentStatus:   entity.SalaryPaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       userID,
	}
	id, err := uc.salaryRepo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	return uc.salaryRepo.GetByID(ctx, id)
}

// RecomputeAll recomputa la nómina de todos los trabajadores activos de la
// empresa para un mes (upserts independientes; seguro de repetir).
func (uc *PayrollUseCase) RecomputeAll(ctx context.Context, companyID, userID string, month, year int) (int, error) {
	workers, err := uc.workerRepo.ListByCompany(ctx, companyID, 1000, 0)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, w := range workers {
		if w.Status != entity.WorkerStatusActive {
			continue
		}
		_, err := uc.UpsertSalaryRecord(ctx, companyID, userID, dto.UpsertSalaryRequest{
			WorkerID: w.ID,
			Month:    month,
			Year:     year,
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// PaySalary marca el pago de una nómina y emite exactamente un asiento
// salary con el monto pagado (no el neto). paidAmount nulo = neto completo.
// El sub-registro de pago se muta una sola vez: un registro que ya no está
// pending (paid o partial) rechaza un segundo pago, sin pagos incrementales.
func (uc *PayrollUseCase) PaySalary(ctx context.Context, companyID, userID, salaryID, method string, paidAmount *decimal.Decimal) (*entity.SalaryRecord, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermPayrollManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	record, err := uc.salaryRepo.GetByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrSalaryNotFound
	}
	if record.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if record.PaymentStatus != entity.SalaryPaymentPending {
		return nil, domain.ErrConflict
	}
	if method == "" {
		return nil, domain.ErrInvalidInput
	}

	paid := record.NetSalary
	if paidAmount != nil {
		paid = *paidAmount
	}
	if paid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	status := entity.SalaryPaymentPending
	switch {
	case paid.GreaterThanOrEqual(record.NetSalary):
		status = entity.SalaryPaymentPaid
	case paid.GreaterThan(decimal.Zero):
		status = entity.SalaryPaymentPartial
	}

	now := time.Now()
	transactionID := uuid.New().String()
	err = uc.txRunner.RunPayroll(ctx, func(
		salaryRepo repository.SalaryRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if err := salaryRepo.RecordPayment(ctx, salaryID, status, method, paid, now, transactionID); err != nil {
			return err
		}
		entry := &entity.LedgerEntry{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			Type:          entity.LedgerTypeSalary,
			Amount:        paid,
			Description:   "pago de nómina " + record.WorkerID,
			ReferenceType: entity.LedgerRefSalary,
			ReferenceID:   salaryID,
			PaymentMethod: method,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return ledgerRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return uc.salaryRepo.GetByID(ctx, salaryID)
}

// MarkAttendance registra o corrige la asistencia de un día (único por
// trabajador+fecha; el upsert resuelve el duplicado en la base).
func (uc *PayrollUseCase) MarkAttendance(ctx context.Context, companyID, userID string, in dto.MarkAttendanceRequest) (*entity.AttendanceRecord, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermPayrollManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	switch in.Status {
	case entity.AttendancePresent, entity.AttendanceAbsent, entity.AttendanceLate,
		entity.AttendanceHalfDay, entity.AttendanceHoliday, entity.AttendanceLeave:
	default:
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.WorkingHours.IsNegative() || in.OvertimeHours.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	worker, err := uc.workerRepo.GetByID(ctx, in.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrWorkerNotFound
	}
	if worker.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	record := &entity.AttendanceRecord{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		WorkerID:      in.WorkerID,
		Date:          date,
		Status:        in.Status,
		WorkingHours:  in.WorkingHours,
		OvertimeHours: in.OvertimeHours,
		LeaveType:     in.LeaveType,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
	}
	if err := uc.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetSalary lee un registro de nómina (alcance por empresa).
func (uc *PayrollUseCase) GetSalary(ctx context.Context, companyID, id string) (*entity.SalaryRecord, error) {
	record, err := uc.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrSalaryNotFound
	}
	if record.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// ListSalaries lista nóminas de la empresa para un mes.
func (uc *PayrollUseCase) ListSalaries(ctx context.Context, companyID string, month, year, limit, offset int) ([]*entity.SalaryRecord, error) {
	return uc.salaryRepo.ListByCompany(ctx, companyID, month, year, limit, offset)
}
