package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

var _ repository.SalaryRepository = (*SalaryRepo)(nil)

const salaryColumns = `id, company_id, worker_id, month, year, base_salary,
	present_days, absent_days, late_days, working_hours,
	overtime_hours, overtime_rate, overtime_amount, bonus, allowance, earnings_total,
	advance, penalty, tax, other_deduction, deductions_total, net_salary,
	payment_status, payment_method, paid_amount, paid_at, transaction_id,
	created_at, updated_at, created_by`

// SalaryRepo adaptador de nómina.
type SalaryRepo struct {
	q Querier
}

// NewSalaryRepository construye el adaptador. Pasar pool o tx.
func NewSalaryRepository(q Querier) *SalaryRepo {
	return &SalaryRepo{q: q}
}

// Upsert inserta o sobreescribe SOLO los campos calculados, resuelto por el
// índice único (company_id, worker_id, month, year) con ON CONFLICT: dos
// recomputaciones concurrentes del mismo período no duplican fila, y las
// columnas del sub-registro de pago no aparecen en el SET, así un pago ya
// registrado sobrevive a cualquier recomputación.
func (r *SalaryRepo) Upsert(ctx context.Context, rec *entity.SalaryRecord) (string, error) {
	query := `
		INSERT INTO salary_records (id, company_id, worker_id, month, year, base_salary,
			present_days, absent_days, late_days, working_hours,
			overtime_hours, overtime_rate, overtime_amount, bonus, allowance, earnings_total,
			advance, penalty, tax, other_deduction, deductions_total, net_salary,
			payment_status, paid_amount, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, 0, $24, $24, $25)
		ON CONFLICT (company_id, worker_id, month, year) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			late_days = EXCLUDED.late_days,
			working_hours = EXCLUDED.working_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_rate = EXCLUDED.overtime_rate,
			overtime_amount = EXCLUDED.overtime_amount,
			bonus = EXCLUDED.bonus,
			allowance = EXCLUDED.allowance,
			earnings_total = EXCLUDED.earnings_total,
			advance = EXCLUDED.advance,
			penalty = EXCLUDED.penalty,
			tax = EXCLUDED.tax,
			other_deduction = EXCLUDED.other_deduction,
			deductions_total = EXCLUDED.deductions_total,
			net_salary = EXCLUDED.net_salary,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query,
		rec.ID, rec.CompanyID, rec.WorkerID, rec.Month, rec.Year, rec.BaseSalary,
		rec.PresentDays, rec.AbsentDays, rec.LateDays, rec.WorkingHours,
		rec.OvertimeHours, rec.OvertimeRate, rec.OvertimeAmount, rec.Bonus,
		rec.Allowance, rec.EarningsTotal,
		rec.Advance, rec.Penalty, rec.Tax, rec.OtherDeduction, rec.DeductionsTotal,
		rec.NetSalary, rec.PaymentStatus, rec.CreatedAt, rec.CreatedBy,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert salary record: %w", err)
	}
	return id, nil
}

func scanSalary(row pgx.Row) (*entity.SalaryRecord, error) {
	var rec entity.SalaryRecord
	var method, txID *string
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.WorkerID, &rec.Month, &rec.Year, &rec.BaseSalary,
		&rec.PresentDays, &rec.AbsentDays, &rec.LateDays, &rec.WorkingHours,
		&rec.OvertimeHours, &rec.OvertimeRate, &rec.OvertimeAmount, &rec.Bonus,
		&rec.Allowance, &rec.EarningsTotal,
		&rec.Advance, &rec.Penalty, &rec.Tax, &rec.OtherDeduction, &rec.DeductionsTotal,
		&rec.NetSalary,
		&rec.PaymentStatus, &method, &rec.PaidAmount, &rec.PaidAt, &txID,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan salary record: %w", err)
	}
	if method != nil {
		rec.PaymentMethod = *method
	}
	if txID != nil {
		rec.TransactionID = *txID
	}
	return &rec, nil
}

// GetByID obtiene un registro de nómina por ID.
func (r *SalaryRepo) GetByID(ctx context.Context, id string) (*entity.SalaryRecord, error) {
	return scanSalary(r.q.QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM salary_records WHERE id = $1`, id))
}

// GetByWorkerPeriod obtiene la nómina de un trabajador para un mes.
func (r *SalaryRepo) GetByWorkerPeriod(ctx context.Context, workerID string, month, year int) (*entity.SalaryRecord, error) {
	return scanSalary(r.q.QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM salary_records
		 WHERE worker_id = $1 AND month = $2 AND year = $3`,
		workerID, month, year))
}

// ListByCompany lista nóminas de la empresa para un mes.
func (r *SalaryRepo) ListByCompany(ctx context.Context, companyID string, month, year, limit, offset int) ([]*entity.SalaryRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+salaryColumns+` FROM salary_records
		 WHERE company_id = $1 AND month = $2 AND year = $3
		 ORDER BY created_at LIMIT $4 OFFSET $5`,
		companyID, month, year, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list salary records: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalaryRecord
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// RecordPayment escribe el sub-registro de pago.
func (r *SalaryRepo) RecordPayment(ctx context.Context, id, status, method string, paidAmount decimal.Decimal, paidAt time.Time, transactionID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE salary_records SET payment_status = $2, payment_method = $3,
			paid_amount = $4, paid_at = $5, transaction_id = $6, updated_at = $5
		 WHERE id = $1`,
		id, status, method, paidAmount, paidAt, transactionID,
	)
	if err != nil {
		return fmt.Errorf("record salary payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSalaryNotFound
	}
	return nil
}
