package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, company_id, worker_id, date, status,
	working_hours, overtime_hours, leave_type, created_at, updated_at, created_by`

// AttendanceRepo adaptador de asistencia diaria.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx.
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Upsert registra o corrige la asistencia del día. La unicidad por
// (company_id, worker_id, date) la resuelve ON CONFLICT en la base, no un
// check-then-insert.
func (r *AttendanceRepo) Upsert(ctx context.Context, rec *entity.AttendanceRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO attendance_records (id, company_id, worker_id, date, status,
			working_hours, overtime_hours, leave_type, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, worker_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			working_hours = EXCLUDED.working_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			leave_type = EXCLUDED.leave_type,
			updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.CompanyID, rec.WorkerID, rec.Date, rec.Status,
		rec.WorkingHours, rec.OvertimeHours, rec.LeaveType,
		rec.CreatedAt, rec.UpdatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// GetByWorkerAndDate obtiene la asistencia de un día.
func (r *AttendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	err := r.q.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records
		 WHERE worker_id = $1 AND date = $2`,
		workerID, date,
	).Scan(
		&rec.ID, &rec.CompanyID, &rec.WorkerID, &rec.Date, &rec.Status,
		&rec.WorkingHours, &rec.OvertimeHours, &rec.LeaveType,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &rec, nil
}

// ListByWorkerRange asistencia del trabajador en [from, to] inclusive.
func (r *AttendanceRepo) ListByWorkerRange(ctx context.Context, workerID string, from, to time.Time) ([]*entity.AttendanceRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records
		 WHERE worker_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date`,
		workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttendanceRecord
	for rows.Next() {
		var rec entity.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.WorkerID, &rec.Date, &rec.Status,
			&rec.WorkingHours, &rec.OvertimeHours, &rec.LeaveType,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
