package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

const workerColumns = `id, company_id, name, role, status, mobile, email,
	password_hash, base_salary, overtime_rate, joined_at, created_at, updated_at`

// WorkerRepo adaptador de trabajadores.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador. Pasar pool o tx.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

// Create persiste un trabajador. El email es único por empresa.
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO workers (id, company_id, name, role, status, mobile, email,
			password_hash, base_salary, overtime_rate, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		w.ID, w.CompanyID, w.Name, w.Role, w.Status, w.Mobile, w.Email,
		w.PasswordHash, w.BaseSalary, w.OvertimeRate, w.JoinedAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var w entity.Worker
	err := row.Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Role, &w.Status, &w.Mobile, &w.Email,
		&w.PasswordHash, &w.BaseSalary, &w.OvertimeRate, &w.JoinedAt,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan worker: %w", err)
	}
	return &w, nil
}

// GetByID obtiene un trabajador por ID.
func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	return scanWorker(r.q.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
}

// GetByEmail obtiene un trabajador por empresa y email (login).
func (r *WorkerRepo) GetByEmail(ctx context.Context, companyID, email string) (*entity.Worker, error) {
	return scanWorker(r.q.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers
		 WHERE company_id = $1 AND email = $2`,
		companyID, email))
}

// CountActiveByCompany cantidad de trabajadores activos (cupo del plan).
func (r *WorkerRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM workers WHERE company_id = $1 AND status = $2`,
		companyID, entity.WorkerStatusActive,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active workers: %w", err)
	}
	return n, nil
}

// ListByCompany lista trabajadores de la empresa.
func (r *WorkerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Worker, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+workerColumns+` FROM workers
		 WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Update actualiza un trabajador existente.
func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	_, err := r.q.Exec(ctx,
		`UPDATE workers SET name = $2, role = $3, status = $4, mobile = $5,
			email = $6, password_hash = $7, base_salary = $8, overtime_rate = $9,
			updated_at = $10
		 WHERE id = $1`,
		w.ID, w.Name, w.Role, w.Status, w.Mobile, w.Email, w.PasswordHash,
		w.BaseSalary, w.OvertimeRate, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	return nil
}
