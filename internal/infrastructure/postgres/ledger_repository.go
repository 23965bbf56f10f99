package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo adaptador del libro financiero. Append-only por contrato.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create registra un asiento.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_entries (id, company_id, type, amount, description,
			reference_type, reference_id, payment_method, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`,
		e.ID, e.CompanyID, e.Type, e.Amount, e.Description,
		e.ReferenceType, e.ReferenceID, e.PaymentMethod, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByCompany lista asientos con filtros y paginación.
func (r *LedgerRepo) ListByCompany(ctx context.Context, companyID string, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, company_id, type, amount, description, reference_type,
			reference_id, payment_method, created_at, created_by
		FROM ledger_entries WHERE company_id = $1`
	args := []any{companyID}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.ReferenceType != "" {
		args = append(args, f.ReferenceType)
		query += fmt.Sprintf(" AND reference_type = $%d", len(args))
	}
	if f.ReferenceID != "" {
		args = append(args, f.ReferenceID)
		query += fmt.Sprintf(" AND reference_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var refID *string
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.Type, &e.Amount, &e.Description,
			&e.ReferenceType, &refID, &e.PaymentMethod, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if refID != nil {
			e.ReferenceID = *refID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
