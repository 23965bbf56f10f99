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

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, type, quantity,
	quantity_before, quantity_after, reason, sale_id, from_location,
	to_location, created_at, created_by`

// InventoryMovementRepo adaptador del libro de inventario. Append-only por
// contrato: no expone UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, company_id, product_id, type, quantity,
			quantity_before, quantity_after, reason, sale_id, from_location,
			to_location, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity,
		m.QuantityBefore, m.QuantityAfter, m.Reason, m.SaleID,
		m.FromLocation, m.ToLocation, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var saleID *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity,
		&m.QuantityBefore, &m.QuantityAfter, &m.Reason, &saleID,
		&m.FromLocation, &m.ToLocation, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if saleID != nil {
		m.SaleID = *saleID
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	return scanMovement(r.q.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id))
}

// GetLatestByProduct el movimiento más reciente del producto (verificación
// del invariante de conciliación contra el contador).
func (r *InventoryMovementRepo) GetLatestByProduct(ctx context.Context, productID string) (*entity.InventoryMovement, error) {
	return scanMovement(r.q.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements
		 WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		productID))
}

func (r *InventoryMovementRepo) list(ctx context.Context, where string, args []any, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE ` + where
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByProduct histórico de un producto, opcionalmente acotado por fechas.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, "product_id = $1", []any{productID}, from, to, limit, offset)
}

// ListByCompany histórico de toda la empresa.
func (r *InventoryMovementRepo) ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, "company_id = $1", []any{companyID}, from, to, limit, offset)
}
