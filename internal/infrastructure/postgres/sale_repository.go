package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, company_id, number, kind, customer_id, subtotal,
	discount_amount, tax_amount, shipping, total, payment_method,
	payment_status, paid_amount, due_amount, payment_ref, status, notes,
	created_at, updated_at, created_by`

// SaleRepo adaptador de ventas: cabecera + líneas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas. El índice único (company_id, number)
// detecta la colisión de consecutivo: retorna domain.ErrDuplicate y el
// caller regenera el número y reintenta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, number, kind, customer_id, subtotal,
			discount_amount, tax_amount, shipping, total, payment_method,
			payment_status, paid_amount, due_amount, payment_ref, status, notes,
			created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Number, s.Kind, s.CustomerID, s.Subtotal,
		s.DiscountAmount, s.TaxAmount, s.Shipping, s.Total, s.PaymentMethod,
		s.PaymentStatus, s.PaidAmount, s.DueAmount, s.PaymentRef, s.Status, s.Notes,
		s.CreatedAt, s.UpdatedAt, s.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, product_name,
				quantity, unit_price, line_discount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.SaleID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.LineDiscount, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id,
	).Scan(
		&s.ID, &s.CompanyID, &s.Number, &s.Kind, &customerID, &s.Subtotal,
		&s.DiscountAmount, &s.TaxAmount, &s.Shipping, &s.Total, &s.PaymentMethod,
		&s.PaymentStatus, &s.PaidAmount, &s.DueAmount, &s.PaymentRef, &s.Status,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price,
			line_discount, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.LineDiscount, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, &it)
	}
	return &s, rows.Err()
}

// CountByCompany cantidad de ventas de la empresa (base del consecutivo).
func (r *SaleRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM sales WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// ListByCompany lista ventas (solo cabeceras) con filtros y paginación.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1`
	args := []any{companyID}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.Kind != "" {
		args = append(args, f.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
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
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Number, &s.Kind, &customerID, &s.Subtotal,
			&s.DiscountAmount, &s.TaxAmount, &s.Shipping, &s.Total, &s.PaymentMethod,
			&s.PaymentStatus, &s.PaidAmount, &s.DueAmount, &s.PaymentRef, &s.Status,
			&s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if customerID != nil {
			s.CustomerID = *customerID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del ciclo de vida.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, at,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// UpdatePaymentStatus cambia el estado de pago.
func (r *SaleRepo) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		id, paymentStatus, at,
	)
	if err != nil {
		return fmt.Errorf("update sale payment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}
