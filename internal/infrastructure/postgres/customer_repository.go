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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, name, mobile, address, tax_id,
	total_purchases, due_amount, last_purchase_at, active, created_at, updated_at`

// CustomerRepo adaptador de clientes y su cuenta corriente.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, company_id, name, mobile, address, tax_id,
			total_purchases, due_amount, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.CompanyID, c.Name, c.Mobile, c.Address, c.TaxID,
		c.TotalPurchases, c.DueAmount, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Mobile, &c.Address, &c.TaxID,
		&c.TotalPurchases, &c.DueAmount, &c.LastPurchaseAt, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// ListByCompany lista clientes de la empresa.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		 WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Mobile, &c.Address, &c.TaxID,
			&c.TotalPurchases, &c.DueAmount, &c.LastPurchaseAt, &c.Active,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update edita los datos de contacto. La cuenta corriente solo muta vía
// ApplySale.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx,
		`UPDATE customers SET name = $2, mobile = $3, address = $4, tax_id = $5,
			active = $6, updated_at = $7
		 WHERE id = $1`,
		c.ID, c.Name, c.Mobile, c.Address, c.TaxID, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ApplySale acumula la venta en la cuenta del cliente con incrementos
// atómicos en un solo UPDATE: dos ventas concurrentes del mismo cliente
// suman ambas sin pisarse.
func (r *CustomerRepo) ApplySale(ctx context.Context, id string, total, due decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE customers SET
			total_purchases = total_purchases + $2,
			due_amount = due_amount + $3,
			last_purchase_at = $4,
			updated_at = $4
		 WHERE id = $1`,
		id, total, due, at,
	)
	if err != nil {
		return fmt.Errorf("apply sale to customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
