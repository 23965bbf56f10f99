package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// InventoryMovementRepository es el puerto del libro de inventario.
// Append-only: no existen Update ni Delete; las correcciones son
// movimientos compensatorios nuevos.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	// GetLatestByProduct devuelve el movimiento más reciente del producto
	// (para verificar el invariante de conciliación contra el contador).
	GetLatestByProduct(ctx context.Context, productID string) (*entity.InventoryMovement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
