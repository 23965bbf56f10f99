package auth

import (
	"context"

	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// rolePermissions mapa rol → permisos. El admin tiene todo; manager opera
// ventas, inventario y nómina; salesperson solo vende; worker no muta nada.
var rolePermissions = map[string]map[string]bool{
	entity.RoleAdmin: {
		ports.PermSalesCreate:     true,
		ports.PermSalesUpdate:     true,
		ports.PermInventoryAdjust: true,
		ports.PermPayrollManage:   true,
		ports.PermWorkersManage:   true,
		ports.PermProductsManage:  true,
		ports.PermCustomersManage: true,
	},
	entity.RoleManager: {
		ports.PermSalesCreate:     true,
		ports.PermSalesUpdate:     true,
		ports.PermInventoryAdjust: true,
		ports.PermPayrollManage:   true,
		ports.PermProductsManage:  true,
		ports.PermCustomersManage: true,
	},
	entity.RoleSalesperson: {
		ports.PermSalesCreate:     true,
		ports.PermCustomersManage: true,
	},
	entity.RoleWorker: {},
}

// RBACGuard implementa ports.AccessGuard contra el rol persistido del
// trabajador. Se consulta la DB (no solo el claim del token) para que una
// baja o cambio de rol surta efecto antes de expirar el token.
type RBACGuard struct {
	workerRepo repository.WorkerRepository
}

// NewRBACGuard construye el guard.
func NewRBACGuard(workerRepo repository.WorkerRepository) *RBACGuard {
	return &RBACGuard{workerRepo: workerRepo}
}

// Authorize true si el actor está activo, pertenece a la empresa y su rol
// otorga el permiso.
func (g *RBACGuard) Authorize(ctx context.Context, actorID, companyID, permission string) (bool, error) {
	worker, err := g.workerRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	if worker == nil || worker.CompanyID != companyID || worker.Status != entity.WorkerStatusActive {
		return false, nil
	}
	return rolePermissions[worker.Role][permission], nil
}
