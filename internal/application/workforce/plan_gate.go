package workforce

import (
	"context"

	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// Cupos de trabajadores activos por plan. Negativo = sin límite.
const (
	freeWorkerLimit     = 3
	standardWorkerLimit = 15
	unlimitedWorkers    = -1
)

// PlanGate resuelve el cupo de trabajadores consultando el plan de la empresa.
type PlanGate struct {
	companyRepo repository.CompanyRepository
}

// NewPlanGate construye el gate de suscripción.
func NewPlanGate(companyRepo repository.CompanyRepository) *PlanGate {
	return &PlanGate{companyRepo: companyRepo}
}

// WorkerLimit máximo de trabajadores activos según el plan vigente.
func (g *PlanGate) WorkerLimit(ctx context.Context, companyID string) (int, error) {
	company, err := g.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if company == nil {
		return 0, domain.ErrNotFound
	}
	switch company.Plan {
	case entity.PlanPremium:
		return unlimitedWorkers, nil
	case entity.PlanStandard:
		return standardWorkerLimit, nil
	default:
		return freeWorkerLimit, nil
	}
}
