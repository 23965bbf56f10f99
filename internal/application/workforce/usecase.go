package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Roles aceptados para un trabajador.
var validRoles = map[string]bool{
	entity.RoleAdmin:       true,
	entity.RoleManager:     true,
	entity.RoleSalesperson: true,
	entity.RoleWorker:      true,
}

// WorkerUseCase altas y gestión de trabajadores, sujetas al límite de
// trabajadores activos del plan de suscripción.
type WorkerUseCase struct {
	guard      ports.AccessGuard
	gate       ports.SubscriptionGate
	workerRepo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(guard ports.AccessGuard, gate ports.SubscriptionGate, workerRepo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{guard: guard, gate: gate, workerRepo: workerRepo}
}

// CreateWorker crea un trabajador activo. Rechaza con ErrWorkerLimit cuando
// los activos ya alcanzan el cupo del plan (límite negativo = ilimitado).
func (uc *WorkerUseCase) CreateWorker(ctx context.Context, companyID, userID string, in dto.CreateWorkerRequest) (*entity.Worker, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermWorkersManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validRoles[in.Role] {
		return nil, domain.ErrInvalidInput
	}
	if in.BaseSalary.IsNegative() || in.OvertimeRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.workerRepo.GetByEmail(ctx, companyID, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	limit, err := uc.gate.WorkerLimit(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if limit >= 0 {
		active, err := uc.workerRepo.CountActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if active >= limit {
			return nil, domain.ErrWorkerLimit
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	worker := &entity.Worker{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Role:         in.Role,
		Status:       entity.WorkerStatusActive,
		Mobile:       in.Mobile,
		Email:        in.Email,
		PasswordHash: string(hash),
		BaseSalary:   in.BaseSalary,
		OvertimeRate: in.OvertimeRate,
		JoinedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.workerRepo.Create(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// GetWorker obtiene un trabajador (alcance por empresa).
func (uc *WorkerUseCase) GetWorker(ctx context.Context, companyID, id string) (*entity.Worker, error) {
	worker, err := uc.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrWorkerNotFound
	}
	if worker.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return worker, nil
}

// ListWorkers lista trabajadores de la empresa.
func (uc *WorkerUseCase) ListWorkers(ctx context.Context, companyID string, limit, offset int) ([]*entity.Worker, error) {
	return uc.workerRepo.ListByCompany(ctx, companyID, limit, offset)
}

// DeactivateWorker baja lógica: el trabajador deja de contar contra el cupo
// del plan y no puede autenticarse, pero su historial de nómina permanece.
func (uc *WorkerUseCase) DeactivateWorker(ctx context.Context, companyID, userID, id string) (*entity.Worker, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermWorkersManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	worker, err := uc.GetWorker(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if worker.Status == entity.WorkerStatusInactive {
		return worker, nil
	}
	worker.Status = entity.WorkerStatusInactive
	worker.UpdatedAt = time.Now()
	if err := uc.workerRepo.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// UpdateWorkerPay actualiza la configuración de pago (salario base y tarifa
// de horas extra); afecta solo nóminas calculadas después del cambio.
func (uc *WorkerUseCase) UpdateWorkerPay(ctx context.Context, companyID, userID, id string, in dto.UpdateWorkerPayRequest) (*entity.Worker, error) {
	ok, err := uc.guard.Authorize(ctx, userID, companyID, ports.PermWorkersManage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.BaseSalary.IsNegative() || in.OvertimeRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	worker, err := uc.GetWorker(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	worker.BaseSalary = in.BaseSalary
	worker.OvertimeRate = in.OvertimeRate
	worker.UpdatedAt = time.Now()
	if err := uc.workerRepo.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}
